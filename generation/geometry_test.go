package generation

import (
	"math/rand/v2"
	"testing"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestRectOverlapsIsStrict(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"contained", Rect{X: 2, Y: 2, Width: 3, Height: 3}, true},
		{"partial", Rect{X: 9, Y: 9, Width: 5, Height: 5}, true},
		{"touching right edge", Rect{X: 10, Y: 0, Width: 5, Height: 10}, false},
		{"touching top edge", Rect{X: 0, Y: 10, Width: 10, Height: 5}, false},
		{"touching corner", Rect{X: 10, Y: 10, Width: 1, Height: 1}, false},
		{"far away", Rect{X: 50, Y: -50, Width: 5, Height: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%s) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("overlap is not symmetric for %s", tt.other)
			}
		})
	}
}

func TestRectSetCenter(t *testing.T) {
	r := Rect{Width: 5, Height: 4}
	r.SetCenter(10, -10)

	if r.X != 8 || r.Y != -12 {
		t.Errorf("expected lower-left corner (8, -12), got (%d, %d)", r.X, r.Y)
	}
}

func TestBoundingBox(t *testing.T) {
	if got := BoundingBox(nil); got != (Rect{}) {
		t.Errorf("empty input should give the zero rect, got %s", got)
	}

	got := BoundingBox([]Rect{
		{X: -5, Y: 2, Width: 3, Height: 3},
		{X: 4, Y: -7, Width: 2, Height: 1},
		{X: 0, Y: 0, Width: 1, Height: 20},
	})
	want := Rect{X: -5, Y: -7, Width: 11, Height: 27}
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRectCenterAndHalfDiagonal(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 6, Height: 8}

	c := r.Center()
	if c.X != 4 || c.Y != 6 {
		t.Errorf("expected center (4, 6), got (%v, %v)", c.X, c.Y)
	}
	if hd := r.HalfDiagonal(); hd != 5 {
		t.Errorf("expected half diagonal 5, got %v", hd)
	}
}
