package generation

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func assertNoOverlaps(t *testing.T, rects []Rect) {
	t.Helper()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Fatalf("rects %d %s and %d %s overlap", i, rects[i], j, rects[j])
			}
		}
	}
}

func stackedRects(n, size int) []Rect {
	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = Rect{X: i % 3, Y: i % 2, Width: size + i%3, Height: size + i%2}
	}
	return rects
}

func TestSpreadSeparatesCircles(t *testing.T) {
	rooms := stackedRects(8, 6)
	margin := 3.0

	if err := NewRoomSeparator(newTestRNG(1), 1, 5000, nil).Spread(rooms, margin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertNoOverlaps(t, rooms)
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			reach := rooms[i].HalfDiagonal() + rooms[j].HalfDiagonal() + 2*margin
			if r2.Norm2(r2.Sub(rooms[i].Center(), rooms[j].Center())) < reach*reach {
				t.Errorf("rooms %d and %d still within spread distance", i, j)
			}
		}
	}
}

func TestPackKeepsFixedRectsInPlace(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, Width: 8, Height: 8},
		{X: 20, Y: 0, Width: 8, Height: 8},
	}
	rects = append(rects, stackedRects(20, 3)...)

	fixed := make([]bool, len(rects))
	fixed[0], fixed[1] = true, true
	want0, want1 := rects[0], rects[1]

	if err := NewRoomSeparator(newTestRNG(2), 1, 5000, nil).Pack(rects, fixed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertNoOverlaps(t, rects)
	if rects[0] != want0 || rects[1] != want1 {
		t.Errorf("fixed rects moved: %s, %s", rects[0], rects[1])
	}
}

func TestPackWithoutFixedRects(t *testing.T) {
	rects := stackedRects(30, 4)
	if err := NewRoomSeparator(newTestRNG(3), 1, 5000, nil).Pack(rects, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertNoOverlaps(t, rects)
}

func TestSeparationSweepCap(t *testing.T) {
	rects := stackedRects(30, 4)

	err := NewRoomSeparator(newTestRNG(4), 1, 1, nil).Pack(rects, nil)
	if !errors.Is(err, ErrSeparationDiverged) {
		t.Fatalf("expected ErrSeparationDiverged, got %v", err)
	}
	if !IsRecoverable(err) {
		t.Error("divergence should be recoverable")
	}
}

func TestGatherCentresWithJitter(t *testing.T) {
	rects := stackedRects(50, 4)
	NewRoomSeparator(newTestRNG(5), 1, 0, nil).Gather(rects, 100, -40)

	for i, r := range rects {
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		if absInt(cx-100) > 1 || absInt(cy+40) > 1 {
			t.Errorf("rect %d centred at (%d, %d), want within 1 of (100, -40)", i, cx, cy)
		}
	}
}
