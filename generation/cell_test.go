package generation

import (
	"errors"
	"testing"
)

func TestSetOrientationEnforcesGeometry(t *testing.T) {
	tests := []struct {
		name        string
		w, h        int
		orientation Orientation
		wantErr     bool
	}{
		{"landscape wide", 8, 6, OrientationLandscape, false},
		{"landscape square", 6, 6, OrientationLandscape, true},
		{"landscape tall", 6, 8, OrientationLandscape, true},
		{"portrait tall", 6, 8, OrientationPortrait, false},
		{"portrait wide", 8, 6, OrientationPortrait, true},
		{"original square", 6, 6, OrientationOriginal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCell(0, 0, tt.w, tt.h)
			err := c.SetOrientation(tt.orientation)

			if tt.wantErr {
				if !errors.Is(err, ErrOrientationViolation) {
					t.Fatalf("expected ErrOrientationViolation, got %v", err)
				}
				if c.Orientation() != OrientationOriginal {
					t.Errorf("a rejected orientation must not be recorded")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Orientation() != tt.orientation {
				t.Errorf("expected %s, got %s", tt.orientation, c.Orientation())
			}
		})
	}
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{
		"":          OrientationOriginal,
		"original":  OrientationOriginal,
		"Landscape": OrientationLandscape,
		"portrait":  OrientationPortrait,
	} {
		got, err := ParseOrientation(in)
		if err != nil || got != want {
			t.Errorf("ParseOrientation(%q) = %s, %v", in, got, err)
		}
	}

	if _, err := ParseOrientation("sideways"); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestEntranceEqualIgnoresEndpointOrder(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: 2}

	if !(Entrance{Start: a, End: b}).Equal(Entrance{Start: b, End: a}) {
		t.Error("reversed entrance should be equal")
	}
	if (Entrance{Start: a, End: b}).Equal(Entrance{Start: a, End: Point{X: 5, Y: 2}}) {
		t.Error("different segments should not be equal")
	}
}

func TestRoomEntranceRollback(t *testing.T) {
	room := NewRoom(0, 0, 10, 8)
	room.AddEntrance(Point{2, 8}, Point{5, 8})
	room.AddEntrance(Point{10, 1}, Point{10, 4})

	room.RemoveLastEntrance()
	got := room.Entrances()
	if len(got) != 1 || !got[0].Equal(Entrance{Start: Point{2, 8}, End: Point{5, 8}}) {
		t.Fatalf("expected only the first entrance to remain, got %v", got)
	}

	room.RemoveLastEntrance()
	room.RemoveLastEntrance()
	if len(room.Entrances()) != 0 {
		t.Errorf("expected no entrances")
	}
}

func TestRoomEntrancesBySide(t *testing.T) {
	room := NewRoom(0, 0, 10, 8)
	room.AddEntrance(Point{2, 8}, Point{5, 8})   // top
	room.AddEntrance(Point{3, 0}, Point{6, 0})   // bottom
	room.AddEntrance(Point{0, 1}, Point{0, 4})   // left
	room.AddEntrance(Point{10, 2}, Point{10, 5}) // right
	room.AddEntrance(Point{10, 5}, Point{10, 2}) // right, reversed

	if n := len(room.TopEntrances()); n != 1 {
		t.Errorf("expected 1 top entrance, got %d", n)
	}
	if n := len(room.BottomEntrances()); n != 1 {
		t.Errorf("expected 1 bottom entrance, got %d", n)
	}
	if n := len(room.LeftEntrances()); n != 1 {
		t.Errorf("expected 1 left entrance, got %d", n)
	}
	if n := len(room.RightEntrances()); n != 2 {
		t.Errorf("expected 2 right entrances, got %d", n)
	}
}

func TestRoomEntrancesReturnsCopy(t *testing.T) {
	room := NewRoom(0, 0, 10, 8)
	room.AddEntrance(Point{2, 8}, Point{5, 8})

	got := room.Entrances()
	got[0].Start = Point{99, 99}

	if room.Entrances()[0].Start != (Point{2, 8}) {
		t.Error("mutating the returned slice changed the room")
	}
}
