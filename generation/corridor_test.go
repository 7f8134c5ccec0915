package generation

import (
	"errors"
	"testing"
)

func twoRoomLayout(a, b Rect) (*Layout, *ConnectivityGraph) {
	layout := &Layout{Rooms: []Room{
		NewRoom(a.X, a.Y, a.Width, a.Height),
		NewRoom(b.X, b.Y, b.Width, b.Height),
	}}
	g := NewConnectivityGraph(2)
	g.AddEdge(0, 1)
	return layout, g
}

func TestClassify(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name  string
		other Rect
		want  corridorShape
	}{
		{"stacked", Rect{X: 2, Y: 30, Width: 10, Height: 10}, shapeVertical},
		{"side by side", Rect{X: 30, Y: -3, Width: 10, Height: 10}, shapeHorizontal},
		{"narrow x overlap", Rect{X: 8, Y: 30, Width: 10, Height: 10}, shapeL},
		{"x overlap of exactly width plus two", Rect{X: 5, Y: 30, Width: 10, Height: 10}, shapeVertical},
		{"diagonal", Rect{X: 30, Y: 30, Width: 10, Height: 10}, shapeL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(base, tt.other, 3); got != tt.want {
				t.Errorf("classify = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCarveStraightVertical(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		layout, g := twoRoomLayout(
			Rect{X: 0, Y: 0, Width: 10, Height: 10},
			Rect{X: 2, Y: 30, Width: 10, Height: 10},
		)

		corridors, err := NewCorridorCarver(newTestRNG(seed), nil).Carve(layout, g, CorridorParams{Width: 3, MaxAttempts: 10})
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if len(corridors) != 1 {
			t.Fatalf("seed %d: a straight corridor is one segment, got %v", seed, corridors)
		}

		c := corridors[0]
		if c.Y != 10 || c.Top() != 30 || c.Width != 3 {
			t.Errorf("seed %d: unexpected corridor %s", seed, c)
		}
		if c.X < 3 || c.Right() > 9 {
			t.Errorf("seed %d: corridor %s leaves the shared wall span", seed, c)
		}

		src, dst := layout.Rooms[0], layout.Rooms[1]
		if len(src.TopEntrances()) != 1 || len(src.Entrances()) != 1 {
			t.Errorf("seed %d: source should have one top entrance, has %v", seed, src.Entrances())
		}
		if len(dst.BottomEntrances()) != 1 || len(dst.Entrances()) != 1 {
			t.Errorf("seed %d: target should have one bottom entrance, has %v", seed, dst.Entrances())
		}
	}
}

func TestCarveStraightHorizontal(t *testing.T) {
	layout, g := twoRoomLayout(
		Rect{X: 30, Y: 2, Width: 10, Height: 10},
		Rect{X: 0, Y: 0, Width: 10, Height: 10},
	)

	corridors, err := NewCorridorCarver(newTestRNG(9), nil).Carve(layout, g, CorridorParams{Width: 3, MaxAttempts: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(corridors) != 1 || corridors[0].X != 10 || corridors[0].Right() != 30 || corridors[0].Height != 3 {
		t.Fatalf("unexpected corridors %v", corridors)
	}
	if len(layout.Rooms[0].LeftEntrances()) != 1 || len(layout.Rooms[1].RightEntrances()) != 1 {
		t.Errorf("expected left and right entrances, got %v and %v",
			layout.Rooms[0].Entrances(), layout.Rooms[1].Entrances())
	}
}

func TestCarveLShape(t *testing.T) {
	targets := []Rect{
		{X: 30, Y: 30, Width: 10, Height: 10},   // up right
		{X: -30, Y: 30, Width: 10, Height: 10},  // up left
		{X: 30, Y: -30, Width: 10, Height: 10},  // down right
		{X: -30, Y: -30, Width: 10, Height: 10}, // down left
	}

	for _, target := range targets {
		for seed := uint64(1); seed <= 10; seed++ {
			layout, g := twoRoomLayout(Rect{X: 0, Y: 0, Width: 10, Height: 10}, target)

			corridors, err := NewCorridorCarver(newTestRNG(seed), nil).Carve(layout, g, CorridorParams{Width: 3, MaxAttempts: 10})
			if err != nil {
				t.Fatalf("target %s seed %d: unexpected error: %v", target, seed, err)
			}
			if len(corridors) != 2 {
				t.Fatalf("target %s seed %d: expected two legs, got %v", target, seed, corridors)
			}
			if collides(corridors[:1], layout.Rooms, corridors[1:]) {
				t.Errorf("target %s seed %d: legs overlap a room or each other: %v", target, seed, corridors)
			}

			for i, r := range layout.Rooms {
				if n := len(r.Entrances()); n != 1 {
					t.Errorf("target %s seed %d: room %d has %d entrances", target, seed, i, n)
				}
			}

			// Both legs share the corner square, so they must touch
			a, b := corridors[0], corridors[1]
			if a.X > b.Right() || b.X > a.Right() || a.Y > b.Top() || b.Y > a.Top() {
				t.Errorf("target %s seed %d: legs %s and %s do not meet", target, seed, a, b)
			}
		}
	}
}

func TestCarveRollsBackAndExhausts(t *testing.T) {
	// The only route between the two outer rooms runs through the middle one
	layout := &Layout{Rooms: []Room{
		NewRoom(0, 0, 10, 10),
		NewRoom(30, 0, 10, 10),
		NewRoom(10, -50, 20, 110),
	}}
	g := NewConnectivityGraph(3)
	g.AddEdge(0, 1)

	_, err := NewCorridorCarver(newTestRNG(1), nil).Carve(layout, g, CorridorParams{Width: 3, MaxAttempts: 25})
	if !errors.Is(err, ErrCorridorExhausted) {
		t.Fatalf("expected ErrCorridorExhausted, got %v", err)
	}
	if !IsRecoverable(err) {
		t.Error("corridor exhaustion should be recoverable")
	}

	for i, r := range layout.Rooms {
		if n := len(r.Entrances()); n != 0 {
			t.Errorf("room %d kept %d entrances from rejected attempts", i, n)
		}
	}
}

func TestCarveAvoidsExistingCorridors(t *testing.T) {
	layout := &Layout{Rooms: []Room{
		NewRoom(0, 0, 10, 10),
		NewRoom(0, 40, 10, 10),
		NewRoom(40, 20, 10, 10),
		NewRoom(-40, 20, 10, 10),
	}}
	g := NewConnectivityGraph(4)
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)

	_, err := NewCorridorCarver(newTestRNG(1), nil).Carve(layout, g, CorridorParams{Width: 3, MaxAttempts: 50})

	// The vertical corridor 0-1 walls off a straight route between 2 and 3
	if !errors.Is(err, ErrCorridorExhausted) {
		t.Fatalf("expected ErrCorridorExhausted, got %v", err)
	}
}

func TestPruneKeepsRoomsAndCrossedCells(t *testing.T) {
	layout := &Layout{
		Rooms: []Room{NewRoom(0, 0, 10, 10), NewRoom(100, 100, 10, 10)},
		Cells: []Cell{
			NewCell(12, 0, 3, 3),  // crossed
			NewCell(50, 50, 3, 3), // isolated
			NewCell(10, 3, 2, 2),  // crossed
			NewCell(20, 4, 3, 3),  // touching only
		},
	}
	corridors := []Rect{{X: 10, Y: 1, Width: 10, Height: 3}}

	pruned := Prune(layout, corridors)

	if len(pruned.Rooms) != 2 {
		t.Errorf("every room must survive pruning, got %d", len(pruned.Rooms))
	}
	if len(pruned.Cells) != 2 || pruned.Cells[0].X != 12 || pruned.Cells[1].X != 10 {
		t.Errorf("expected the two crossed cells in order, got %v", pruned.Cells)
	}
}

func TestPruneWithoutCorridorsKeepsRooms(t *testing.T) {
	layout := &Layout{
		Rooms: []Room{NewRoom(0, 0, 10, 10)},
		Cells: []Cell{NewCell(20, 20, 3, 3)},
	}

	pruned := Prune(layout, nil)
	if len(pruned.Rooms) != 1 || len(pruned.Cells) != 0 {
		t.Errorf("expected 1 room and no cells, got %d and %d", len(pruned.Rooms), len(pruned.Cells))
	}
}
