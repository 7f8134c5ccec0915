package config

import (
	"errors"
	"testing"
)

func TestDefaultGenerationIsValid(t *testing.T) {
	if err := DefaultGeneration().Validate(); err != nil {
		t.Fatalf("default configuration rejected: %v", err)
	}
}

func TestRoomCountRangeRounds(t *testing.T) {
	cfg := DefaultGeneration()
	cfg.DesiredCellCount = 10
	cfg.MinRoomFraction = 0.1
	cfg.MaxRoomFraction = 0.2

	minRooms, maxRooms := cfg.RoomCountRange()
	if minRooms != 1 || maxRooms != 2 {
		t.Errorf("expected [1, 2], got [%d, %d]", minRooms, maxRooms)
	}

	cfg.DesiredCellCount = 400
	cfg.MinRoomFraction = 0.03
	cfg.MaxRoomFraction = 0.04
	minRooms, maxRooms = cfg.RoomCountRange()
	if minRooms != 12 || maxRooms != 16 {
		t.Errorf("expected [12, 16], got [%d, %d]", minRooms, maxRooms)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Generation)
	}{
		{"zero cells", func(g *Generation) { g.DesiredCellCount = 0 }},
		{"room fraction above one", func(g *Generation) { g.MinRoomFraction = 1.5; g.MaxRoomFraction = 1.6 }},
		{"negative room fraction", func(g *Generation) { g.MinRoomFraction = -0.5 }},
		{"inverted room fractions", func(g *Generation) { g.MinRoomFraction = 0.2; g.MaxRoomFraction = 0.1 }},
		{"inverted cell width", func(g *Generation) { g.MinCellWidth = 6; g.MaxCellWidth = 5 }},
		{"empty ratio range", func(g *Generation) { g.MinRoomRatio = 2; g.MaxRoomRatio = 1.5 }},
		{"unknown orientation", func(g *Generation) { g.Orientation = "diagonal" }},
		{"square landscape", func(g *Generation) { g.Orientation = "landscape"; g.MinRoomRatio = 0.5; g.MaxRoomRatio = 1 }},
		{"zero std dev", func(g *Generation) { g.NormalStdDev = 0 }},
		{"zero corridor width", func(g *Generation) { g.CorridorWidth = 0 }},
		{"negative edge fraction", func(g *Generation) { g.RemainingEdgesFraction = -1 }},
		{"zero outer attempts", func(g *Generation) { g.MaxGenerationAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneration()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestValidateAcceptsOrientations(t *testing.T) {
	for _, o := range []string{"original", "Landscape", "PORTRAIT", ""} {
		cfg := DefaultGeneration()
		cfg.Orientation = o
		if err := cfg.Validate(); err != nil {
			t.Errorf("orientation %q rejected: %v", o, err)
		}
	}
}
