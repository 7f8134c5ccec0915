package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid marks a structurally invalid generation configuration
var ErrInvalid = errors.New("config: invalid generation configuration")

// Generation holds every tunable of the dungeon layout pipeline
type Generation struct {
	DesiredCellCount int     // Total number of cells and rooms sampled
	MinRoomFraction  float64 // Lower bound of the room share of DesiredCellCount
	MaxRoomFraction  float64 // Upper bound of the room share of DesiredCellCount

	MinCellWidth  int
	MinCellHeight int
	MaxCellWidth  int
	MaxCellHeight int

	MinRoomWidth  int
	MinRoomHeight int
	MinRoomRatio  float64
	MaxRoomRatio  float64
	Orientation   string // original, landscape or portrait

	// Radii are drawn from |N(NormalMean, NormalStdDev)|. Samples at or above NormalThreshold
	// become rooms. RadiusMultiplier scales samples to grid units.
	NormalMean       float64
	NormalStdDev     float64
	NormalThreshold  float64
	RadiusMultiplier float64

	RoomSpreadMargin   float64 // Added to the half-diagonal of each room during the spread pass
	RepelDecay         float64 // Repulsion strength coefficient
	FixRoomsDuringPack bool    // Keep rooms in place while filler cells are packed

	RemainingEdgesFraction float64 // Extra loop edges kept, as a fraction of the spanning tree size
	CorridorWidth          int

	MaxRatioAttempts      int // Redraws allowed per room to meet the ratio bounds
	MaxCorridorAttempts   int // Carving attempts allowed per connection
	MaxGenerationAttempts int // Whole-pipeline restarts allowed
	MaxSeparationSweeps   int // Sweeps allowed per separation pass
	MaxRadiusDraws        int // Distribution draws allowed while sampling radii
}

// DefaultGeneration returns the standard tuning: ~400 cells, 3-4% of them rooms
func DefaultGeneration() Generation {
	return Generation{
		DesiredCellCount: 400,
		MinRoomFraction:  0.030,
		MaxRoomFraction:  0.040,

		MinCellWidth:  3,
		MinCellHeight: 3,
		MaxCellWidth:  5,
		MaxCellHeight: 5,

		MinRoomWidth:  6,
		MinRoomHeight: 6,
		MinRoomRatio:  1.10,
		MaxRoomRatio:  1.75,
		Orientation:   "original",

		// 1.65 keeps roughly the top 10% of |N(0,1)| samples
		NormalMean:       0.0,
		NormalStdDev:     1.0,
		NormalThreshold:  1.65,
		RadiusMultiplier: 8.0,

		RoomSpreadMargin:   3.0,
		RepelDecay:         1.0,
		FixRoomsDuringPack: true,

		RemainingEdgesFraction: 0.15,
		CorridorWidth:          3,

		MaxRatioAttempts:      400,
		MaxCorridorAttempts:   200,
		MaxGenerationAttempts: 25,
		MaxSeparationSweeps:   5000,
		MaxRadiusDraws:        1_000_000,
	}
}

// RoomCountRange returns the rounded minimum and maximum number of rooms
func (g Generation) RoomCountRange() (minRooms, maxRooms int) {
	n := float64(g.DesiredCellCount)
	return int(math.Round(n * g.MinRoomFraction)), int(math.Round(n * g.MaxRoomFraction))
}

// Validate checks the configuration for structural errors
func (g Generation) Validate() error {
	if g.DesiredCellCount <= 0 {
		return fmt.Errorf("%w: desired cell count must be positive, got %d", ErrInvalid, g.DesiredCellCount)
	}

	minRooms, maxRooms := g.RoomCountRange()
	if minRooms < 0 || minRooms > g.DesiredCellCount || maxRooms < 0 || maxRooms > g.DesiredCellCount {
		return fmt.Errorf("%w: room count range [%d, %d] outside [0, %d]", ErrInvalid, minRooms, maxRooms, g.DesiredCellCount)
	}
	if minRooms > maxRooms {
		return fmt.Errorf("%w: min room fraction %.3f above max %.3f", ErrInvalid, g.MinRoomFraction, g.MaxRoomFraction)
	}

	if g.MinCellWidth <= 0 || g.MinCellHeight <= 0 || g.MinRoomWidth <= 0 || g.MinRoomHeight <= 0 {
		return fmt.Errorf("%w: cell and room dimensions must be positive", ErrInvalid)
	}
	if g.MinCellWidth > g.MaxCellWidth || g.MinCellHeight > g.MaxCellHeight {
		return fmt.Errorf("%w: cell minimum dimensions exceed maximum", ErrInvalid)
	}
	if g.MinRoomRatio <= 0 || g.MinRoomRatio > g.MaxRoomRatio {
		return fmt.Errorf("%w: room ratio range [%.2f, %.2f] is empty", ErrInvalid, g.MinRoomRatio, g.MaxRoomRatio)
	}

	switch strings.ToLower(g.Orientation) {
	case "", "original":
	case "landscape", "portrait":
		// w/h or h/w at or below 1 can never satisfy the orientation
		if g.MinRoomRatio <= 1 {
			return fmt.Errorf("%w: %s rooms need a min ratio above 1", ErrInvalid, g.Orientation)
		}
	default:
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalid, g.Orientation)
	}

	if g.NormalStdDev <= 0 || g.RadiusMultiplier <= 0 {
		return fmt.Errorf("%w: standard deviation and radius multiplier must be positive", ErrInvalid)
	}
	if g.RoomSpreadMargin < 0 || g.RepelDecay <= 0 {
		return fmt.Errorf("%w: spread margin must be >= 0 and repel decay > 0", ErrInvalid)
	}
	if g.RemainingEdgesFraction < 0 {
		return fmt.Errorf("%w: remaining edges fraction must be >= 0", ErrInvalid)
	}
	if g.CorridorWidth <= 0 {
		return fmt.Errorf("%w: corridor width must be positive", ErrInvalid)
	}

	if g.MaxRatioAttempts <= 0 || g.MaxCorridorAttempts <= 0 || g.MaxGenerationAttempts <= 0 ||
		g.MaxSeparationSweeps <= 0 || g.MaxRadiusDraws <= 0 {
		return fmt.Errorf("%w: attempt ceilings must be positive", ErrInvalid)
	}

	return nil
}
