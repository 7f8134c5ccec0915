package generation

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// RoomSeparator pushes overlapping rectangles apart until none overlap
type RoomSeparator struct {
	rng        *rand.Rand
	decay      float64 // Repulsion strength
	maxSweeps  int     // Sweeps allowed per pass
	logMessage func(string)
}

// NewRoomSeparator creates a separator. maxSweeps caps every pass; 0 disables the cap.
func NewRoomSeparator(rng *rand.Rand, decay float64, maxSweeps int, logFunc func(string)) *RoomSeparator {
	return &RoomSeparator{
		rng:        rng,
		decay:      decay,
		maxSweeps:  maxSweeps,
		logMessage: logFunc,
	}
}

// Spread separates rooms so that their enclosing circles, enlarged by margin, stop overlapping.
// Every rectangle passed in is treated as a room.
func (s *RoomSeparator) Spread(rooms []Rect, margin float64) error {
	overlaps := func(a, b Rect) bool {
		reach := a.HalfDiagonal() + b.HalfDiagonal() + 2*margin
		return r2.Norm2(r2.Sub(a.Center(), b.Center())) < reach*reach
	}

	sweeps, err := s.relax(rooms, nil, overlaps)
	if err != nil {
		return fmt.Errorf("spreading %d rooms: %w", len(rooms), err)
	}

	s.log(fmt.Sprintf("Spread %d rooms in %d sweeps", len(rooms), sweeps))
	return nil
}

// Pack separates all rectangles until no two of them overlap. Rectangles whose fixed flag is set
// never move but still repel the others. fixed may be nil.
func (s *RoomSeparator) Pack(rects []Rect, fixed []bool) error {
	sweeps, err := s.relax(rects, fixed, Rect.Overlaps)
	if err != nil {
		return fmt.Errorf("packing %d rectangles: %w", len(rects), err)
	}

	s.log(fmt.Sprintf("Packed %d rectangles in %d sweeps", len(rects), sweeps))
	return nil
}

// Gather re-centres every rectangle on (cx, cy) with a random offset of up to one unit per axis,
// so stacked rectangles can still separate
func (s *RoomSeparator) Gather(rects []Rect, cx, cy int) {
	for i := range rects {
		rects[i].SetCenter(cx+s.jitter(), cy+s.jitter())
	}
}

// relax sweeps over the rectangles moving each overlapping one away from the others, until a
// full sweep finds no overlap. It returns the number of sweeps run.
func (s *RoomSeparator) relax(rects []Rect, fixed []bool, overlaps func(a, b Rect) bool) (int, error) {
	for sweep := 1; ; sweep++ {
		if s.maxSweeps > 0 && sweep > s.maxSweeps {
			return sweep - 1, fmt.Errorf("%w after %d sweeps", ErrSeparationDiverged, s.maxSweeps)
		}

		moved := false
		for i := range rects {
			if fixed != nil && fixed[i] {
				continue
			}

			var velocity r2.Vec
			overlapping := false
			center := rects[i].Center()

			for j := range rects {
				if i == j || !overlaps(rects[i], rects[j]) {
					continue
				}
				overlapping = true

				diff := r2.Sub(center, rects[j].Center())
				dist := r2.Norm(diff)
				if dist > 0 {
					velocity = r2.Add(velocity, r2.Scale(s.decay/dist, r2.Unit(diff)))
				}
			}

			if !overlapping {
				continue
			}
			moved = true

			// Opposite pushes can cancel out exactly, the jitter alone then moves the rectangle
			if velocity.X != 0 || velocity.Y != 0 {
				velocity = r2.Unit(velocity)
			}
			rects[i].X = roundInt(float64(rects[i].X)+velocity.X) + s.jitter()
			rects[i].Y = roundInt(float64(rects[i].Y)+velocity.Y) + s.jitter()
		}

		if !moved {
			return sweep, nil
		}
	}
}

// jitter returns -1, 0 or 1
func (s *RoomSeparator) jitter() int {
	return s.rng.IntN(3) - 1
}

func (s *RoomSeparator) log(msg string) {
	if s.logMessage != nil {
		s.logMessage(msg)
	}
}
