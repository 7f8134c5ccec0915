package generation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Radius is a sampled distance from the layout origin.
// AboveThreshold radii become rooms, the others filler cells.
type Radius struct {
	Value          float64
	AboveThreshold bool
}

// RadiusParams configures radius sampling
type RadiusParams struct {
	Count           int     // Total radii to produce
	MinRoomFraction float64 // Share of Count that must be rooms, lower bound
	MaxRoomFraction float64 // Share of Count that may be rooms, upper bound
	Multiplier      float64 // Scales raw samples to grid units
	Mean            float64
	StdDev          float64
	Threshold       float64 // Compared against the raw, unscaled sample
	MaxDraws        int     // Safety cap on distribution draws, 0 means unlimited
}

// RadiusSampler draws room and cell radii from a normal distribution
type RadiusSampler struct {
	rng        *rand.Rand
	logMessage func(string)
}

// NewRadiusSampler creates a sampler drawing from rng
func NewRadiusSampler(rng *rand.Rand, logFunc func(string)) *RadiusSampler {
	return &RadiusSampler{rng: rng, logMessage: logFunc}
}

// Sample returns Count radii. The first ones are the room radii, followed by cell radii.
func (s *RadiusSampler) Sample(p RadiusParams) ([]Radius, error) {
	minRooms := int(math.Round(float64(p.Count) * p.MinRoomFraction))
	maxRooms := int(math.Round(float64(p.Count) * p.MaxRoomFraction))

	if minRooms < 0 || minRooms > p.Count || maxRooms < 0 || maxRooms > p.Count {
		return nil, fmt.Errorf("%w: impossible room count range [%d, %d] for %d radii", ErrConfig, minRooms, maxRooms, p.Count)
	}
	if minRooms > maxRooms {
		return nil, fmt.Errorf("%w: min room count %d above max %d", ErrConfig, minRooms, maxRooms)
	}

	normal := distuv.Normal{Mu: p.Mean, Sigma: p.StdDev, Src: s.rng}
	roomTarget := minRooms + s.rng.IntN(maxRooms-minRooms+1)

	radii := make([]Radius, 0, p.Count)
	draws := 0

	// keep drawing until a sample lands on the wanted side of the threshold
	draw := func(above bool) (float64, error) {
		for {
			if p.MaxDraws > 0 && draws >= p.MaxDraws {
				return 0, fmt.Errorf("%w: %d draws yielded %d of %d radii", ErrSamplingExhausted, draws, len(radii), p.Count)
			}
			draws++

			sample := math.Abs(normal.Rand())
			if (sample >= p.Threshold) == above {
				return sample, nil
			}
		}
	}

	for len(radii) < roomTarget {
		sample, err := draw(true)
		if err != nil {
			return nil, err
		}
		radii = append(radii, Radius{Value: sample * p.Multiplier, AboveThreshold: true})
	}

	for len(radii) < p.Count {
		sample, err := draw(false)
		if err != nil {
			return nil, err
		}
		radii = append(radii, Radius{Value: sample * p.Multiplier, AboveThreshold: false})
	}

	s.log(fmt.Sprintf("Sampled %d radii, %d above threshold (range %d-%d) in %d draws", len(radii), roomTarget, minRooms, maxRooms, draws))
	return radii, nil
}

func (s *RadiusSampler) log(msg string) {
	if s.logMessage != nil {
		s.logMessage(msg)
	}
}
