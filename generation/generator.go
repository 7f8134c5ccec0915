package generation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"ebiten-dungen/config"
	"ebiten-dungen/events"
)

// Stage names a step of the generation pipeline
type Stage int

const (
	StageRadii Stage = iota
	StageCells
	StageSeparation
	StageGraph
	StageCorridors
	StageMap
)

func (s Stage) String() string {
	switch s {
	case StageRadii:
		return "radius sampling"
	case StageCells:
		return "cell assembly"
	case StageSeparation:
		return "separation"
	case StageGraph:
		return "connectivity graph"
	case StageCorridors:
		return "corridor carving"
	case StageMap:
		return "map assembly"
	default:
		return fmt.Sprintf("stage %d", int(s))
	}
}

// Result carries the outcome of an asynchronous generation
type Result struct {
	Map *Map
	Err error
}

// MapGenerator runs the whole pipeline and retries it on recoverable failures
type MapGenerator struct {
	cfg        config.Generation
	rng        *rand.Rand
	logMessage func(string)
	events     *events.Manager
}

// NewMapGenerator creates a generator seeded from the clock
func NewMapGenerator(cfg config.Generation, logFunc func(string)) *MapGenerator {
	seed := uint64(time.Now().UnixNano())
	return &MapGenerator{
		cfg:        cfg,
		rng:        rand.New(rand.NewPCG(seed, seed)),
		logMessage: logFunc,
	}
}

// SetSeed allows setting a specific seed for reproducible maps
func (g *MapGenerator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// SetEventManager attaches a manager that receives progress events. nil detaches it.
func (g *MapGenerator) SetEventManager(m *events.Manager) {
	g.events = m
}

// Generate builds a map. Configuration errors and context cancellation are returned as is,
// recoverable failures restart the pipeline until MaxGenerationAttempts is spent.
func (g *MapGenerator) Generate(ctx context.Context) (*Map, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	orientation, err := ParseOrientation(g.cfg.Orientation)
	if err != nil {
		return nil, err
	}

	var last error
	for attempt := 1; attempt <= g.cfg.MaxGenerationAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := g.attempt(ctx, attempt, orientation)
		if err == nil {
			g.log(fmt.Sprintf("Generated %s on attempt %d", m, attempt))
			g.emit(MapGenerated{
				Attempts:  attempt,
				Rooms:     len(m.rooms),
				Cells:     len(m.cells),
				Corridors: len(m.corridors),
			})
			return m, nil
		}
		if !IsRecoverable(err) {
			return nil, err
		}

		last = err
		g.log(fmt.Sprintf("Attempt %d failed: %v", attempt, err))
		g.emit(AttemptFailed{Attempt: attempt, Err: err})
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, g.cfg.MaxGenerationAttempts, last)
}

// GenerateAsync runs Generate on a new goroutine. The channel delivers exactly one Result
// and is then closed. The generator must not be used again until the result arrives.
func (g *MapGenerator) GenerateAsync(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		m, err := g.Generate(ctx)
		out <- Result{Map: m, Err: err}
	}()
	return out
}

// attempt runs every stage once
func (g *MapGenerator) attempt(ctx context.Context, attempt int, orientation Orientation) (*Map, error) {
	cfg := g.cfg

	var (
		radii     []Radius
		layout    *Layout
		graph     *ConnectivityGraph
		corridors []Rect
		result    *Map
	)

	stages := []struct {
		stage Stage
		run   func() error
	}{
		{StageRadii, func() (err error) {
			radii, err = NewRadiusSampler(g.rng, g.logMessage).Sample(RadiusParams{
				Count:           cfg.DesiredCellCount,
				MinRoomFraction: cfg.MinRoomFraction,
				MaxRoomFraction: cfg.MaxRoomFraction,
				Multiplier:      cfg.RadiusMultiplier,
				Mean:            cfg.NormalMean,
				StdDev:          cfg.NormalStdDev,
				Threshold:       cfg.NormalThreshold,
				MaxDraws:        cfg.MaxRadiusDraws,
			})
			return err
		}},
		{StageCells, func() (err error) {
			layout, err = NewCellAssembler(g.rng, g.logMessage).Assemble(radii, CellParams{
				MinCellWidth:     cfg.MinCellWidth,
				MinCellHeight:    cfg.MinCellHeight,
				MaxCellWidth:     cfg.MaxCellWidth,
				MaxCellHeight:    cfg.MaxCellHeight,
				MinRoomWidth:     cfg.MinRoomWidth,
				MinRoomHeight:    cfg.MinRoomHeight,
				MinRatio:         cfg.MinRoomRatio,
				MaxRatio:         cfg.MaxRoomRatio,
				Orientation:      orientation,
				MaxRatioAttempts: cfg.MaxRatioAttempts,
			})
			return err
		}},
		{StageSeparation, func() error {
			return g.separate(layout)
		}},
		{StageGraph, func() error {
			graph = NewGraphBuilder(g.rng, g.logMessage).Build(layout.RoomRects(), cfg.RemainingEdgesFraction)
			return nil
		}},
		{StageCorridors, func() (err error) {
			corridors, err = NewCorridorCarver(g.rng, g.logMessage).Carve(layout, graph, CorridorParams{
				Width:       cfg.CorridorWidth,
				MaxAttempts: cfg.MaxCorridorAttempts,
			})
			return err
		}},
		{StageMap, func() error {
			result = newMap(Prune(layout, corridors), graph, corridors)
			return nil
		}},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := s.run(); err != nil {
			return nil, fmt.Errorf("attempt %d, %s: %w", attempt, s.stage, err)
		}
		g.emit(StageCompleted{Attempt: attempt, Stage: s.stage, Elapsed: time.Since(start)})
	}

	return result, nil
}

// separate spreads the rooms apart, gathers the filler cells around them and packs everything
func (g *MapGenerator) separate(layout *Layout) error {
	sep := NewRoomSeparator(g.rng, g.cfg.RepelDecay, g.cfg.MaxSeparationSweeps, g.logMessage)

	rects := layout.Rects()
	rooms, cells := rects[:len(layout.Rooms)], rects[len(layout.Rooms):]

	if err := sep.Spread(rooms, g.cfg.RoomSpreadMargin); err != nil {
		return err
	}

	center := BoundingBox(rooms).Center()
	sep.Gather(cells, roundInt(center.X), roundInt(center.Y))

	fixed := make([]bool, len(rects))
	for i := range rooms {
		fixed[i] = g.cfg.FixRoomsDuringPack
	}
	if err := sep.Pack(rects, fixed); err != nil {
		return err
	}

	layout.SetRects(rects)
	return nil
}

func (g *MapGenerator) emit(e events.Event) {
	if g.events != nil {
		g.events.Emit(e)
	}
}

func (g *MapGenerator) log(msg string) {
	if g.logMessage != nil {
		g.logMessage(msg)
	}
}
