package generation

import (
	"fmt"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// CorridorParams configures corridor carving
type CorridorParams struct {
	Width       int // Corridor thickness in grid units
	MaxAttempts int // Carving attempts per connection
}

// corridorShape is the routing chosen for a pair of rooms
type corridorShape int

const (
	shapeL         corridorShape = iota // Two legs meeting at a right angle
	shapeVertical                       // Straight, rooms share an X span
	shapeHorizontal                     // Straight, rooms share a Y span
)

// CorridorCarver links connected rooms with collision-free corridors
type CorridorCarver struct {
	rng        *rand.Rand
	logMessage func(string)
}

// NewCorridorCarver creates a carver drawing from rng
func NewCorridorCarver(rng *rand.Rand, logFunc func(string)) *CorridorCarver {
	return &CorridorCarver{rng: rng, logMessage: logFunc}
}

// Carve routes one corridor per graph edge and returns every corridor rectangle in carving order.
// Entrances are added to the rooms of the layout as corridors are accepted.
func (c *CorridorCarver) Carve(layout *Layout, graph *ConnectivityGraph, p CorridorParams) ([]Rect, error) {
	var corridors []Rect

	for _, e := range graph.Edges() {
		var err error
		corridors, err = c.carveEdge(layout, corridors, e.U, e.V, p)
		if err != nil {
			return nil, err
		}
	}

	c.log(fmt.Sprintf("Carved %d corridor segments for %d connections", len(corridors), graph.EdgeCount()))
	return corridors, nil
}

// carveEdge retries routing between two rooms until the new segments collide with nothing.
// Rejected attempts roll back the entrances they added.
func (c *CorridorCarver) carveEdge(layout *Layout, corridors []Rect, source, target int, p CorridorParams) ([]Rect, error) {
	src, dst := &layout.Rooms[source], &layout.Rooms[target]

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		segments, ok := c.route(src, dst, p.Width)
		if !ok {
			continue
		}

		if !collides(segments, layout.Rooms, corridors) {
			return append(corridors, segments...), nil
		}

		src.RemoveLastEntrance()
		dst.RemoveLastEntrance()
	}

	return nil, fmt.Errorf("%w: rooms %d and %d after %d attempts", ErrCorridorExhausted, source, target, p.MaxAttempts)
}

// route proposes corridor segments between two rooms and adds one entrance to each.
// It returns false, without touching the rooms, when no placement was feasible.
func (c *CorridorCarver) route(src, dst *Room, width int) ([]Rect, bool) {
	switch classify(src.Rect, dst.Rect, width) {
	case shapeVertical:
		return c.straightVertical(src, dst, width)
	case shapeHorizontal:
		return c.straightHorizontal(src, dst, width)
	default:
		return c.lShape(src, dst, width)
	}
}

// classify picks the corridor shape from the overlap of the rooms' projections. A straight
// corridor needs room for its width plus one unit of wall on each side.
func classify(src, dst Rect, width int) corridorShape {
	if lo, hi, ok := projectionOverlap(src.X, src.Right(), dst.X, dst.Right()); ok {
		if hi-lo >= width+2 {
			return shapeVertical
		}
		return shapeL
	}
	if lo, hi, ok := projectionOverlap(src.Y, src.Top(), dst.Y, dst.Top()); ok {
		if hi-lo >= width+2 {
			return shapeHorizontal
		}
	}
	return shapeL
}

// projectionOverlap intersects the closed intervals [aStart, aEnd] and [bStart, bEnd]
func projectionOverlap(aStart, aEnd, bStart, bEnd int) (lo, hi int, ok bool) {
	ok = (aStart <= bStart && bStart <= aEnd) || (bStart <= aStart && aStart <= bEnd)
	return max(aStart, bStart), min(aEnd, bEnd), ok
}

// straightVertical joins two rooms stacked on top of each other
func (c *CorridorCarver) straightVertical(src, dst *Room, width int) ([]Rect, bool) {
	lo, hi, _ := projectionOverlap(src.X, src.Right(), dst.X, dst.Right())
	x, ok := c.randomIn(lo+1, hi-1-width)
	if !ok {
		return nil, false
	}

	lower, upper := src, dst
	if src.Y > dst.Y {
		lower, upper = dst, src
	}
	if lower.Top() > upper.Y {
		return nil, false
	}

	lower.AddEntrance(Point{x, lower.Top()}, Point{x + width, lower.Top()})
	upper.AddEntrance(Point{x, upper.Y}, Point{x + width, upper.Y})
	return nonEmpty(Rect{X: x, Y: lower.Top(), Width: width, Height: upper.Y - lower.Top()}), true
}

// straightHorizontal joins two rooms side by side
func (c *CorridorCarver) straightHorizontal(src, dst *Room, width int) ([]Rect, bool) {
	lo, hi, _ := projectionOverlap(src.Y, src.Top(), dst.Y, dst.Top())
	y, ok := c.randomIn(lo+1, hi-1-width)
	if !ok {
		return nil, false
	}

	left, right := src, dst
	if src.X > dst.X {
		left, right = dst, src
	}
	if left.Right() > right.X {
		return nil, false
	}

	left.AddEntrance(Point{left.Right(), y}, Point{left.Right(), y + width})
	right.AddEntrance(Point{right.X, y}, Point{right.X, y + width})
	return nonEmpty(Rect{X: left.Right(), Y: y, Width: right.X - left.Right(), Height: width}), true
}

// lShape routes two perpendicular legs. The quadrant of the target center relative to the
// source center decides the directions, a coin flip decides which axis is walked first.
func (c *CorridorCarver) lShape(src, dst *Room, width int) ([]Rect, bool) {
	sc, tc := src.Center(), dst.Center()
	right := tc.X >= sc.X
	up := tc.Y >= sc.Y

	if c.rng.IntN(2) == 0 {
		return c.horizontalFirst(src, dst, width, right, up)
	}
	return c.verticalFirst(src, dst, width, right, up)
}

// horizontalFirst leaves the source through its left or right wall and enters the target
// through its bottom or top wall
func (c *CorridorCarver) horizontalFirst(src, dst *Room, width int, right, up bool) ([]Rect, bool) {
	s, t := src.Rect, dst.Rect

	// y of the horizontal leg, inside the source wall and clear of the target
	yLo, yHi := s.Y+1, s.Top()-1-width
	if up {
		yHi = min(yHi, t.Y-width)
	} else {
		yLo = max(yLo, t.Top())
	}

	// x of the vertical leg, inside the target wall and clear of the source
	xLo, xHi := t.X+1, t.Right()-1-width
	if right {
		xLo = max(xLo, s.Right())
	} else {
		xHi = min(xHi, s.X-width)
	}

	y, okY := c.randomIn(yLo, yHi)
	x, okX := c.randomIn(xLo, xHi)
	if !okY || !okX {
		return nil, false
	}

	var horizontal, vertical Rect
	if right {
		horizontal = Rect{X: s.Right(), Y: y, Width: x - s.Right(), Height: width}
		src.AddEntrance(Point{s.Right(), y}, Point{s.Right(), y + width})
	} else {
		horizontal = Rect{X: x + width, Y: y, Width: s.X - (x + width), Height: width}
		src.AddEntrance(Point{s.X, y}, Point{s.X, y + width})
	}

	// The vertical leg owns the corner square
	if up {
		vertical = Rect{X: x, Y: y, Width: width, Height: t.Y - y}
		dst.AddEntrance(Point{x, t.Y}, Point{x + width, t.Y})
	} else {
		vertical = Rect{X: x, Y: t.Top(), Width: width, Height: y + width - t.Top()}
		dst.AddEntrance(Point{x, t.Top()}, Point{x + width, t.Top()})
	}

	return nonEmpty(horizontal, vertical), true
}

// verticalFirst leaves the source through its bottom or top wall and enters the target
// through its left or right wall
func (c *CorridorCarver) verticalFirst(src, dst *Room, width int, right, up bool) ([]Rect, bool) {
	s, t := src.Rect, dst.Rect

	// x of the vertical leg, inside the source wall and clear of the target
	xLo, xHi := s.X+1, s.Right()-1-width
	if right {
		xHi = min(xHi, t.X-width)
	} else {
		xLo = max(xLo, t.Right())
	}

	// y of the horizontal leg, inside the target wall and clear of the source
	yLo, yHi := t.Y+1, t.Top()-1-width
	if up {
		yLo = max(yLo, s.Top())
	} else {
		yHi = min(yHi, s.Y-width)
	}

	x, okX := c.randomIn(xLo, xHi)
	y, okY := c.randomIn(yLo, yHi)
	if !okX || !okY {
		return nil, false
	}

	var vertical, horizontal Rect

	// The vertical leg owns the corner square
	if up {
		vertical = Rect{X: x, Y: s.Top(), Width: width, Height: y + width - s.Top()}
		src.AddEntrance(Point{x, s.Top()}, Point{x + width, s.Top()})
	} else {
		vertical = Rect{X: x, Y: y, Width: width, Height: s.Y - y}
		src.AddEntrance(Point{x, s.Y}, Point{x + width, s.Y})
	}

	if right {
		horizontal = Rect{X: x + width, Y: y, Width: t.X - (x + width), Height: width}
		dst.AddEntrance(Point{t.X, y}, Point{t.X, y + width})
	} else {
		horizontal = Rect{X: t.Right(), Y: y, Width: x - t.Right(), Height: width}
		dst.AddEntrance(Point{t.Right(), y}, Point{t.Right(), y + width})
	}

	return nonEmpty(vertical, horizontal), true
}

// randomIn draws uniformly from [lo, hi]. It fails when the range is empty.
func (c *CorridorCarver) randomIn(lo, hi int) (int, bool) {
	if hi < lo {
		return 0, false
	}
	return lo + c.rng.IntN(hi-lo+1), true
}

// nonEmpty drops segments without area, left over when a room wall touches the bend
func nonEmpty(segments ...Rect) []Rect {
	out := segments[:0]
	for _, s := range segments {
		if s.Width > 0 && s.Height > 0 {
			out = append(out, s)
		}
	}
	return out
}

// collides reports whether any segment overlaps a room or an accepted corridor
func collides(segments []Rect, rooms []Room, corridors []Rect) bool {
	for _, s := range segments {
		for _, r := range rooms {
			if s.Overlaps(r.Rect) {
				return true
			}
		}
		for _, other := range corridors {
			if s.Overlaps(other) {
				return true
			}
		}
	}
	return false
}

// Prune keeps every room and only the filler cells crossed by at least one corridor
func Prune(layout *Layout, corridors []Rect) *Layout {
	crossed := mapset.New[int]()
	for _, corridor := range corridors {
		for i, cell := range layout.Cells {
			if corridor.Overlaps(cell.Rect) {
				crossed.Put(i)
			}
		}
	}

	pruned := &Layout{Rooms: layout.Rooms}
	for i, cell := range layout.Cells {
		if crossed.Has(i) {
			pruned.Cells = append(pruned.Cells, cell)
		}
	}
	return pruned
}

func (c *CorridorCarver) log(msg string) {
	if c.logMessage != nil {
		c.logMessage(msg)
	}
}
