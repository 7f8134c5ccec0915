package generation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// CellParams configures cell and room instantiation
type CellParams struct {
	MinCellWidth, MinCellHeight int
	MaxCellWidth, MaxCellHeight int
	MinRoomWidth, MinRoomHeight int
	MinRatio, MaxRatio          float64
	Orientation                 Orientation
	MaxRatioAttempts            int
}

// Layout is the working set of the pipeline: rooms and filler cells addressed by index
type Layout struct {
	Rooms []Room
	Cells []Cell
}

// Rects returns the rectangles of every room followed by every filler cell
func (l *Layout) Rects() []Rect {
	rects := make([]Rect, 0, len(l.Rooms)+len(l.Cells))
	for _, r := range l.Rooms {
		rects = append(rects, r.Rect)
	}
	for _, c := range l.Cells {
		rects = append(rects, c.Rect)
	}
	return rects
}

// SetRects writes positions back in the order produced by Rects
func (l *Layout) SetRects(rects []Rect) {
	for i := range l.Rooms {
		l.Rooms[i].Rect = rects[i]
	}
	for i := range l.Cells {
		l.Cells[i].Rect = rects[len(l.Rooms)+i]
	}
}

// RoomRects returns the rectangles of the rooms only
func (l *Layout) RoomRects() []Rect {
	return l.Rects()[:len(l.Rooms)]
}

// CellAssembler turns radii into positioned cells and rooms
type CellAssembler struct {
	rng        *rand.Rand
	angle      distuv.Uniform
	logMessage func(string)
}

// NewCellAssembler creates an assembler drawing from rng
func NewCellAssembler(rng *rand.Rand, logFunc func(string)) *CellAssembler {
	return &CellAssembler{
		rng:        rng,
		angle:      distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: rng},
		logMessage: logFunc,
	}
}

// Assemble builds one cell or room per radius
func (a *CellAssembler) Assemble(radii []Radius, p CellParams) (*Layout, error) {
	layout := &Layout{}

	for i, radius := range radii {
		if !radius.AboveThreshold {
			x, y := a.pointOnCircle(radius.Value)
			layout.Cells = append(layout.Cells, NewCell(x, y,
				clampInt(2*absInt(x), p.MinCellWidth, p.MaxCellWidth),
				clampInt(2*absInt(y), p.MinCellHeight, p.MaxCellHeight),
			))
			continue
		}

		room, err := a.assembleRoom(radius.Value, p)
		if err != nil {
			return nil, fmt.Errorf("radius %d (%.2f): %w", i, radius.Value, err)
		}
		layout.Rooms = append(layout.Rooms, room)
	}

	a.log(fmt.Sprintf("Assembled %d rooms and %d cells", len(layout.Rooms), len(layout.Cells)))
	return layout, nil
}

// assembleRoom places a room on the circle of the given radius, redrawing until its ratio fits
func (a *CellAssembler) assembleRoom(radius float64, p CellParams) (Room, error) {
	room := a.roomOnCircle(radius, p)

	attempts := 0
	for ratio := p.Orientation.Ratio(room.Rect); ratio < p.MinRatio || ratio > p.MaxRatio; ratio = p.Orientation.Ratio(room.Rect) {
		if attempts >= p.MaxRatioAttempts {
			return Room{}, fmt.Errorf("%w: last ratio %.2f outside [%.2f, %.2f] after %d attempts",
				ErrRatioExhausted, ratio, p.MinRatio, p.MaxRatio, attempts)
		}
		room = a.roomOnCircle(radius, p)
		attempts++
	}

	// The ratio loop already guarantees the geometry, this re-validates it
	if err := room.SetOrientation(p.Orientation); err != nil {
		return Room{}, err
	}

	return room, nil
}

func (a *CellAssembler) roomOnCircle(radius float64, p CellParams) Room {
	x, y := a.pointOnCircle(radius)
	return NewRoom(x, y, max(2*absInt(x), p.MinRoomWidth), max(2*absInt(y), p.MinRoomHeight))
}

func (a *CellAssembler) pointOnCircle(radius float64) (int, int) {
	angle := a.angle.Rand()
	return roundInt(math.Cos(angle) * radius), roundInt(math.Sin(angle) * radius)
}

func (a *CellAssembler) log(msg string) {
	if a.logMessage != nil {
		a.logMessage(msg)
	}
}
