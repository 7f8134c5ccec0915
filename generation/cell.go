package generation

import (
	"fmt"
	"strings"
)

// Orientation constrains the aspect of a cell
type Orientation int

const (
	OrientationOriginal  Orientation = iota // No constraint
	OrientationLandscape                    // Width strictly greater than height
	OrientationPortrait                     // Height strictly greater than width
)

func (o Orientation) String() string {
	switch o {
	case OrientationLandscape:
		return "landscape"
	case OrientationPortrait:
		return "portrait"
	default:
		return "original"
	}
}

// ParseOrientation converts a configuration string to an Orientation
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "", "original":
		return OrientationOriginal, nil
	case "landscape":
		return OrientationLandscape, nil
	case "portrait":
		return OrientationPortrait, nil
	}
	return OrientationOriginal, fmt.Errorf("%w: unknown orientation %q", ErrConfig, s)
}

// Ratio returns the aspect ratio of r as measured for this orientation
func (o Orientation) Ratio(r Rect) float64 {
	w, h := float64(r.Width), float64(r.Height)
	switch o {
	case OrientationLandscape:
		return w / h
	case OrientationPortrait:
		return h / w
	default:
		return max(w, h) / min(w, h)
	}
}

// Cell is the smallest positioned unit of the layout
type Cell struct {
	Rect
	orientation Orientation
}

// NewCell creates a cell with the original orientation
func NewCell(x, y, width, height int) Cell {
	return Cell{Rect: Rect{X: x, Y: y, Width: width, Height: height}}
}

// Orientation returns the orientation tag of the cell
func (c Cell) Orientation() Orientation {
	return c.orientation
}

// SetOrientation tags the cell, failing when its current geometry does not satisfy the orientation
func (c *Cell) SetOrientation(o Orientation) error {
	switch o {
	case OrientationLandscape:
		if c.Width <= c.Height {
			return fmt.Errorf("%w: landscape needs width > height, got %dx%d", ErrOrientationViolation, c.Width, c.Height)
		}
	case OrientationPortrait:
		if c.Height <= c.Width {
			return fmt.Errorf("%w: portrait needs height > width, got %dx%d", ErrOrientationViolation, c.Width, c.Height)
		}
	}
	c.orientation = o
	return nil
}

// Entrance is an undirected wall segment joining a room to a corridor
type Entrance struct {
	Start, End Point
}

// Equal reports whether two entrances cover the same segment, regardless of endpoint order
func (e Entrance) Equal(o Entrance) bool {
	return (e.Start == o.Start && e.End == o.End) || (e.Start == o.End && e.End == o.Start)
}

// Room is a cell that hosts gameplay content and owns entrances.
// Entrances are kept in carving order so the latest one can be rolled back.
type Room struct {
	Cell
	entrances []Entrance
}

// NewRoom creates a room without entrances
func NewRoom(x, y, width, height int) Room {
	return Room{Cell: NewCell(x, y, width, height)}
}

// AddEntrance appends an entrance
func (r *Room) AddEntrance(start, end Point) {
	r.entrances = append(r.entrances, Entrance{Start: start, End: end})
}

// RemoveLastEntrance drops the most recently added entrance, if any
func (r *Room) RemoveLastEntrance() {
	if len(r.entrances) > 0 {
		r.entrances = r.entrances[:len(r.entrances)-1]
	}
}

// Entrances returns a copy of the entrances in carving order
func (r Room) Entrances() []Entrance {
	out := make([]Entrance, len(r.entrances))
	copy(out, r.entrances)
	return out
}

// BottomEntrances returns the entrances lying on the bottom wall
func (r Room) BottomEntrances() []Entrance {
	return r.entrancesWhere(func(e Entrance) bool { return e.Start.Y == r.Y && e.End.Y == r.Y })
}

// TopEntrances returns the entrances lying on the top wall
func (r Room) TopEntrances() []Entrance {
	top := r.Top()
	return r.entrancesWhere(func(e Entrance) bool { return e.Start.Y == top && e.End.Y == top })
}

// LeftEntrances returns the entrances lying on the left wall
func (r Room) LeftEntrances() []Entrance {
	return r.entrancesWhere(func(e Entrance) bool { return e.Start.X == r.X && e.End.X == r.X })
}

// RightEntrances returns the entrances lying on the right wall
func (r Room) RightEntrances() []Entrance {
	right := r.Right()
	return r.entrancesWhere(func(e Entrance) bool { return e.Start.X == right && e.End.X == right })
}

func (r Room) entrancesWhere(keep func(Entrance) bool) []Entrance {
	var out []Entrance
	for _, e := range r.entrances {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// clone deep-copies the entrance list so the copy can be handed out safely
func (r Room) clone() Room {
	r.entrances = r.Entrances()
	return r
}

func (r Room) String() string {
	return fmt.Sprintf("room %s, %d entrances", r.Rect, len(r.entrances))
}
