package generation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle in grid units. X and Y are the lower-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the y coordinate of the top edge
func (r Rect) Top() int {
	return r.Y + r.Height
}

// Center returns the exact center of the rectangle
func (r Rect) Center() r2.Vec {
	return r2.Vec{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// HalfDiagonal returns the distance from the center to any corner
func (r Rect) HalfDiagonal() float64 {
	return r2.Norm(r2.Vec{X: float64(r.Width), Y: float64(r.Height)}) / 2
}

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Top() && r.Top() > o.Y
}

// SetCenter moves the rectangle so that its center lands on (cx, cy), rounding down
func (r *Rect) SetCenter(cx, cy int) {
	r.X = cx - r.Width/2
	r.Y = cy - r.Height/2
}

// Box converts the rectangle to a gonum box
func (r Rect) Box() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: float64(r.X), Y: float64(r.Y)},
		Max: r2.Vec{X: float64(r.Right()), Y: float64(r.Top())},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d) %dx%d", r.X, r.Y, r.Width, r.Height)
}

// BoundingBox returns the smallest rectangle enclosing every given rectangle.
// An empty input yields the zero Rect.
func BoundingBox(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}

	box := rects[0].Box()
	for _, r := range rects[1:] {
		box = box.Union(r.Box())
	}

	return Rect{
		X:      int(box.Min.X),
		Y:      int(box.Min.Y),
		Width:  int(box.Max.X - box.Min.X),
		Height: int(box.Max.Y - box.Min.Y),
	}
}

// Point is an integer grid coordinate
type Point struct {
	X, Y int
}

// roundInt rounds half away from zero
func roundInt(v float64) int {
	return int(math.Round(v))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
