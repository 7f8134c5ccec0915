package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ebiten-dungen/generation"
	"ebiten-dungen/systems"
)

// Debug palette
var (
	gridColor        = color.NRGBA{255, 255, 255, 26}
	boundingBoxColor = color.NRGBA{0x8b, 0x45, 0x13, 0xff} // Brown
	cellGridColor    = color.NRGBA{0x41, 0x69, 0xe1, 0xff} // Royal blue
	roomGridColor    = color.NRGBA{0xb2, 0x22, 0x22, 0xff} // Firebrick
	roomCircleColor  = color.NRGBA{0xff, 0xff, 0x00, 0xff} // Yellow
	graphEdgeColor   = color.NRGBA{0xff, 0x69, 0xb4, 0xff} // Pink
	corridorColor    = color.NRGBA{0x32, 0xcd, 0x32, 0xff} // Lime
	entranceColor    = color.White
)

// Grid lines are skipped below this zoom, they would fill the cells solid
const minGridZoom = 3.0

// MapRenderer draws a finished map. It only reads the map.
type MapRenderer struct {
	bounds       generation.Rect
	cells        []generation.Cell
	rooms        []generation.Room
	corridors    []generation.Rect
	edges        []generation.Edge
	circleMargin float64
}

// NewMapRenderer snapshots the map for drawing. circleMargin is the spread margin drawn around rooms.
func NewMapRenderer(m *generation.Map, circleMargin float64) *MapRenderer {
	return &MapRenderer{
		bounds:       m.Bounds(),
		cells:        m.FillerCells(),
		rooms:        m.Rooms(),
		corridors:    m.Corridors(),
		edges:        m.Graph().Edges(),
		circleMargin: circleMargin,
	}
}

// Draw renders the map through the camera
func (r *MapRenderer) Draw(screen *ebiten.Image, cam *systems.Camera) {
	r.drawGrid(screen, cam)

	for i := len(r.cells) - 1; i >= 0; i-- {
		r.drawCellGrid(screen, cam, r.cells[i].Rect, cellGridColor)
	}
	for i := len(r.rooms) - 1; i >= 0; i-- {
		room := r.rooms[i].Rect
		r.drawCellGrid(screen, cam, room, roomGridColor)

		cx, cy := cam.WorldToScreen(room.Center().X, room.Center().Y)
		radius := (room.HalfDiagonal() + r.circleMargin) * cam.Zoom
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(radius), 1, roomCircleColor, true)
	}

	r.drawGraph(screen, cam)

	for _, c := range r.corridors {
		r.drawCellGrid(screen, cam, c, corridorColor)
	}

	for _, room := range r.rooms {
		for _, e := range room.Entrances() {
			r.line(screen, cam, float64(e.Start.X), float64(e.Start.Y), float64(e.End.X), float64(e.End.Y), 2, entranceColor)
		}
	}
}

// drawGrid draws the unit grid over the bounding box and the box outline
func (r *MapRenderer) drawGrid(screen *ebiten.Image, cam *systems.Camera) {
	b := r.bounds
	if cam.Zoom >= minGridZoom {
		for x := b.X; x <= b.Right(); x++ {
			r.line(screen, cam, float64(x), float64(b.Y), float64(x), float64(b.Top()), 1, gridColor)
		}
		for y := b.Y; y <= b.Top(); y++ {
			r.line(screen, cam, float64(b.X), float64(y), float64(b.Right()), float64(y), 1, gridColor)
		}
	}
	r.rect(screen, cam, b, boundingBoxColor)
}

// drawCellGrid outlines every grid unit of rect
func (r *MapRenderer) drawCellGrid(screen *ebiten.Image, cam *systems.Camera, rect generation.Rect, clr color.Color) {
	if !cam.IsVisible(rect) {
		return
	}
	if cam.Zoom < minGridZoom {
		r.rect(screen, cam, rect, clr)
		return
	}

	for x := rect.X; x <= rect.Right(); x++ {
		r.line(screen, cam, float64(x), float64(rect.Y), float64(x), float64(rect.Top()), 1, clr)
	}
	for y := rect.Y; y <= rect.Top(); y++ {
		r.line(screen, cam, float64(rect.X), float64(y), float64(rect.Right()), float64(y), 1, clr)
	}
}

// drawGraph links the centers of connected rooms
func (r *MapRenderer) drawGraph(screen *ebiten.Image, cam *systems.Camera) {
	for _, e := range r.edges {
		a, b := r.rooms[e.U].Center(), r.rooms[e.V].Center()
		r.line(screen, cam, a.X, a.Y, b.X, b.Y, 1, graphEdgeColor)
	}
}

func (r *MapRenderer) rect(screen *ebiten.Image, cam *systems.Camera, rect generation.Rect, clr color.Color) {
	x, y := cam.WorldToScreen(float64(rect.X), float64(rect.Top()))
	w, h := float64(rect.Width)*cam.Zoom, float64(rect.Height)*cam.Zoom
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, clr, false)
}

func (r *MapRenderer) line(screen *ebiten.Image, cam *systems.Camera, x0, y0, x1, y1 float64, width float32, clr color.Color) {
	sx0, sy0 := cam.WorldToScreen(x0, y0)
	sx1, sy1 := cam.WorldToScreen(x1, y1)
	vector.StrokeLine(screen, float32(sx0), float32(sy0), float32(sx1), float32(sy1), width, clr, false)
}
