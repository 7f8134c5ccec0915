package generation

import "fmt"

// Map is the finished dungeon layout. It is never mutated after construction and every
// accessor returns a copy, so a Map can be shared freely between goroutines.
type Map struct {
	rooms     []Room
	cells     []Cell // Filler cells only
	bounds    Rect
	graph     *ConnectivityGraph
	corridors []Rect
}

// newMap takes ownership of its arguments
func newMap(layout *Layout, graph *ConnectivityGraph, corridors []Rect) *Map {
	m := &Map{
		rooms:     layout.Rooms,
		cells:     layout.Cells,
		graph:     graph,
		corridors: corridors,
	}
	m.bounds = BoundingBox(layout.Rects())
	return m
}

// Cells returns every cell of the map, rooms first, each exactly once
func (m *Map) Cells() []Cell {
	out := make([]Cell, 0, len(m.rooms)+len(m.cells))
	for _, r := range m.rooms {
		out = append(out, r.Cell)
	}
	return append(out, m.cells...)
}

// FillerCells returns the cells that are not rooms
func (m *Map) FillerCells() []Cell {
	out := make([]Cell, len(m.cells))
	copy(out, m.cells)
	return out
}

// Rooms returns the rooms with their entrances. Room indices match the graph vertices.
func (m *Map) Rooms() []Room {
	out := make([]Room, len(m.rooms))
	for i, r := range m.rooms {
		out[i] = r.clone()
	}
	return out
}

// Bounds returns the smallest rectangle enclosing every cell
func (m *Map) Bounds() Rect {
	return m.bounds
}

// Graph returns a copy of the connectivity graph
func (m *Map) Graph() *ConnectivityGraph {
	return m.graph.clone()
}

// Corridors returns the corridor rectangles in carving order
func (m *Map) Corridors() []Rect {
	out := make([]Rect, len(m.corridors))
	copy(out, m.corridors)
	return out
}

func (m *Map) String() string {
	return fmt.Sprintf("map %s: %d rooms, %d filler cells, %d connections, %d corridor segments",
		m.bounds, len(m.rooms), len(m.cells), m.graph.EdgeCount(), len(m.corridors))
}
