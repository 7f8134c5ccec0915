package generation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/fogleman/delaunay"
	"github.com/zyedidia/generic/mapset"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Edge is an undirected connection between two rooms, identified by their indices.
// NewEdge normalizes the endpoints so that NewEdge(u, v) == NewEdge(v, u).
type Edge struct {
	U, V int
}

// NewEdge creates a normalized edge
func NewEdge(u, v int) Edge {
	if u > v {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// ConnectivityGraph is an undirected graph over room indices without parallel edges or self-loops
type ConnectivityGraph struct {
	vertices int
	edges    []Edge // Insertion order
	index    mapset.Set[Edge]
}

// NewConnectivityGraph creates an edgeless graph over rooms 0..vertices-1
func NewConnectivityGraph(vertices int) *ConnectivityGraph {
	return &ConnectivityGraph{
		vertices: vertices,
		index:    mapset.New[Edge](),
	}
}

// AddEdge inserts the edge u-v unless it already exists. It reports whether the edge was added.
func (g *ConnectivityGraph) AddEdge(u, v int) bool {
	if u == v || u < 0 || v < 0 || u >= g.vertices || v >= g.vertices {
		return false
	}

	e := NewEdge(u, v)
	if g.index.Has(e) {
		return false
	}
	g.index.Put(e)
	g.edges = append(g.edges, e)
	return true
}

// HasEdge reports whether u and v are connected by an edge
func (g *ConnectivityGraph) HasEdge(u, v int) bool {
	return g.index.Has(NewEdge(u, v))
}

// VertexCount returns the number of rooms in the graph
func (g *ConnectivityGraph) VertexCount() int {
	return g.vertices
}

// EdgeCount returns the number of edges
func (g *ConnectivityGraph) EdgeCount() int {
	return len(g.edges)
}

// Edges returns a copy of the edges in insertion order
func (g *ConnectivityGraph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the rooms adjacent to u
func (g *ConnectivityGraph) Neighbors(u int) []int {
	var out []int
	for _, e := range g.edges {
		switch u {
		case e.U:
			out = append(out, e.V)
		case e.V:
			out = append(out, e.U)
		}
	}
	return out
}

// Connected reports whether every room can reach every other room
func (g *ConnectivityGraph) Connected() bool {
	if g.vertices <= 1 {
		return true
	}

	ug := simple.NewUndirectedGraph()
	for i := 0; i < g.vertices; i++ {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		ug.SetEdge(ug.NewEdge(simple.Node(e.U), simple.Node(e.V)))
	}

	return len(topo.ConnectedComponents(ug)) == 1
}

// retain keeps only the edges for which keep returns true, preserving order
func (g *ConnectivityGraph) retain(keep func(Edge) bool) {
	kept := g.edges[:0]
	for _, e := range g.edges {
		if keep(e) {
			kept = append(kept, e)
		} else {
			g.index.Remove(e)
		}
	}
	g.edges = kept
}

// clone returns an independent copy of the graph
func (g *ConnectivityGraph) clone() *ConnectivityGraph {
	c := NewConnectivityGraph(g.vertices)
	for _, e := range g.edges {
		c.AddEdge(e.U, e.V)
	}
	return c
}

// GraphBuilder derives the corridor graph from room positions
type GraphBuilder struct {
	rng        *rand.Rand
	logMessage func(string)
}

// NewGraphBuilder creates a graph builder drawing from rng
func NewGraphBuilder(rng *rand.Rand, logFunc func(string)) *GraphBuilder {
	return &GraphBuilder{rng: rng, logMessage: logFunc}
}

// Build triangulates the room centers, reduces the triangulation to a minimum spanning tree over
// center distances, then re-admits a random share of the dropped edges to create loops.
// extraFraction is the number of re-admitted edges relative to the tree size.
func (b *GraphBuilder) Build(rooms []Rect, extraFraction float64) *ConnectivityGraph {
	centers := make([]r2.Vec, len(rooms))
	for i, r := range rooms {
		centers[i] = r.Center()
	}

	graph := b.triangulate(centers)
	tree := minimumSpanningTree(graph, centers)

	var spare []Edge
	for _, e := range graph.edges {
		if !tree.Has(e) {
			spare = append(spare, e)
		}
	}

	extra := clampInt(roundInt(float64(tree.Size())*extraFraction), 0, len(spare))
	b.rng.Shuffle(len(spare), func(i, j int) { spare[i], spare[j] = spare[j], spare[i] })

	kept := mapset.New[Edge]()
	for _, e := range spare[:extra] {
		kept.Put(e)
	}
	graph.retain(func(e Edge) bool { return tree.Has(e) || kept.Has(e) })

	b.log(fmt.Sprintf("Connectivity graph: %d rooms, %d tree edges, %d extra edges", len(rooms), tree.Size(), extra))
	return graph
}

// triangulate adds one edge per unordered pair of rooms sharing a Delaunay triangle.
// Degenerate inputs (fewer than three rooms, all centers collinear) fall back to the
// complete graph, which the spanning tree then reduces.
func (b *GraphBuilder) triangulate(centers []r2.Vec) *ConnectivityGraph {
	graph := NewConnectivityGraph(len(centers))

	points := make([]delaunay.Point, len(centers))
	for i, c := range centers {
		points[i] = delaunay.Point{X: c.X, Y: c.Y}
	}

	var triangles []int
	if len(points) >= 3 {
		if t, err := delaunay.Triangulate(points); err == nil {
			triangles = t.Triangles
		} else {
			b.log(fmt.Sprintf("Triangulation failed (%v), connecting every room pair", err))
		}
	}

	if len(triangles) == 0 {
		for u := range centers {
			for v := u + 1; v < len(centers); v++ {
				graph.AddEdge(u, v)
			}
		}
		return graph
	}

	for i := 0; i+2 < len(triangles); i += 3 {
		p, q, r := triangles[i], triangles[i+1], triangles[i+2]
		graph.AddEdge(p, q)
		graph.AddEdge(q, r)
		graph.AddEdge(r, p)
	}
	return graph
}

// minimumSpanningTree returns the edges of a minimum spanning tree of g weighted by center distance
func minimumSpanningTree(g *ConnectivityGraph, centers []r2.Vec) mapset.Set[Edge] {
	weighted := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < g.vertices; i++ {
		weighted.AddNode(simple.Node(i))
	}

	for k, e := range g.edges {
		// Kruskal's sort is not stable, the insertion rank breaks distance ties reproducibly
		w := r2.Norm(r2.Sub(centers[e.U], centers[e.V])) + float64(k)*1e-9
		weighted.SetWeightedEdge(weighted.NewWeightedEdge(simple.Node(e.U), simple.Node(e.V), w))
	}

	dst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Kruskal(dst, weighted)

	tree := mapset.New[Edge]()
	edges := dst.Edges()
	for edges.Next() {
		e := edges.Edge()
		tree.Put(NewEdge(int(e.From().ID()), int(e.To().ID())))
	}
	return tree
}

func (b *GraphBuilder) log(msg string) {
	if b.logMessage != nil {
		b.logMessage(msg)
	}
}
