// Package routing implements the indoor navigation core: per-query graph
// assembly over floor-scoped routing nodes and edges, accessibility-aware
// shortest-path search, path decomposition by floor, and turn-by-turn step
// generation.
//
// A Graph lives for exactly one query. The assembler owns every vertex and
// edge it loads; nothing outside the query holds references into it, so
// concurrent queries never share mutable state.
package routing

import (
	"sort"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
)

// Vertex is a routing node loaded into a query graph, tagged with the floor
// and coordinate used later for decomposition.
type Vertex struct {
	ID       uuid.UUID
	FloorID  uuid.UUID
	Location geo.Point
}

// Edge is one directed half of an undirected connection.
type Edge struct {
	To           uuid.UUID
	Weight       float64
	EdgeTypeCode string
}

// Graph is a weighted undirected graph keyed by routing-node id.
type Graph struct {
	vertices map[uuid.UUID]Vertex
	adjacent map[uuid.UUID][]Edge
	edges    int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[uuid.UUID]Vertex),
		adjacent: make(map[uuid.UUID][]Edge),
	}
}

// AddVertex inserts or replaces a vertex.
func (g *Graph) AddVertex(v Vertex) {
	g.vertices[v.ID] = v
}

// AddEdge connects two existing vertices in both directions. Edges to
// unknown vertices are ignored so the graph never dangles.
func (g *Graph) AddEdge(from, to uuid.UUID, weight float64, edgeTypeCode string) bool {
	if _, ok := g.vertices[from]; !ok {
		return false
	}
	if _, ok := g.vertices[to]; !ok {
		return false
	}
	g.adjacent[from] = append(g.adjacent[from], Edge{To: to, Weight: weight, EdgeTypeCode: edgeTypeCode})
	g.adjacent[to] = append(g.adjacent[to], Edge{To: from, Weight: weight, EdgeTypeCode: edgeTypeCode})
	g.edges++
	return true
}

// Vertex returns the vertex with the given id.
func (g *Graph) Vertex(id uuid.UUID) (Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id uuid.UUID) bool {
	_, ok := g.vertices[id]
	return ok
}

// Neighbors returns the outgoing edges of id in deterministic (target id)
// order, so traversal results are stable for a fixed graph.
func (g *Graph) Neighbors(id uuid.UUID) []Edge {
	edges := g.adjacent[id]
	sorted := make([]Edge, len(edges))
	copy(sorted, edges)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].To.String() < sorted[j].To.String()
	})
	return sorted
}

// EdgeBetween returns the lowest-weight edge connecting a and b.
func (g *Graph) EdgeBetween(a, b uuid.UUID) (Edge, bool) {
	var best Edge
	found := false
	for _, e := range g.adjacent[a] {
		if e.To != b {
			continue
		}
		if !found || e.Weight < best.Weight {
			best = e
			found = true
		}
	}
	return best, found
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}
