package routing

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
)

// seqID builds a fixed, ordered UUID so tie-break assertions are stable.
func seqID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func TestAddEdgeRejectsUnknownVertices(t *testing.T) {
	g := NewGraph()
	a, b := seqID(1), seqID(2)
	g.AddVertex(Vertex{ID: a})

	if g.AddEdge(a, b, 1, "hallway") {
		t.Error("edge to unknown vertex should be rejected")
	}
	if g.AddEdge(b, a, 1, "hallway") {
		t.Error("edge from unknown vertex should be rejected")
	}
	if g.EdgeCount() != 0 {
		t.Errorf("edge count = %d, want 0", g.EdgeCount())
	}

	g.AddVertex(Vertex{ID: b})
	if !g.AddEdge(a, b, 1, "hallway") {
		t.Fatal("edge between known vertices should be accepted")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("edge count = %d, want 1", g.EdgeCount())
	}
}

func TestEdgesAreUndirected(t *testing.T) {
	g := NewGraph()
	a, b := seqID(1), seqID(2)
	g.AddVertex(Vertex{ID: a})
	g.AddVertex(Vertex{ID: b})
	g.AddEdge(a, b, 7.5, "hallway")

	for _, pair := range [][2]uuid.UUID{{a, b}, {b, a}} {
		e, ok := g.EdgeBetween(pair[0], pair[1])
		if !ok {
			t.Fatalf("expected edge between %s and %s", pair[0], pair[1])
		}
		if e.Weight != 7.5 {
			t.Errorf("weight = %g, want 7.5", e.Weight)
		}
		if e.EdgeTypeCode != "hallway" {
			t.Errorf("edge type = %q, want hallway", e.EdgeTypeCode)
		}
	}
}

func TestEdgeBetweenPicksLowestWeight(t *testing.T) {
	g := NewGraph()
	a, b := seqID(1), seqID(2)
	g.AddVertex(Vertex{ID: a})
	g.AddVertex(Vertex{ID: b})
	g.AddEdge(a, b, 10, "stairs")
	g.AddEdge(a, b, 4, "elevator")

	e, ok := g.EdgeBetween(a, b)
	if !ok {
		t.Fatal("expected an edge")
	}
	if e.Weight != 4 {
		t.Errorf("weight = %g, want 4", e.Weight)
	}
}

func TestNeighborsDeterministicOrder(t *testing.T) {
	g := NewGraph()
	hub := seqID(10)
	g.AddVertex(Vertex{ID: hub})
	// Insert neighbors in reverse id order.
	for n := 5; n >= 1; n-- {
		id := seqID(n)
		g.AddVertex(Vertex{ID: id})
		g.AddEdge(hub, id, float64(n), "hallway")
	}

	neighbors := g.Neighbors(hub)
	if len(neighbors) != 5 {
		t.Fatalf("expected 5 neighbors, got %d", len(neighbors))
	}
	for i := 1; i < len(neighbors); i++ {
		if neighbors[i-1].To.String() >= neighbors[i].To.String() {
			t.Errorf("neighbors out of order at %d", i)
		}
	}
}

func TestVertexCarriesFloorAndLocation(t *testing.T) {
	g := NewGraph()
	floor := seqID(100)
	g.AddVertex(Vertex{ID: seqID(1), FloorID: floor, Location: geo.Point{Lat: 51.5, Lng: -0.1}})

	v, ok := g.Vertex(seqID(1))
	if !ok {
		t.Fatal("vertex missing")
	}
	if v.FloorID != floor {
		t.Errorf("floor = %s, want %s", v.FloorID, floor)
	}
	if v.Location.Lat != 51.5 || v.Location.Lng != -0.1 {
		t.Errorf("location = %+v", v.Location)
	}
}
