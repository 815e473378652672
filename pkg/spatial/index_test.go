package spatial

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/model"
)

func makeNode(floorID uuid.UUID, lat, lng float64) model.RoutingNode {
	return model.RoutingNode{
		ID:       uuid.New(),
		FloorID:  floorID,
		Location: geo.Point{Lat: lat, Lng: lng},
	}
}

func TestIndex_EmptyFloor(t *testing.T) {
	ix := NewIndex()
	if _, ok := ix.Nearest(uuid.New(), geo.Point{Lat: 52.52, Lng: 13.4}); ok {
		t.Error("Expected no result for unknown floor")
	}
}

func TestIndex_SingleNode(t *testing.T) {
	floorID := uuid.New()
	node := makeNode(floorID, 52.5200, 13.4050)
	ix := NewIndex()
	ix.Rebuild(floorID, []model.RoutingNode{node})

	got, ok := ix.Nearest(floorID, geo.Point{Lat: 52.5300, Lng: 13.4100})
	if !ok {
		t.Fatal("Expected a result")
	}
	if got != node.ID {
		t.Errorf("Expected node %s, got %s", node.ID, got)
	}
}

func TestIndex_ExactCoordinateHit(t *testing.T) {
	floorID := uuid.New()
	nodes := []model.RoutingNode{
		makeNode(floorID, 52.5200, 13.4050),
		makeNode(floorID, 52.5201, 13.4052),
		makeNode(floorID, 52.5199, 13.4048),
	}
	ix := NewIndex()
	ix.Rebuild(floorID, nodes)

	// Querying a node's own coordinate must return that node, distance 0.
	got, ok := ix.Nearest(floorID, nodes[1].Location)
	if !ok {
		t.Fatal("Expected a result")
	}
	if got != nodes[1].ID {
		t.Errorf("Expected exact node %s, got %s", nodes[1].ID, got)
	}
}

func TestIndex_Idempotent(t *testing.T) {
	floorID := uuid.New()
	nodes := make([]model.RoutingNode, 20)
	for i := range nodes {
		nodes[i] = makeNode(floorID, 52.52+float64(i)*0.0001, 13.405+float64(i%5)*0.0002)
	}
	ix := NewIndex()
	ix.Rebuild(floorID, nodes)

	query := geo.Point{Lat: 52.5207, Lng: 13.4056}
	first, ok := ix.Nearest(floorID, query)
	if !ok {
		t.Fatal("Expected a result")
	}
	for i := 0; i < 10; i++ {
		again, _ := ix.Nearest(floorID, query)
		if again != first {
			t.Fatalf("Nearest not idempotent: %s then %s", first, again)
		}
	}
}

func TestIndex_IgnoresOtherFloors(t *testing.T) {
	floorA := uuid.New()
	floorB := uuid.New()
	// The floor B node sits right on the query point but must be invisible
	// from floor A.
	nodeA := makeNode(floorA, 52.5210, 13.4060)
	nodeB := makeNode(floorB, 52.5200, 13.4050)

	ix := NewIndex()
	ix.Rebuild(floorA, []model.RoutingNode{nodeA, nodeB})

	got, ok := ix.Nearest(floorA, geo.Point{Lat: 52.5200, Lng: 13.4050})
	if !ok {
		t.Fatal("Expected a result")
	}
	if got != nodeA.ID {
		t.Errorf("Expected floor A node %s, got %s", nodeA.ID, got)
	}
	if ix.Size(floorA) != 1 {
		t.Errorf("Expected 1 indexed node on floor A, got %d", ix.Size(floorA))
	}
}

func TestIndex_RebuildReplaces(t *testing.T) {
	floorID := uuid.New()
	old := makeNode(floorID, 52.5200, 13.4050)
	ix := NewIndex()
	ix.Rebuild(floorID, []model.RoutingNode{old})

	replacement := makeNode(floorID, 52.5300, 13.4150)
	ix.Rebuild(floorID, []model.RoutingNode{replacement})

	got, _ := ix.Nearest(floorID, old.Location)
	if got != replacement.ID {
		t.Errorf("Expected replacement node after rebuild, got %s", got)
	}

	ix.Rebuild(floorID, nil)
	if _, ok := ix.Nearest(floorID, old.Location); ok {
		t.Error("Expected no result after rebuilding with empty node set")
	}
}

// TestIndex_AgreesWithLinearScan cross-checks the k-d tree against the
// brute-force baseline on random node sets.
func TestIndex_AgreesWithLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	floorID := uuid.New()

	for trial := 0; trial < 25; trial++ {
		count := 1 + rng.Intn(120)
		nodes := make([]model.RoutingNode, count)
		for i := range nodes {
			nodes[i] = makeNode(floorID,
				52.52+rng.Float64()*0.002,
				13.40+rng.Float64()*0.003)
		}

		ix := NewIndex()
		ix.Rebuild(floorID, nodes)

		for q := 0; q < 20; q++ {
			query := geo.Point{
				Lat: 52.52 + rng.Float64()*0.002,
				Lng: 13.40 + rng.Float64()*0.003,
			}
			want, _ := NearestLinear(nodes, query)
			got, ok := ix.Nearest(floorID, query)
			if !ok {
				t.Fatal("Expected a result")
			}
			if got != want.ID {
				t.Fatalf("trial %d query %d: kd-tree returned %s, linear scan %s",
					trial, q, got, want.ID)
			}
		}
	}
}

func TestNearestLinear_Empty(t *testing.T) {
	if _, ok := NearestLinear(nil, geo.Point{}); ok {
		t.Error("Expected no result for empty node list")
	}
}

func TestNearestLinear_TieBreak(t *testing.T) {
	floorID := uuid.New()
	// Two nodes at the identical coordinate: lowest id must win.
	loc := geo.Point{Lat: 52.52, Lng: 13.405}
	a := model.RoutingNode{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), FloorID: floorID, Location: loc}
	b := model.RoutingNode{ID: uuid.MustParse("ffffffff-0000-0000-0000-000000000001"), FloorID: floorID, Location: loc}

	for _, order := range [][]model.RoutingNode{{a, b}, {b, a}} {
		got, ok := NearestLinear(order, loc)
		if !ok {
			t.Fatal("Expected a result")
		}
		if got.ID != a.ID {
			t.Errorf("Expected lowest id %s to win tie, got %s", a.ID, got.ID)
		}
	}
}

func BenchmarkIndex_Nearest(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	floorID := uuid.New()
	nodes := make([]model.RoutingNode, 500)
	for i := range nodes {
		nodes[i] = makeNode(floorID, 52.52+rng.Float64()*0.01, 13.40+rng.Float64()*0.01)
	}
	ix := NewIndex()
	ix.Rebuild(floorID, nodes)

	queries := make([]geo.Point, 64)
	for i := range queries {
		queries[i] = geo.Point{Lat: 52.52 + rng.Float64()*0.01, Lng: 13.40 + rng.Float64()*0.01}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Nearest(floorID, queries[i%len(queries)])
	}
}

func ExampleIndex_Nearest() {
	floorID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	node := model.RoutingNode{
		ID:       uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		FloorID:  floorID,
		Location: geo.Point{Lat: 52.5200, Lng: 13.4050},
	}

	ix := NewIndex()
	ix.Rebuild(floorID, []model.RoutingNode{node})

	id, ok := ix.Nearest(floorID, geo.Point{Lat: 52.5201, Lng: 13.4051})
	fmt.Println(ok, id)
	// Output: true 22222222-2222-2222-2222-222222222222
}
