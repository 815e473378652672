package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/model"
)

func seedVenue(t *testing.T, s *MemoryStore) (buildingID, floorID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	b := model.Building{Name: "Terminal 1", FloorsCount: 2}
	if err := s.CreateBuilding(ctx, &b); err != nil {
		t.Fatalf("CreateBuilding: %v", err)
	}
	f := model.Floor{BuildingID: b.ID, LevelNumber: 0, Name: "Ground", HeightMeters: 4.2}
	if err := s.CreateFloor(ctx, &f); err != nil {
		t.Fatalf("CreateFloor: %v", err)
	}
	return b.ID, f.ID
}

func TestBuildingLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	b := model.Building{Name: "Mall"}
	if err := s.CreateBuilding(ctx, &b); err != nil {
		t.Fatalf("CreateBuilding: %v", err)
	}
	if b.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected created timestamp")
	}

	got, err := s.GetBuilding(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBuilding: %v", err)
	}
	if got.Name != "Mall" {
		t.Errorf("name = %q, want Mall", got.Name)
	}

	if err := s.DeleteBuilding(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBuilding: %v", err)
	}
	if _, err := s.GetBuilding(ctx, b.ID); !IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestGetBuildingNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetBuilding(context.Background(), uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var ee *EntityError
	if !errors.As(err, &ee) {
		t.Fatal("expected EntityError")
	}
	if ee.Entity != "building" {
		t.Errorf("entity = %q, want building", ee.Entity)
	}
}

func TestFloorConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buildingID, _ := seedVenue(t, s)

	bad := model.Floor{BuildingID: buildingID, LevelNumber: 1, HeightMeters: 0}
	if err := s.CreateFloor(ctx, &bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero height: expected ErrInvalid, got %v", err)
	}

	orphan := model.Floor{BuildingID: uuid.New(), LevelNumber: 1, HeightMeters: 3}
	if err := s.CreateFloor(ctx, &orphan); !errors.Is(err, ErrReference) {
		t.Errorf("missing building: expected ErrReference, got %v", err)
	}

	dup := model.Floor{BuildingID: buildingID, LevelNumber: 0, HeightMeters: 3}
	if err := s.CreateFloor(ctx, &dup); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate level: expected ErrConflict, got %v", err)
	}
}

func TestListFloorsOrderedByLevel(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buildingID, _ := seedVenue(t, s)

	for _, level := range []int{3, -1, 1} {
		f := model.Floor{BuildingID: buildingID, LevelNumber: level, HeightMeters: 3}
		if err := s.CreateFloor(ctx, &f); err != nil {
			t.Fatalf("CreateFloor level %d: %v", level, err)
		}
	}

	floors, err := s.ListFloorsByBuilding(ctx, buildingID)
	if err != nil {
		t.Fatalf("ListFloorsByBuilding: %v", err)
	}
	if len(floors) != 4 {
		t.Fatalf("expected 4 floors, got %d", len(floors))
	}
	for i := 1; i < len(floors); i++ {
		if floors[i-1].LevelNumber >= floors[i].LevelNumber {
			t.Errorf("floors out of order at %d: %d then %d", i, floors[i-1].LevelNumber, floors[i].LevelNumber)
		}
	}
}

func TestCatalogCodes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	et := model.EdgeType{Code: "elevator", IsAccessible: true}
	if err := s.CreateEdgeType(ctx, &et); err != nil {
		t.Fatalf("CreateEdgeType: %v", err)
	}
	dup := model.EdgeType{Code: "elevator"}
	if err := s.CreateEdgeType(ctx, &dup); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate code: expected ErrConflict, got %v", err)
	}

	got, err := s.GetEdgeTypeByCode(ctx, "elevator")
	if err != nil {
		t.Fatalf("GetEdgeTypeByCode: %v", err)
	}
	if !got.IsAccessible {
		t.Error("expected elevator to be accessible")
	}

	if _, err := s.GetNodeTypeByCode(ctx, "hallway"); !IsNotFound(err) {
		t.Errorf("expected not found for missing node type, got %v", err)
	}
}

func TestRoutingGraphPersistence(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, floorID := seedVenue(t, s)

	nt := model.NodeType{Code: "hallway"}
	if err := s.CreateNodeType(ctx, &nt); err != nil {
		t.Fatalf("CreateNodeType: %v", err)
	}
	et := model.EdgeType{Code: "hallway", IsAccessible: true}
	if err := s.CreateEdgeType(ctx, &et); err != nil {
		t.Fatalf("CreateEdgeType: %v", err)
	}

	a := model.RoutingNode{FloorID: floorID, NodeTypeID: nt.ID, Location: geo.Point{Lat: 51.0, Lng: 7.0}}
	b := model.RoutingNode{FloorID: floorID, NodeTypeID: nt.ID, Location: geo.Point{Lat: 51.0001, Lng: 7.0}}
	for _, n := range []*model.RoutingNode{&a, &b} {
		if err := s.CreateRoutingNode(ctx, n); err != nil {
			t.Fatalf("CreateRoutingNode: %v", err)
		}
	}

	e := model.RoutingEdge{FromNodeID: a.ID, ToNodeID: b.ID, EdgeTypeID: et.ID, Distance: 11.1}
	if err := s.CreateRoutingEdge(ctx, &e); err != nil {
		t.Fatalf("CreateRoutingEdge: %v", err)
	}

	nodes, err := s.NodesByFloors(ctx, []uuid.UUID{floorID})
	if err != nil {
		t.Fatalf("NodesByFloors: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	edges, err := s.EdgesAmong(ctx, []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("EdgesAmong: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].EdgeTypeCode != "hallway" || !edges[0].IsAccessible {
		t.Errorf("edge annotation = (%q, %v), want (hallway, true)", edges[0].EdgeTypeCode, edges[0].IsAccessible)
	}

	// An edge with only one endpoint in the set must not appear.
	edges, err = s.EdgesAmong(ctx, []uuid.UUID{a.ID})
	if err != nil {
		t.Fatalf("EdgesAmong single: %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("expected 0 edges with one endpoint excluded, got %d", len(edges))
	}
}

func TestRoutingEdgeConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, floorID := seedVenue(t, s)

	nt := model.NodeType{Code: "hallway"}
	s.CreateNodeType(ctx, &nt)
	et := model.EdgeType{Code: "hallway", IsAccessible: true}
	s.CreateEdgeType(ctx, &et)

	a := model.RoutingNode{FloorID: floorID, NodeTypeID: nt.ID}
	b := model.RoutingNode{FloorID: floorID, NodeTypeID: nt.ID}
	s.CreateRoutingNode(ctx, &a)
	s.CreateRoutingNode(ctx, &b)

	zero := model.RoutingEdge{FromNodeID: a.ID, ToNodeID: b.ID, EdgeTypeID: et.ID, Distance: 0}
	if err := s.CreateRoutingEdge(ctx, &zero); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero distance: expected ErrInvalid, got %v", err)
	}

	dangling := model.RoutingEdge{FromNodeID: a.ID, ToNodeID: uuid.New(), EdgeTypeID: et.ID, Distance: 1}
	if err := s.CreateRoutingEdge(ctx, &dangling); !errors.Is(err, ErrReference) {
		t.Errorf("dangling endpoint: expected ErrReference, got %v", err)
	}

	ok := model.RoutingEdge{FromNodeID: a.ID, ToNodeID: b.ID, EdgeTypeID: et.ID, Distance: 5}
	if err := s.CreateRoutingEdge(ctx, &ok); err != nil {
		t.Fatalf("CreateRoutingEdge: %v", err)
	}
	dup := model.RoutingEdge{FromNodeID: a.ID, ToNodeID: b.ID, EdgeTypeID: et.ID, Distance: 5}
	if err := s.CreateRoutingEdge(ctx, &dup); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate pair: expected ErrConflict, got %v", err)
	}
}

func TestDeleteFloorCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, floorID := seedVenue(t, s)

	nt := model.NodeType{Code: "hallway"}
	s.CreateNodeType(ctx, &nt)
	n := model.RoutingNode{FloorID: floorID, NodeTypeID: nt.ID}
	s.CreateRoutingNode(ctx, &n)
	p := model.POI{FloorID: floorID, Name: "Cafe", Type: "food"}
	s.CreatePOI(ctx, &p)

	if err := s.DeleteFloor(ctx, floorID); err != nil {
		t.Fatalf("DeleteFloor: %v", err)
	}
	if _, err := s.GetRoutingNode(ctx, n.ID); !IsNotFound(err) {
		t.Errorf("node should cascade, got %v", err)
	}
	if _, err := s.GetPOI(ctx, p.ID); !IsNotFound(err) {
		t.Errorf("poi should cascade, got %v", err)
	}

	ids, err := s.ListFloorIDs(ctx)
	if err != nil {
		t.Fatalf("ListFloorIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no floors with nodes, got %d", len(ids))
	}
}
