package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/model"
)

// MemoryStore is an in-memory implementation of the storage surface. It
// enforces the same referential and uniqueness constraints the SQL schema
// does, so tests exercise the same failure paths the server sees.
type MemoryStore struct {
	mu sync.RWMutex

	buildings map[uuid.UUID]model.Building
	floors    map[uuid.UUID]model.Floor
	pois      map[uuid.UUID]model.POI
	nodeTypes map[uuid.UUID]model.NodeType
	edgeTypes map[uuid.UUID]model.EdgeType
	nodes     map[uuid.UUID]model.RoutingNode
	edges     map[uuid.UUID]model.RoutingEdge
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buildings: make(map[uuid.UUID]model.Building),
		floors:    make(map[uuid.UUID]model.Floor),
		pois:      make(map[uuid.UUID]model.POI),
		nodeTypes: make(map[uuid.UUID]model.NodeType),
		edgeTypes: make(map[uuid.UUID]model.EdgeType),
		nodes:     make(map[uuid.UUID]model.RoutingNode),
		edges:     make(map[uuid.UUID]model.RoutingEdge),
	}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() {}

func (s *MemoryStore) CreateBuilding(ctx context.Context, b *model.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if _, exists := s.buildings[b.ID]; exists {
		return &EntityError{Op: "CreateBuilding", Entity: "building", ID: b.ID.String(), Cause: ErrConflict}
	}
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	s.buildings[b.ID] = *b
	return nil
}

func (s *MemoryStore) GetBuilding(ctx context.Context, id uuid.UUID) (model.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buildings[id]
	if !ok {
		return model.Building{}, NotFoundError("GetBuilding", "building", id.String())
	}
	return b, nil
}

func (s *MemoryStore) ListBuildings(ctx context.Context) ([]model.Building, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buildings := make([]model.Building, 0, len(s.buildings))
	for _, b := range s.buildings {
		buildings = append(buildings, b)
	}
	sort.Slice(buildings, func(i, j int) bool {
		return buildings[i].CreatedAt.After(buildings[j].CreatedAt)
	})
	return buildings, nil
}

func (s *MemoryStore) DeleteBuilding(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buildings[id]; !ok {
		return NotFoundError("DeleteBuilding", "building", id.String())
	}
	delete(s.buildings, id)
	for fid, f := range s.floors {
		if f.BuildingID == id {
			s.deleteFloorLocked(fid)
		}
	}
	return nil
}

func (s *MemoryStore) CreateFloor(ctx context.Context, f *model.Floor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.HeightMeters <= 0 {
		return fmt.Errorf("floor height must be positive: %w", ErrInvalid)
	}
	if _, ok := s.buildings[f.BuildingID]; !ok {
		return fmt.Errorf("building %s: %w", f.BuildingID, ErrReference)
	}
	for _, other := range s.floors {
		if other.BuildingID == f.BuildingID && other.LevelNumber == f.LevelNumber {
			return fmt.Errorf("level %d already exists in building: %w", f.LevelNumber, ErrConflict)
		}
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	s.floors[f.ID] = *f
	return nil
}

func (s *MemoryStore) GetFloor(ctx context.Context, id uuid.UUID) (model.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.floors[id]
	if !ok {
		return model.Floor{}, NotFoundError("GetFloor", "floor", id.String())
	}
	return f, nil
}

func (s *MemoryStore) ListFloorsByBuilding(ctx context.Context, buildingID uuid.UUID) ([]model.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var floors []model.Floor
	for _, f := range s.floors {
		if f.BuildingID == buildingID {
			floors = append(floors, f)
		}
	}
	sort.Slice(floors, func(i, j int) bool {
		return floors[i].LevelNumber < floors[j].LevelNumber
	})
	return floors, nil
}

func (s *MemoryStore) DeleteFloor(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.floors[id]; !ok {
		return NotFoundError("DeleteFloor", "floor", id.String())
	}
	s.deleteFloorLocked(id)
	return nil
}

// deleteFloorLocked cascades floor deletion to POIs, nodes and their edges.
func (s *MemoryStore) deleteFloorLocked(id uuid.UUID) {
	delete(s.floors, id)
	for pid, p := range s.pois {
		if p.FloorID == id {
			delete(s.pois, pid)
		}
	}
	for nid, n := range s.nodes {
		if n.FloorID == id {
			delete(s.nodes, nid)
			for eid, e := range s.edges {
				if e.FromNodeID == nid || e.ToNodeID == nid {
					delete(s.edges, eid)
				}
			}
		}
	}
}

func (s *MemoryStore) CreatePOI(ctx context.Context, p *model.POI) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, ok := s.floors[p.FloorID]; !ok {
		return fmt.Errorf("floor %s: %w", p.FloorID, ErrReference)
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.pois[p.ID] = *p
	return nil
}

func (s *MemoryStore) GetPOI(ctx context.Context, id uuid.UUID) (model.POI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pois[id]
	if !ok {
		return model.POI{}, NotFoundError("GetPOI", "poi", id.String())
	}
	return p, nil
}

func (s *MemoryStore) ListPOIsByFloor(ctx context.Context, floorID uuid.UUID) ([]model.POI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pois []model.POI
	for _, p := range s.pois {
		if p.FloorID == floorID {
			pois = append(pois, p)
		}
	}
	sort.Slice(pois, func(i, j int) bool { return pois[i].Name < pois[j].Name })
	return pois, nil
}

func (s *MemoryStore) DeletePOI(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pois[id]; !ok {
		return NotFoundError("DeletePOI", "poi", id.String())
	}
	delete(s.pois, id)
	return nil
}

func (s *MemoryStore) CreateNodeType(ctx context.Context, nt *model.NodeType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if nt.ID == uuid.Nil {
		nt.ID = uuid.New()
	}
	for _, other := range s.nodeTypes {
		if other.Code == nt.Code {
			return fmt.Errorf("node type %q: %w", nt.Code, ErrConflict)
		}
	}
	now := time.Now().UTC()
	nt.CreatedAt, nt.UpdatedAt = now, now
	s.nodeTypes[nt.ID] = *nt
	return nil
}

func (s *MemoryStore) ListNodeTypes(ctx context.Context) ([]model.NodeType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]model.NodeType, 0, len(s.nodeTypes))
	for _, nt := range s.nodeTypes {
		types = append(types, nt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Code < types[j].Code })
	return types, nil
}

func (s *MemoryStore) GetNodeTypeByCode(ctx context.Context, code string) (model.NodeType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, nt := range s.nodeTypes {
		if nt.Code == code {
			return nt, nil
		}
	}
	return model.NodeType{}, NotFoundError("GetNodeTypeByCode", "node type", code)
}

func (s *MemoryStore) CreateEdgeType(ctx context.Context, et *model.EdgeType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if et.ID == uuid.Nil {
		et.ID = uuid.New()
	}
	for _, other := range s.edgeTypes {
		if other.Code == et.Code {
			return fmt.Errorf("edge type %q: %w", et.Code, ErrConflict)
		}
	}
	now := time.Now().UTC()
	et.CreatedAt, et.UpdatedAt = now, now
	s.edgeTypes[et.ID] = *et
	return nil
}

func (s *MemoryStore) ListEdgeTypes(ctx context.Context) ([]model.EdgeType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]model.EdgeType, 0, len(s.edgeTypes))
	for _, et := range s.edgeTypes {
		types = append(types, et)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Code < types[j].Code })
	return types, nil
}

func (s *MemoryStore) GetEdgeTypeByCode(ctx context.Context, code string) (model.EdgeType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, et := range s.edgeTypes {
		if et.Code == code {
			return et, nil
		}
	}
	return model.EdgeType{}, NotFoundError("GetEdgeTypeByCode", "edge type", code)
}

func (s *MemoryStore) CreateRoutingNode(ctx context.Context, n *model.RoutingNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if _, ok := s.floors[n.FloorID]; !ok {
		return fmt.Errorf("floor %s: %w", n.FloorID, ErrReference)
	}
	if _, ok := s.nodeTypes[n.NodeTypeID]; !ok {
		return fmt.Errorf("node type %s: %w", n.NodeTypeID, ErrReference)
	}
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now
	s.nodes[n.ID] = *n
	return nil
}

func (s *MemoryStore) GetRoutingNode(ctx context.Context, id uuid.UUID) (model.RoutingNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	if !ok {
		return model.RoutingNode{}, NotFoundError("GetRoutingNode", "routing node", id.String())
	}
	return n, nil
}

func (s *MemoryStore) NodesByFloors(ctx context.Context, floorIDs []uuid.UUID) ([]model.RoutingNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[uuid.UUID]bool, len(floorIDs))
	for _, id := range floorIDs {
		want[id] = true
	}

	var nodes []model.RoutingNode
	for _, n := range s.nodes {
		if want[n.FloorID] {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].FloorID != nodes[j].FloorID {
			return nodes[i].FloorID.String() < nodes[j].FloorID.String()
		}
		return nodes[i].ID.String() < nodes[j].ID.String()
	})
	return nodes, nil
}

func (s *MemoryStore) CreateRoutingEdge(ctx context.Context, e *model.RoutingEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Distance <= 0 {
		return fmt.Errorf("edge distance must be positive: %w", ErrInvalid)
	}
	if _, ok := s.nodes[e.FromNodeID]; !ok {
		return fmt.Errorf("from node %s: %w", e.FromNodeID, ErrReference)
	}
	if _, ok := s.nodes[e.ToNodeID]; !ok {
		return fmt.Errorf("to node %s: %w", e.ToNodeID, ErrReference)
	}
	if _, ok := s.edgeTypes[e.EdgeTypeID]; !ok {
		return fmt.Errorf("edge type %s: %w", e.EdgeTypeID, ErrReference)
	}
	for _, other := range s.edges {
		if other.FromNodeID == e.FromNodeID && other.ToNodeID == e.ToNodeID {
			return fmt.Errorf("edge %s -> %s: %w", e.FromNodeID, e.ToNodeID, ErrConflict)
		}
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	s.edges[e.ID] = *e
	return nil
}

func (s *MemoryStore) EdgesAmong(ctx context.Context, nodeIDs []uuid.UUID) ([]model.GraphEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[uuid.UUID]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		want[id] = true
	}

	var edges []model.GraphEdge
	for _, e := range s.edges {
		if !want[e.FromNodeID] || !want[e.ToNodeID] {
			continue
		}
		et := s.edgeTypes[e.EdgeTypeID]
		edges = append(edges, model.GraphEdge{
			RoutingEdge:  e,
			EdgeTypeCode: et.Code,
			IsAccessible: et.IsAccessible,
		})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID.String() < edges[j].ID.String() })
	return edges, nil
}

func (s *MemoryStore) ListFloorIDs(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, n := range s.nodes {
		if !seen[n.FloorID] {
			seen[n.FloorID] = true
			ids = append(ids, n.FloorID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
