package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openvenue/wayfinder/pkg/model"
)

// CreateRoutingNode stores a waypoint. An unknown floor or node type
// surfaces as wrapped ErrReference.
func (s *PGStore) CreateRoutingNode(ctx context.Context, n *model.RoutingNode) (err error) {
	defer s.observe("CreateRoutingNode", time.Now(), &err)

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	query := `
		INSERT INTO routing_nodes (id, floor_id, node_type_id, lat, lng)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query,
		n.ID, n.FloorID, n.NodeTypeID, n.Location.Lat, n.Location.Lng,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create routing node: %w", translatePG(err))
	}
	return nil
}

// GetRoutingNode retrieves a waypoint by id.
func (s *PGStore) GetRoutingNode(ctx context.Context, id uuid.UUID) (_ model.RoutingNode, err error) {
	defer s.observe("GetRoutingNode", time.Now(), &err)
	query := `
		SELECT id, floor_id, node_type_id, lat, lng, created_at, updated_at
		FROM routing_nodes
		WHERE id = $1
	`

	var n model.RoutingNode
	err = s.pool.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.FloorID, &n.NodeTypeID, &n.Location.Lat, &n.Location.Lng, &n.CreatedAt, &n.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.RoutingNode{}, NotFoundError("GetRoutingNode", "routing node", id.String())
	}
	if err != nil {
		return model.RoutingNode{}, fmt.Errorf("failed to get routing node: %w", err)
	}
	return n, nil
}

// NodesByFloors returns every routing node on the given floors. The result
// order is stable (floor, then id) so per-query graph assembly is
// deterministic.
func (s *PGStore) NodesByFloors(ctx context.Context, floorIDs []uuid.UUID) (_ []model.RoutingNode, err error) {
	defer s.observe("NodesByFloors", time.Now(), &err)

	if len(floorIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, floor_id, node_type_id, lat, lng, created_at, updated_at
		FROM routing_nodes
		WHERE floor_id = ANY($1)
		ORDER BY floor_id, id
	`

	rows, err := s.pool.Query(ctx, query, floorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load routing nodes: %w", err)
	}
	defer rows.Close()

	var nodes []model.RoutingNode
	for rows.Next() {
		var n model.RoutingNode
		if err := rows.Scan(&n.ID, &n.FloorID, &n.NodeTypeID, &n.Location.Lat, &n.Location.Lng, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan routing node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routing nodes: %w", err)
	}
	return nodes, nil
}

// CreateRoutingEdge stores a connection between two waypoints. A duplicate
// (from, to) pair surfaces as wrapped ErrConflict, unknown endpoints or edge
// type as wrapped ErrReference.
func (s *PGStore) CreateRoutingEdge(ctx context.Context, e *model.RoutingEdge) (err error) {
	defer s.observe("CreateRoutingEdge", time.Now(), &err)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Distance <= 0 {
		return fmt.Errorf("edge distance must be positive: %w", ErrInvalid)
	}

	query := `
		INSERT INTO routing_edges (id, from_node_id, to_node_id, edge_type_id, distance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query,
		e.ID, e.FromNodeID, e.ToNodeID, e.EdgeTypeID, e.Distance,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create routing edge: %w", translatePG(err))
	}
	return nil
}

// EdgesAmong returns every routing edge whose both endpoints are in nodeIDs,
// annotated with the edge type's code and accessibility flag.
func (s *PGStore) EdgesAmong(ctx context.Context, nodeIDs []uuid.UUID) (_ []model.GraphEdge, err error) {
	defer s.observe("EdgesAmong", time.Now(), &err)

	if len(nodeIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT e.id, e.from_node_id, e.to_node_id, e.edge_type_id, e.distance,
		       e.created_at, e.updated_at, t.code, t.is_accessible
		FROM routing_edges e
		JOIN edge_types t ON t.id = e.edge_type_id
		WHERE e.from_node_id = ANY($1) AND e.to_node_id = ANY($1)
		ORDER BY e.id
	`

	rows, err := s.pool.Query(ctx, query, nodeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load routing edges: %w", err)
	}
	defer rows.Close()

	var edges []model.GraphEdge
	for rows.Next() {
		var e model.GraphEdge
		if err := rows.Scan(&e.ID, &e.FromNodeID, &e.ToNodeID, &e.EdgeTypeID, &e.Distance,
			&e.CreatedAt, &e.UpdatedAt, &e.EdgeTypeCode, &e.IsAccessible); err != nil {
			return nil, fmt.Errorf("failed to scan routing edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routing edges: %w", err)
	}
	return edges, nil
}

// ListFloorIDs returns the ids of all floors that have at least one routing
// node, used to warm the spatial index at startup.
func (s *PGStore) ListFloorIDs(ctx context.Context) (_ []uuid.UUID, err error) {
	defer s.observe("ListFloorIDs", time.Now(), &err)

	rows, err := s.pool.Query(ctx, `SELECT DISTINCT floor_id FROM routing_nodes`)
	if err != nil {
		return nil, fmt.Errorf("failed to list floor ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan floor id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating floor ids: %w", err)
	}
	return ids, nil
}
