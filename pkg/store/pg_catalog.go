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

// CreateNodeType stores a node type catalog entry. A duplicate code surfaces
// as wrapped ErrConflict.
func (s *PGStore) CreateNodeType(ctx context.Context, nt *model.NodeType) (err error) {
	defer s.observe("CreateNodeType", time.Now(), &err)

	if nt.ID == uuid.Nil {
		nt.ID = uuid.New()
	}

	query := `
		INSERT INTO node_types (id, code, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query, nt.ID, nt.Code, nt.Description).Scan(&nt.CreatedAt, &nt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create node type: %w", translatePG(err))
	}
	return nil
}

// ListNodeTypes returns the node type catalog ordered by code.
func (s *PGStore) ListNodeTypes(ctx context.Context) (_ []model.NodeType, err error) {
	defer s.observe("ListNodeTypes", time.Now(), &err)
	query := `
		SELECT id, code, COALESCE(description, ''), created_at, updated_at
		FROM node_types
		ORDER BY code
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list node types: %w", err)
	}
	defer rows.Close()

	var types []model.NodeType
	for rows.Next() {
		var nt model.NodeType
		if err := rows.Scan(&nt.ID, &nt.Code, &nt.Description, &nt.CreatedAt, &nt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan node type: %w", err)
		}
		types = append(types, nt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating node types: %w", err)
	}
	return types, nil
}

// GetNodeTypeByCode retrieves a node type by its unique code.
func (s *PGStore) GetNodeTypeByCode(ctx context.Context, code string) (_ model.NodeType, err error) {
	defer s.observe("GetNodeTypeByCode", time.Now(), &err)
	query := `
		SELECT id, code, COALESCE(description, ''), created_at, updated_at
		FROM node_types
		WHERE code = $1
	`

	var nt model.NodeType
	err = s.pool.QueryRow(ctx, query, code).Scan(&nt.ID, &nt.Code, &nt.Description, &nt.CreatedAt, &nt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NodeType{}, NotFoundError("GetNodeTypeByCode", "node type", code)
	}
	if err != nil {
		return model.NodeType{}, fmt.Errorf("failed to get node type: %w", err)
	}
	return nt, nil
}

// CreateEdgeType stores an edge type catalog entry. A duplicate code
// surfaces as wrapped ErrConflict.
func (s *PGStore) CreateEdgeType(ctx context.Context, et *model.EdgeType) (err error) {
	defer s.observe("CreateEdgeType", time.Now(), &err)

	if et.ID == uuid.Nil {
		et.ID = uuid.New()
	}

	query := `
		INSERT INTO edge_types (id, code, is_accessible, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query, et.ID, et.Code, et.IsAccessible, et.Description).Scan(&et.CreatedAt, &et.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create edge type: %w", translatePG(err))
	}
	return nil
}

// ListEdgeTypes returns the edge type catalog ordered by code.
func (s *PGStore) ListEdgeTypes(ctx context.Context) (_ []model.EdgeType, err error) {
	defer s.observe("ListEdgeTypes", time.Now(), &err)
	query := `
		SELECT id, code, is_accessible, COALESCE(description, ''), created_at, updated_at
		FROM edge_types
		ORDER BY code
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list edge types: %w", err)
	}
	defer rows.Close()

	var types []model.EdgeType
	for rows.Next() {
		var et model.EdgeType
		if err := rows.Scan(&et.ID, &et.Code, &et.IsAccessible, &et.Description, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan edge type: %w", err)
		}
		types = append(types, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edge types: %w", err)
	}
	return types, nil
}

// GetEdgeTypeByCode retrieves an edge type by its unique code.
func (s *PGStore) GetEdgeTypeByCode(ctx context.Context, code string) (_ model.EdgeType, err error) {
	defer s.observe("GetEdgeTypeByCode", time.Now(), &err)
	query := `
		SELECT id, code, is_accessible, COALESCE(description, ''), created_at, updated_at
		FROM edge_types
		WHERE code = $1
	`

	var et model.EdgeType
	err = s.pool.QueryRow(ctx, query, code).Scan(&et.ID, &et.Code, &et.IsAccessible, &et.Description, &et.CreatedAt, &et.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.EdgeType{}, NotFoundError("GetEdgeTypeByCode", "edge type", code)
	}
	if err != nil {
		return model.EdgeType{}, fmt.Errorf("failed to get edge type: %w", err)
	}
	return et, nil
}
