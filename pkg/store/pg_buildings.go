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

// CreateBuilding stores a new building. A zero ID is replaced with a fresh
// UUID.
func (s *PGStore) CreateBuilding(ctx context.Context, b *model.Building) (err error) {
	defer s.observe("CreateBuilding", time.Now(), &err)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query := `
		INSERT INTO buildings (id, name, description, floors_count, footprint)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query,
		b.ID, b.Name, b.Description, b.FloorsCount, b.Footprint,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create building: %w", translatePG(err))
	}
	return nil
}

// GetBuilding retrieves a building by id.
func (s *PGStore) GetBuilding(ctx context.Context, id uuid.UUID) (_ model.Building, err error) {
	defer s.observe("GetBuilding", time.Now(), &err)
	query := `
		SELECT id, name, COALESCE(description, ''), floors_count, COALESCE(footprint, ''), created_at, updated_at
		FROM buildings
		WHERE id = $1
	`

	var b model.Building
	err = s.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.FloorsCount, &b.Footprint, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Building{}, NotFoundError("GetBuilding", "building", id.String())
	}
	if err != nil {
		return model.Building{}, fmt.Errorf("failed to get building: %w", err)
	}
	return b, nil
}

// ListBuildings returns all buildings, newest first.
func (s *PGStore) ListBuildings(ctx context.Context) (_ []model.Building, err error) {
	defer s.observe("ListBuildings", time.Now(), &err)
	query := `
		SELECT id, name, COALESCE(description, ''), floors_count, COALESCE(footprint, ''), created_at, updated_at
		FROM buildings
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	defer rows.Close()

	var buildings []model.Building
	for rows.Next() {
		var b model.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.FloorsCount, &b.Footprint, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating buildings: %w", err)
	}
	return buildings, nil
}

// DeleteBuilding removes a building; floors, POIs and routing nodes cascade.
func (s *PGStore) DeleteBuilding(ctx context.Context, id uuid.UUID) (err error) {
	defer s.observe("DeleteBuilding", time.Now(), &err)

	result, err := s.pool.Exec(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	if result.RowsAffected() == 0 {
		return NotFoundError("DeleteBuilding", "building", id.String())
	}
	return nil
}
