package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openvenue/wayfinder/pkg/model"
)

// CreatePOI stores a new point of interest. An unknown floor surfaces as
// wrapped ErrReference.
func (s *PGStore) CreatePOI(ctx context.Context, p *model.POI) (err error) {
	defer s.observe("CreatePOI", time.Now(), &err)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal poi metadata: %w", err)
	}
	if p.Metadata == nil {
		metadata = []byte("{}")
	}

	query := `
		INSERT INTO pois (id, floor_id, name, type, lat, lng, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query,
		p.ID, p.FloorID, p.Name, p.Type, p.Location.Lat, p.Location.Lng, metadata,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create poi: %w", translatePG(err))
	}
	return nil
}

// GetPOI retrieves a POI by id.
func (s *PGStore) GetPOI(ctx context.Context, id uuid.UUID) (_ model.POI, err error) {
	defer s.observe("GetPOI", time.Now(), &err)
	query := `
		SELECT id, floor_id, name, type, lat, lng, metadata, created_at, updated_at
		FROM pois
		WHERE id = $1
	`

	var p model.POI
	var metadata []byte
	err = s.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FloorID, &p.Name, &p.Type, &p.Location.Lat, &p.Location.Lng, &metadata, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.POI{}, NotFoundError("GetPOI", "poi", id.String())
	}
	if err != nil {
		return model.POI{}, fmt.Errorf("failed to get poi: %w", err)
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return model.POI{}, fmt.Errorf("failed to unmarshal poi metadata: %w", err)
		}
	}
	return p, nil
}

// ListPOIsByFloor returns a floor's POIs ordered by name.
func (s *PGStore) ListPOIsByFloor(ctx context.Context, floorID uuid.UUID) (_ []model.POI, err error) {
	defer s.observe("ListPOIsByFloor", time.Now(), &err)
	query := `
		SELECT id, floor_id, name, type, lat, lng, metadata, created_at, updated_at
		FROM pois
		WHERE floor_id = $1
		ORDER BY name
	`

	rows, err := s.pool.Query(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pois: %w", err)
	}
	defer rows.Close()

	var pois []model.POI
	for rows.Next() {
		var p model.POI
		var metadata []byte
		if err := rows.Scan(&p.ID, &p.FloorID, &p.Name, &p.Type, &p.Location.Lat, &p.Location.Lng, &metadata, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poi: %w", err)
		}
		if len(metadata) > 0 {
			json.Unmarshal(metadata, &p.Metadata)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pois: %w", err)
	}
	return pois, nil
}

// DeletePOI removes a POI.
func (s *PGStore) DeletePOI(ctx context.Context, id uuid.UUID) (err error) {
	defer s.observe("DeletePOI", time.Now(), &err)

	result, err := s.pool.Exec(ctx, `DELETE FROM pois WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poi: %w", err)
	}
	if result.RowsAffected() == 0 {
		return NotFoundError("DeletePOI", "poi", id.String())
	}
	return nil
}
