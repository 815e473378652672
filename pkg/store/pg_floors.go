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

// CreateFloor stores a new floor. The height must be positive; a duplicate
// (building, level) pair surfaces as wrapped ErrConflict, an unknown
// building as wrapped ErrReference.
func (s *PGStore) CreateFloor(ctx context.Context, f *model.Floor) (err error) {
	defer s.observe("CreateFloor", time.Now(), &err)

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.HeightMeters <= 0 {
		return fmt.Errorf("floor height must be positive: %w", ErrInvalid)
	}

	geojson, err := json.Marshal(f.GeoJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal floor geojson: %w", err)
	}
	if f.GeoJSON == nil {
		geojson = []byte("{}")
	}

	query := `
		INSERT INTO floors (id, building_id, level_number, name, height_meters, floor_geojson)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err = s.pool.QueryRow(ctx, query,
		f.ID, f.BuildingID, f.LevelNumber, f.Name, f.HeightMeters, geojson,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create floor: %w", translatePG(err))
	}
	return nil
}

// GetFloor retrieves a floor by id, including its GeoJSON map document.
func (s *PGStore) GetFloor(ctx context.Context, id uuid.UUID) (_ model.Floor, err error) {
	defer s.observe("GetFloor", time.Now(), &err)
	query := `
		SELECT id, building_id, level_number, name, height_meters, floor_geojson, created_at, updated_at
		FROM floors
		WHERE id = $1
	`

	var f model.Floor
	var geojson []byte
	err = s.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.BuildingID, &f.LevelNumber, &f.Name, &f.HeightMeters, &geojson, &f.CreatedAt, &f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Floor{}, NotFoundError("GetFloor", "floor", id.String())
	}
	if err != nil {
		return model.Floor{}, fmt.Errorf("failed to get floor: %w", err)
	}

	if len(geojson) > 0 {
		if err := json.Unmarshal(geojson, &f.GeoJSON); err != nil {
			return model.Floor{}, fmt.Errorf("failed to unmarshal floor geojson: %w", err)
		}
	}
	return f, nil
}

// ListFloorsByBuilding returns a building's floors ordered by level.
func (s *PGStore) ListFloorsByBuilding(ctx context.Context, buildingID uuid.UUID) (_ []model.Floor, err error) {
	defer s.observe("ListFloorsByBuilding", time.Now(), &err)
	query := `
		SELECT id, building_id, level_number, name, height_meters, floor_geojson, created_at, updated_at
		FROM floors
		WHERE building_id = $1
		ORDER BY level_number
	`

	rows, err := s.pool.Query(ctx, query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list floors: %w", err)
	}
	defer rows.Close()

	var floors []model.Floor
	for rows.Next() {
		var f model.Floor
		var geojson []byte
		if err := rows.Scan(&f.ID, &f.BuildingID, &f.LevelNumber, &f.Name, &f.HeightMeters, &geojson, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan floor: %w", err)
		}
		if len(geojson) > 0 {
			json.Unmarshal(geojson, &f.GeoJSON)
		}
		floors = append(floors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating floors: %w", err)
	}
	return floors, nil
}

// DeleteFloor removes a floor; its POIs and routing nodes cascade.
func (s *PGStore) DeleteFloor(ctx context.Context, id uuid.UUID) (err error) {
	defer s.observe("DeleteFloor", time.Now(), &err)

	result, err := s.pool.Exec(ctx, `DELETE FROM floors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete floor: %w", err)
	}
	if result.RowsAffected() == 0 {
		return NotFoundError("DeleteFloor", "floor", id.String())
	}
	return nil
}
