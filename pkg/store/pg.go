// Package store persists buildings, floors, POIs and the routing graph in
// PostgreSQL, and provides the read-only fetch operations the routing engine
// consumes. A Memory implementation with the same surface backs tests.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OpRecorder receives the outcome of every storage operation. The metrics
// registry satisfies it; a nil recorder disables recording.
type OpRecorder interface {
	RecordStorageOperation(operation, status string, duration time.Duration)
}

// PGStore persists all entities in PostgreSQL via a pgx connection pool.
type PGStore struct {
	pool     *pgxpool.Pool
	recorder OpRecorder
}

// PGConfig holds connection settings for a PGStore. Zero pool sizes fall
// back to the defaults.
type PGConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
	Recorder OpRecorder
}

// NewPGStore opens a connection pool, verifies connectivity and ensures the
// schema exists.
func NewPGStore(ctx context.Context, cfg PGConfig) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = cfg.MaxConns
	if config.MaxConns <= 0 {
		config.MaxConns = 25
	}
	config.MinConns = cfg.MinConns
	if config.MinConns <= 0 {
		config.MinConns = 5
	}
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool, recorder: cfg.Recorder}

	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// Ping checks database connectivity.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// observe records one finished storage operation. Meant to be deferred with
// a pointer to the named error return so the status reflects the outcome.
func (s *PGStore) observe(op string, start time.Time, err *error) {
	if s.recorder == nil {
		return
	}
	status := "ok"
	if *err != nil {
		status = "error"
	}
	s.recorder.RecordStorageOperation(op, status, time.Since(start))
}

// Close closes the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

// Migrate creates the schema if it does not exist. Constraints mirror the
// data invariants: positive floor height, positive edge distance, unique
// (building, level) and unique (from, to) node pairs. Coordinates are stored
// as plain lat/lng doubles; nearest-neighbor ordering lives in the in-process
// spatial index, not in the database.
func (s *PGStore) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS buildings (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			floors_count INTEGER NOT NULL DEFAULT 0,
			footprint TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ix_buildings_name ON buildings(name)`,

		`CREATE TABLE IF NOT EXISTS floors (
			id UUID PRIMARY KEY,
			building_id UUID NOT NULL REFERENCES buildings(id) ON DELETE CASCADE,
			level_number INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			height_meters DOUBLE PRECISION NOT NULL,
			floor_geojson JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT check_height_positive CHECK (height_meters > 0)
		)`,
		`CREATE INDEX IF NOT EXISTS ix_floors_building_id ON floors(building_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ix_floors_building_level ON floors(building_id, level_number)`,

		`CREATE TABLE IF NOT EXISTS node_types (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			description VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS edge_types (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			is_accessible BOOLEAN NOT NULL DEFAULT true,
			description VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS pois (
			id UUID PRIMARY KEY,
			floor_id UUID NOT NULL REFERENCES floors(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(100) NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ix_pois_floor_id ON pois(floor_id)`,
		`CREATE INDEX IF NOT EXISTS ix_pois_type ON pois(type)`,
		`CREATE INDEX IF NOT EXISTS ix_pois_name ON pois(name)`,

		`CREATE TABLE IF NOT EXISTS routing_nodes (
			id UUID PRIMARY KEY,
			floor_id UUID NOT NULL REFERENCES floors(id) ON DELETE CASCADE,
			node_type_id UUID NOT NULL REFERENCES node_types(id),
			lat DOUBLE PRECISION NOT NULL,
			lng DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ix_routing_nodes_floor_id ON routing_nodes(floor_id)`,
		`CREATE INDEX IF NOT EXISTS ix_routing_nodes_node_type_id ON routing_nodes(node_type_id)`,

		`CREATE TABLE IF NOT EXISTS routing_edges (
			id UUID PRIMARY KEY,
			from_node_id UUID NOT NULL REFERENCES routing_nodes(id) ON DELETE CASCADE,
			to_node_id UUID NOT NULL REFERENCES routing_nodes(id) ON DELETE CASCADE,
			edge_type_id UUID NOT NULL REFERENCES edge_types(id),
			distance DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT check_distance_positive CHECK (distance > 0)
		)`,
		`CREATE INDEX IF NOT EXISTS ix_routing_edges_from_node_id ON routing_edges(from_node_id)`,
		`CREATE INDEX IF NOT EXISTS ix_routing_edges_to_node_id ON routing_edges(to_node_id)`,
		`CREATE INDEX IF NOT EXISTS ix_routing_edges_edge_type_id ON routing_edges(edge_type_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ix_routing_edges_nodes ON routing_edges(from_node_id, to_node_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
