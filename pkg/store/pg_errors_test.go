package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslatePGUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ix_floors_building_level"}

	got := translatePG(pgErr)
	if !errors.Is(got, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", got)
	}
	if got.Error() != "ix_floors_building_level: already exists" {
		t.Errorf("unexpected message: %q", got.Error())
	}
}

func TestTranslatePGForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "pois_floor_id_fkey"}

	if got := translatePG(pgErr); !errors.Is(got, ErrReference) {
		t.Fatalf("expected ErrReference, got %v", got)
	}
}

func TestTranslatePGCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "check_height_positive"}

	if got := translatePG(pgErr); !errors.Is(got, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", got)
	}
}

// Driver errors are often wrapped before they reach the translator; errors.As
// must still find the PgError inside.
func TestTranslatePGWrapped(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505", ConstraintName: "node_types_code_key"}
	wrapped := fmt.Errorf("exec failed: %w", inner)

	if got := translatePG(wrapped); !errors.Is(got, ErrConflict) {
		t.Fatalf("expected ErrConflict through wrapping, got %v", got)
	}
}

func TestTranslatePGPassthrough(t *testing.T) {
	plain := errors.New("connection refused")
	if got := translatePG(plain); got != plain {
		t.Errorf("non-postgres error should pass through unchanged, got %v", got)
	}

	other := &pgconn.PgError{Code: "57014"} // query_canceled
	if got := translatePG(other); got != error(other) {
		t.Errorf("unrelated SQLSTATE should pass through unchanged, got %v", got)
	}

	if got := translatePG(nil); got != nil {
		t.Errorf("nil should pass through, got %v", got)
	}
}

// Translated create errors must keep the sentinel reachable through the
// store's own wrapping, since handlers and the seeder match with errors.Is.
func TestTranslatePGSurvivesStoreWrap(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "node_types_code_key"}
	storeErr := fmt.Errorf("failed to create node type: %w", translatePG(pgErr))

	if !errors.Is(storeErr, ErrConflict) {
		t.Fatalf("expected ErrConflict through store wrap, got %v", storeErr)
	}
}

type recordedOp struct {
	operation string
	status    string
	duration  time.Duration
}

type fakeOpRecorder struct {
	ops []recordedOp
}

func (r *fakeOpRecorder) RecordStorageOperation(operation, status string, duration time.Duration) {
	r.ops = append(r.ops, recordedOp{operation, status, duration})
}

func TestObserveRecordsOutcome(t *testing.T) {
	rec := &fakeOpRecorder{}
	s := &PGStore{recorder: rec}

	var err error
	s.observe("ListBuildings", time.Now(), &err)

	err = errors.New("boom")
	s.observe("CreateFloor", time.Now(), &err)

	if len(rec.ops) != 2 {
		t.Fatalf("expected 2 recorded operations, got %d", len(rec.ops))
	}
	if rec.ops[0].operation != "ListBuildings" || rec.ops[0].status != "ok" {
		t.Errorf("unexpected first record: %+v", rec.ops[0])
	}
	if rec.ops[1].operation != "CreateFloor" || rec.ops[1].status != "error" {
		t.Errorf("unexpected second record: %+v", rec.ops[1])
	}
}

func TestObserveNilRecorder(t *testing.T) {
	s := &PGStore{}
	var err error
	s.observe("GetBuilding", time.Now(), &err) // must not panic
}
