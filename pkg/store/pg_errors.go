package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes raised by the schema's constraints.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translatePG maps Postgres constraint violations onto the package
// sentinels, so errors.Is behaves the same against PGStore and MemoryStore:
// duplicate keys report ErrConflict, dangling foreign keys ErrReference,
// check failures ErrInvalid. Anything else passes through untouched.
func translatePG(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrConflict)
	case pgForeignKeyViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrReference)
	case pgCheckViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, ErrInvalid)
	}
	return err
}
