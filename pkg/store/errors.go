package store

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrInvalid   = errors.New("invalid entity")
	ErrClosed    = errors.New("store is closed")
	ErrReference = errors.New("referenced entity missing")
)

// EntityError carries structured context for a failed storage operation.
type EntityError struct {
	Op     string // operation that failed, e.g. "GetPOI"
	Entity string // entity kind, e.g. "poi"
	ID     string // entity id, if known
	Cause  error
}

// Error implements the error interface.
func (e *EntityError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *EntityError) Unwrap() error {
	return e.Cause
}

// NotFoundError builds a not-found error for one entity.
func NotFoundError(op, entity, id string) error {
	return &EntityError{Op: op, Entity: entity, ID: id, Cause: ErrNotFound}
}

// IsNotFound reports whether err means a referenced entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
