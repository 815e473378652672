package routing

import "errors"

// Sentinel errors for the expected, recoverable routing outcomes. Anything
// else escaping this package is an internal failure.
var (
	// ErrNoRoute means both endpoints resolved but no traversal connects
	// them: disconnected components, an accessibility filter that removed
	// the only link, or a floor with no routing nodes at all.
	ErrNoRoute = errors.New("no route found")
)
