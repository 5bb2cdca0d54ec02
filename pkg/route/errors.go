package route

import "errors"

// Sentinel errors for pathfinding and validation. Geometric and graph
// failures are returned as typed results, never silently approximated.
var (
	// ErrUnreachable indicates no path exists between the endpoints under
	// any risk budget.
	ErrUnreachable = errors.New("no path exists between endpoints")

	// ErrIterationLimit indicates the search was aborted after exceeding its
	// iteration budget. This is a safety stop, not a crash.
	ErrIterationLimit = errors.New("iteration limit exceeded")

	// ErrInvalidSpeed rejects travel-time estimation with a non-positive
	// base speed.
	ErrInvalidSpeed = errors.New("base speed must be positive")

	// ErrEmptyPath rejects analysis of a path with fewer than two nodes.
	ErrEmptyPath = errors.New("path must contain at least two nodes")

	// ErrAllUnsafe indicates every candidate route intersects a threat zone.
	// Distinct from ErrUnreachable: a geometric path exists but is forbidden.
	ErrAllUnsafe = errors.New("all candidate routes cross threat zones")
)
