package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for graph lookups and queries.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrNoData       = errors.New("no data: snapshot has no nodes")
)

// SnapshotError rejects a malformed snapshot wholesale. It carries every
// violation found so the caller can fix the payload in one pass.
type SnapshotError struct {
	Violations []string
}

// Error implements the error interface.
func (e *SnapshotError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("invalid snapshot: %s", e.Violations[0])
	}
	return fmt.Sprintf("invalid snapshot: %d violations: %s",
		len(e.Violations), strings.Join(e.Violations, "; "))
}

// LookupError provides structured error information for graph lookups.
type LookupError struct {
	Op     string // Operation that failed (e.g., "NodeRisk", "Neighbors")
	Entity string // "node" or "edge"
	ID     string
	Cause  error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LookupError) Unwrap() error {
	return e.Cause
}

func nodeNotFound(op, id string) error {
	return &LookupError{Op: op, Entity: "node", ID: id, Cause: ErrNodeNotFound}
}

func edgeNotFound(op, id string) error {
	return &LookupError{Op: op, Entity: "edge", ID: id, Cause: ErrEdgeNotFound}
}

// IsNotFound returns true if the error is a missing node or edge.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound)
}
