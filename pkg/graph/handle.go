package graph

import (
	"sync/atomic"
)

// Handle holds the active snapshot behind an atomic pointer. Publishing a new
// snapshot is a single pointer swap: in-flight queries keep reading the
// snapshot they grabbed, new queries see the replacement. There are no locks
// on the read path and no torn reads.
type Handle struct {
	current atomic.Pointer[Snapshot]
}

// NewHandle creates a handle seeded with an empty snapshot so readers never
// observe nil.
func NewHandle() *Handle {
	h := &Handle{}
	empty, _ := NewSnapshot(SnapshotInput{})
	h.current.Store(empty)
	return h
}

// Load publishes a new snapshot, replacing the active one atomically.
func (h *Handle) Load(s *Snapshot) {
	h.current.Store(s)
}

// Current returns the active snapshot. Callers grab it once per query and
// use that reference for the whole operation.
func (h *Handle) Current() *Snapshot {
	return h.current.Load()
}
