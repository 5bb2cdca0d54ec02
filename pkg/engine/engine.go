// Package engine ties the risk graph, threat zones, and route computations
// together behind a single facade used by the HTTP API and the incident feed.
package engine

import (
	"time"

	"github.com/safesphere/saferoute/pkg/graph"
	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/metrics"
	"github.com/safesphere/saferoute/pkg/pubsub"
	"github.com/safesphere/saferoute/pkg/route"
	"github.com/safesphere/saferoute/pkg/zones"
)

// Engine serves route-safety queries against an atomically swapped risk
// graph snapshot. Snapshot replacement is single-writer; queries always see
// a complete, consistent graph.
type Engine struct {
	cfg       Config
	cost      graph.CostModel
	handle    *graph.Handle
	zones     *zones.Manager
	validator *route.Validator
	logger    logging.Logger
	metrics   *metrics.Registry
	events    *pubsub.PubSub
}

// New creates an engine with an empty snapshot and no active zones.
func New(cfg Config, logger logging.Logger, reg *metrics.Registry, events *pubsub.PubSub) *Engine {
	cfg.applyDefaults()
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	cost := graph.CostModel{Mode: cfg.CostMode}.WithPenaltyFactor(cfg.RiskPenaltyFactor)

	v := route.NewValidator()
	v.SetStride(cfg.SampleStride)
	v.SetReferenceDistance(cfg.ReferenceDistanceKm)

	return &Engine{
		cfg:       cfg,
		cost:      cost,
		handle:    graph.NewHandle(),
		zones:     zones.NewManager(),
		validator: v,
		logger:    logger.With(logging.Component("engine")),
		metrics:   reg,
		events:    events,
	}
}

// Snapshot returns the current risk graph snapshot.
func (e *Engine) Snapshot() *graph.Snapshot {
	return e.handle.Current()
}

// LoadSnapshot validates the input, builds a new snapshot, and swaps it in.
func (e *Engine) LoadSnapshot(input graph.SnapshotInput) (graph.Stats, error) {
	snap, err := graph.NewSnapshot(input)
	if err != nil {
		e.logger.Warn("snapshot rejected", logging.Error(err))
		return graph.Stats{}, err
	}
	e.installSnapshot(snap)
	return snap.Stats(), nil
}

// ImportSnapshotJSON loads a snapshot from its JSON wire form.
func (e *Engine) ImportSnapshotJSON(data []byte) (graph.Stats, error) {
	snap, err := graph.ImportJSON(data)
	if err != nil {
		return graph.Stats{}, err
	}
	e.installSnapshot(snap)
	return snap.Stats(), nil
}

// ImportSnapshotCompressed loads a snapshot from its compressed wire form.
func (e *Engine) ImportSnapshotCompressed(data []byte) (graph.Stats, error) {
	snap, err := graph.ImportCompressed(data)
	if err != nil {
		return graph.Stats{}, err
	}
	e.installSnapshot(snap)
	return snap.Stats(), nil
}

// ExportSnapshotJSON serializes the current snapshot to JSON.
func (e *Engine) ExportSnapshotJSON() ([]byte, error) {
	return e.handle.Current().ExportJSON()
}

// ExportSnapshotCompressed serializes the current snapshot to its
// compressed wire form.
func (e *Engine) ExportSnapshotCompressed() ([]byte, error) {
	return e.handle.Current().ExportCompressed()
}

func (e *Engine) installSnapshot(snap *graph.Snapshot) {
	e.handle.Load(snap)

	stats := snap.Stats()
	e.logger.Info("snapshot loaded",
		logging.Int("nodes", stats.NodeCount),
		logging.Int("edges", stats.EdgeCount))

	if e.metrics != nil {
		e.metrics.RecordSnapshotLoad(stats.NodeCount, stats.EdgeCount)
	}
	if e.events != nil {
		e.events.Publish(pubsub.TopicSnapshotUpdated, pubsub.SnapshotEvent{
			Nodes:     stats.NodeCount,
			Edges:     stats.EdgeCount,
			UpdatedAt: snap.UpdatedAt(),
		})
	}
}

// Stats returns statistics for the current snapshot.
func (e *Engine) Stats() graph.Stats {
	return e.handle.Current().Stats()
}

// RiskDistribution returns the node count per risk band.
func (e *Engine) RiskDistribution() map[string]int {
	return e.handle.Current().RiskDistribution()
}

// ZoneStats returns per-severity counts of active threat zones.
func (e *Engine) ZoneStats() zones.Stats {
	return e.zones.Stats()
}

func (e *Engine) observe(operation string, start time.Time, err error) {
	if e.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	e.metrics.RecordQuery(operation, status, time.Since(start))
}
