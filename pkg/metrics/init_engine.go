package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEngineMetrics() {
	r.QueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "saferoute_queries_total",
			Help: "Total number of engine queries executed",
		},
		[]string{"operation", "status"},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saferoute_query_duration_seconds",
			Help:    "Engine query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"operation"},
	)

	r.PathsFound = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saferoute_paths_found",
			Help:    "Number of alternative paths returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"operation"},
	)

	r.IterationAborts = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "saferoute_iteration_aborts_total",
			Help: "Searches aborted by the iteration safety limit",
		},
	)

	r.SnapshotNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "saferoute_snapshot_nodes",
			Help: "Nodes in the active snapshot",
		},
	)

	r.SnapshotEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "saferoute_snapshot_edges",
			Help: "Edges in the active snapshot",
		},
	)

	r.SnapshotLoads = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "saferoute_snapshot_loads_total",
			Help: "Total number of snapshot replacements",
		},
	)
}
