package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric the route engine exports. Metrics are grouped
// by subsystem and initialized in the matching init_*.go file.
type Registry struct {
	registry *prometheus.Registry

	// Engine query metrics
	QueriesTotal      *prometheus.CounterVec
	QueryDuration     *prometheus.HistogramVec
	PathsFound        *prometheus.HistogramVec
	IterationAborts   prometheus.Counter
	SnapshotNodes     prometheus.Gauge
	SnapshotEdges     prometheus.Gauge
	SnapshotLoads     prometheus.Counter

	// Route validation metrics
	ValidationsTotal  *prometheus.CounterVec
	UnsafeFallbacks   prometheus.Counter
	ActiveZones       *prometheus.GaugeVec
	SafetyScores      prometheus.Histogram

	// Incident feed metrics
	IncidentsTotal    *prometheus.CounterVec
	FeedErrors        prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}
