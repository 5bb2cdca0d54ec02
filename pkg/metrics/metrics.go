// Package metrics exports the route engine's Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry creates a registry with all subsystem metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initEngineMetrics()
	r.initRouteMetrics()
	r.initFeedMetrics()
	r.initHTTPMetrics()
	return r
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordQuery records an engine query with its outcome and duration.
func (r *Registry) RecordQuery(operation, status string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(operation, status).Inc()
	r.QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordPathsFound records how many alternatives a k-path search returned.
func (r *Registry) RecordPathsFound(operation string, count int) {
	r.PathsFound.WithLabelValues(operation).Observe(float64(count))
}

// RecordSnapshotLoad updates the snapshot gauges after a load.
func (r *Registry) RecordSnapshotLoad(nodes, edges int) {
	r.SnapshotLoads.Inc()
	r.SnapshotNodes.Set(float64(nodes))
	r.SnapshotEdges.Set(float64(edges))
}

// RecordValidation records a polyline validation outcome.
func (r *Registry) RecordValidation(outcome string, safetyScore float64) {
	r.ValidationsTotal.WithLabelValues(outcome).Inc()
	r.SafetyScores.Observe(safetyScore)
}

// RecordUnsafeFallback records a rank call where no candidate was safe.
func (r *Registry) RecordUnsafeFallback() {
	r.UnsafeFallbacks.Inc()
}

// UpdateActiveZones sets the per-severity active zone gauges.
func (r *Registry) UpdateActiveZones(counts map[string]int) {
	for severity, n := range counts {
		r.ActiveZones.WithLabelValues(severity).Set(float64(n))
	}
}

// RecordIncident records an incident feed event by severity.
func (r *Registry) RecordIncident(severity string) {
	r.IncidentsTotal.WithLabelValues(severity).Inc()
}

// RecordFeedError records a malformed or undeliverable feed message.
func (r *Registry) RecordFeedError() {
	r.FeedErrors.Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
