package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFeedMetrics() {
	r.IncidentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "saferoute_incidents_total",
			Help: "Incident events applied, by severity",
		},
		[]string{"severity"},
	)

	r.FeedErrors = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "saferoute_feed_errors_total",
			Help: "Malformed or undeliverable incident feed messages",
		},
	)
}
