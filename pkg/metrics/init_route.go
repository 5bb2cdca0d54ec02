package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRouteMetrics() {
	r.ValidationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "saferoute_validations_total",
			Help: "Polyline validations by outcome (safe/unsafe)",
		},
		[]string{"outcome"},
	)

	r.UnsafeFallbacks = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "saferoute_unsafe_fallbacks_total",
			Help: "Rank calls where every candidate crossed a threat zone",
		},
	)

	r.ActiveZones = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "saferoute_active_zones",
			Help: "Active threat zones by severity",
		},
		[]string{"severity"},
	)

	r.SafetyScores = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "saferoute_safety_score",
			Help:    "Safety scores of validated polylines",
			Buckets: []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0},
		},
	)
}
