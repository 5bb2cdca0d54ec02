package engine

import (
	"time"

	"github.com/safesphere/saferoute/pkg/graph"
)

// Config holds the tunable parameters of the route engine.
type Config struct {
	CostMode            graph.CostMode
	RiskPenaltyFactor   float64
	InterpolationK      int
	MaxIterations       int
	QueryDeadline       time.Duration
	SampleStride        int
	ReferenceDistanceKm float64
	ZoneTTL             time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		CostMode:            graph.CostPureRisk,
		RiskPenaltyFactor:   graph.DefaultRiskPenaltyFactor,
		InterpolationK:      graph.DefaultInterpolationK,
		MaxIterations:       100000,
		QueryDeadline:       2 * time.Second,
		SampleStride:        3,
		ReferenceDistanceKm: 3.0,
		ZoneTTL:             2 * time.Hour,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.RiskPenaltyFactor <= 0 {
		c.RiskPenaltyFactor = def.RiskPenaltyFactor
	}
	if c.InterpolationK <= 0 {
		c.InterpolationK = def.InterpolationK
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = def.MaxIterations
	}
	if c.QueryDeadline <= 0 {
		c.QueryDeadline = def.QueryDeadline
	}
	if c.SampleStride <= 0 {
		c.SampleStride = def.SampleStride
	}
	if c.ReferenceDistanceKm <= 0 {
		c.ReferenceDistanceKm = def.ReferenceDistanceKm
	}
	if c.ZoneTTL <= 0 {
		c.ZoneTTL = def.ZoneTTL
	}
}
