package api

import (
	"time"

	"github.com/safesphere/saferoute/pkg/graph"
	"github.com/safesphere/saferoute/pkg/route"
	"github.com/safesphere/saferoute/pkg/zones"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// SnapshotLoadResponse confirms a snapshot replacement.
type SnapshotLoadResponse struct {
	Loaded bool        `json:"loaded"`
	Stats  graph.Stats `json:"stats"`
}

// PathResponse carries a computed path and its analysis.
type PathResponse struct {
	Path     route.Path          `json:"path"`
	Analysis route.RouteAnalysis `json:"analysis"`
}

// AlternativesResponse carries ranked alternative paths.
type AlternativesResponse struct {
	Paths []route.Path `json:"paths"`
	Count int          `json:"count"`
}

// InterpolateResponse carries an interpolated risk value.
type InterpolateResponse struct {
	Risk float64 `json:"risk"`
	Band string  `json:"band"`
}

// StatsResponse combines graph and zone statistics.
type StatsResponse struct {
	Graph graph.Stats `json:"graph"`
	Zones zones.Stats `json:"zones"`
}

// IncidentResponse confirms zone activation from an incident.
type IncidentResponse struct {
	Zone zones.ThreatZone `json:"zone"`
}

// ZonesResponse lists active threat zones.
type ZonesResponse struct {
	Zones []zones.ThreatZone `json:"zones"`
	Count int                `json:"count"`
}
