package zones

import (
	"time"

	"github.com/safesphere/saferoute/pkg/geo"
)

// Severity classifies a threat incident.
type Severity uint8

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the wire representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "MEDIUM"
	}
}

// ParseSeverity converts a wire string to a Severity. Unknown strings map to
// SeverityMedium, matching the incident feed's permissive contract.
func ParseSeverity(s string) Severity {
	switch s {
	case "LOW", "low":
		return SeverityLow
	case "HIGH", "high":
		return SeverityHigh
	case "CRITICAL", "critical":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

// Avoidance radius per severity, in kilometers. A fixed safety buffer is
// added on top when a zone is materialized from an incident.
const (
	RadiusLowKm      = 0.5
	RadiusMediumKm   = 0.8
	RadiusHighKm     = 1.2
	RadiusCriticalKm = 1.5

	// SafetyBufferKm widens every materialized zone by a fixed margin.
	SafetyBufferKm = 0.1
)

// RadiusKm returns the base avoidance radius for the severity, without the
// safety buffer.
func (s Severity) RadiusKm() float64 {
	switch s {
	case SeverityLow:
		return RadiusLowKm
	case SeverityHigh:
		return RadiusHighKm
	case SeverityCritical:
		return RadiusCriticalKm
	default:
		return RadiusMediumKm
	}
}

// ThreatZone is a circular hard-exclusion region. Routes must never cross
// it; RadiusKm already includes the safety buffer.
type ThreatZone struct {
	ID        string     `json:"id"`
	Center    geo.LatLng `json:"center"`
	RadiusKm  float64    `json:"radius_km"`
	Severity  Severity   `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// Incident is an event from the threat-detection pipelines. Zones are
// materialized from incidents; their lifecycle is independent of the
// node/edge snapshot lifecycle.
type Incident struct {
	ID          string    `json:"incident_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ThreatLevel string    `json:"threat_level"`
	Timestamp   time.Time `json:"timestamp"`
}

// Stats summarizes active zones per severity.
type Stats struct {
	TotalZones    int `json:"total_zones"`
	CriticalZones int `json:"critical_zones"`
	HighZones     int `json:"high_zones"`
	MediumZones   int `json:"medium_zones"`
	LowZones      int `json:"low_zones"`
}
