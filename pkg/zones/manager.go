// Package zones maintains the circular hard-exclusion zones derived from
// active threat incidents, and owns the geometric primitives used to test
// routes against them.
package zones

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrInvalidZone rejects a zone with a non-positive radius.
var ErrInvalidZone = errors.New("invalid zone: radius must be positive")

// Manager holds the active threat zones. Zones are created as incidents
// arrive and retired as they expire, independent of snapshot replacement.
// Reads take a consistent copy so queries never observe a half-applied
// update.
type Manager struct {
	mu    sync.RWMutex
	zones map[string]ThreatZone
}

// NewManager creates an empty zone manager.
func NewManager() *Manager {
	return &Manager{zones: make(map[string]ThreatZone)}
}

// FromIncident materializes a zone from an incident: the severity's
// avoidance radius plus the fixed safety buffer, centered at the incident
// location. The zone replaces any previous zone with the same incident id.
func (m *Manager) FromIncident(inc Incident) (ThreatZone, error) {
	sev := ParseSeverity(inc.ThreatLevel)
	zone := ThreatZone{
		ID:        inc.ID,
		Center:    latLng(inc.Latitude, inc.Longitude),
		RadiusKm:  sev.RadiusKm() + SafetyBufferKm,
		Severity:  sev,
		CreatedAt: inc.Timestamp,
	}
	if err := m.Add(zone); err != nil {
		return ThreatZone{}, err
	}
	return zone, nil
}

// Add registers a zone, rejecting non-positive radii.
func (m *Manager) Add(zone ThreatZone) error {
	if zone.RadiusKm <= 0 {
		return fmt.Errorf("zone %q: %w", zone.ID, ErrInvalidZone)
	}
	m.mu.Lock()
	m.zones[zone.ID] = zone
	m.mu.Unlock()
	return nil
}

// Remove retires a zone by id. Returns true if the zone existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.zones[id]; !ok {
		return false
	}
	delete(m.zones, id)
	return true
}

// ExpireBefore retires all zones created before the cutoff and returns the
// ids of the retired zones.
func (m *Manager) ExpireBefore(cutoff time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []string
	for id, z := range m.zones {
		if z.CreatedAt.Before(cutoff) {
			delete(m.zones, id)
			expired = append(expired, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// Zones returns a consistent copy of the active zones, sorted by id.
func (m *Manager) Zones() []ThreatZone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ThreatZone, 0, len(m.zones))
	for _, z := range m.zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ZonesBySeverity returns the active zones with the given severity.
func (m *Manager) ZonesBySeverity(sev Severity) []ThreatZone {
	var out []ThreatZone
	for _, z := range m.Zones() {
		if z.Severity == sev {
			out = append(out, z)
		}
	}
	return out
}

// Count returns the number of active zones.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)
}

// Stats returns per-severity zone counts.
func (m *Manager) Stats() Stats {
	st := Stats{}
	for _, z := range m.Zones() {
		st.TotalZones++
		switch z.Severity {
		case SeverityCritical:
			st.CriticalZones++
		case SeverityHigh:
			st.HighZones++
		case SeverityMedium:
			st.MediumZones++
		case SeverityLow:
			st.LowZones++
		}
	}
	return st
}
