package engine

import (
	"context"
	"time"

	"github.com/safesphere/saferoute/pkg/geo"
	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/pubsub"
	"github.com/safesphere/saferoute/pkg/route"
	"github.com/safesphere/saferoute/pkg/zones"
)

// InterpolateRisk estimates the risk at an arbitrary position from the k
// nearest graph nodes.
func (e *Engine) InterpolateRisk(pos geo.Point, k int) (float64, error) {
	start := time.Now()
	if k <= 0 {
		k = e.cfg.InterpolationK
	}
	risk, err := e.handle.Current().InterpolateRisk(pos, k)
	e.observe("interpolate", start, err)
	return risk, err
}

// ValidatePolyline checks a coordinate sequence against the active threat
// zones and scores it.
func (e *Engine) ValidatePolyline(coords []geo.LatLng) route.RouteCandidate {
	start := time.Now()
	cand := e.validator.ValidateRoute(coords, e.zones.Zones())
	e.observe("validate", start, nil)

	if e.metrics != nil {
		outcome := "safe"
		if !cand.IsSafe {
			outcome = "unsafe"
		}
		e.metrics.RecordValidation(outcome, cand.SafetyScore)
	}
	return cand
}

// RankPolylines validates and ranks candidate polylines. When every
// candidate crosses a zone the result carries the AllUnsafe flag and the
// candidates are ranked by how closely they approach the blocking zones.
func (e *Engine) RankPolylines(candidates [][]geo.LatLng) route.RankResult {
	start := time.Now()
	result := e.validator.RankRoutes(candidates, e.zones.Zones())
	e.observe("rank", start, nil)

	if result.AllUnsafe {
		e.logger.Warn("no safe route among candidates",
			logging.Count(len(candidates)),
			logging.Any("blocking_zones", result.BlockingZones))
		if e.metrics != nil {
			e.metrics.RecordUnsafeFallback()
		}
	}
	return result
}

// BestSafeRoute returns the highest-scoring safe candidate, or ErrAllUnsafe
// when every candidate crosses a threat zone.
func (e *Engine) BestSafeRoute(candidates [][]geo.LatLng) (route.RouteCandidate, error) {
	result := e.RankPolylines(candidates)
	if result.AllUnsafe || result.Best == nil {
		return route.RouteCandidate{}, route.ErrAllUnsafe
	}
	return *result.Best, nil
}

// ApplyIncident materializes a threat zone from an incident report.
func (e *Engine) ApplyIncident(inc zones.Incident) (zones.ThreatZone, error) {
	zone, err := e.zones.FromIncident(inc)
	if err != nil {
		e.logger.Warn("incident rejected",
			logging.IncidentID(inc.ID),
			logging.Error(err))
		return zones.ThreatZone{}, err
	}

	e.logger.Info("threat zone activated",
		logging.ZoneID(zone.ID),
		logging.Severity(zone.Severity.String()),
		logging.Float64("radius_km", zone.RadiusKm))

	if e.metrics != nil {
		e.metrics.RecordIncident(zone.Severity.String())
		e.publishZoneGauges()
	}
	if e.events != nil {
		e.events.Publish(pubsub.TopicZoneAdded, pubsub.ZoneEvent{
			ZoneID:   zone.ID,
			Severity: zone.Severity.String(),
			RadiusKm: zone.RadiusKm,
		})
	}
	return zone, nil
}

// RemoveZone deactivates a threat zone by id.
func (e *Engine) RemoveZone(id string) bool {
	removed := e.zones.Remove(id)
	if removed {
		e.logger.Info("threat zone removed", logging.ZoneID(id))
		if e.metrics != nil {
			e.publishZoneGauges()
		}
		if e.events != nil {
			e.events.Publish(pubsub.TopicZoneRemoved, pubsub.ZoneEvent{ZoneID: id})
		}
	}
	return removed
}

// Zones returns the active threat zones.
func (e *Engine) Zones() []zones.ThreatZone {
	return e.zones.Zones()
}

// ExpireZones removes zones created before the cutoff and returns their ids.
func (e *Engine) ExpireZones(cutoff time.Time) []string {
	expired := e.zones.ExpireBefore(cutoff)
	if len(expired) == 0 {
		return expired
	}

	e.logger.Info("threat zones expired", logging.Count(len(expired)))
	if e.metrics != nil {
		e.publishZoneGauges()
	}
	if e.events != nil {
		e.events.Publish(pubsub.TopicZonesExpired, pubsub.ExpiryEvent{
			ZoneIDs: expired,
			Cutoff:  cutoff,
		})
	}
	return expired
}

// RunExpirySweeper periodically expires zones older than the configured TTL
// until ctx is cancelled.
func (e *Engine) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.ExpireZones(now.Add(-e.cfg.ZoneTTL))
		}
	}
}

func (e *Engine) publishZoneGauges() {
	stats := e.zones.Stats()
	e.metrics.UpdateActiveZones(map[string]int{
		zones.SeverityCritical.String(): stats.CriticalZones,
		zones.SeverityHigh.String():     stats.HighZones,
		zones.SeverityMedium.String():   stats.MediumZones,
		zones.SeverityLow.String():      stats.LowZones,
	})
}
