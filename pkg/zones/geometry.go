package zones

import (
	"math"

	"github.com/safesphere/saferoute/pkg/geo"
)

func latLng(lat, lng float64) geo.LatLng {
	return geo.LatLng{Lat: lat, Lng: lng}
}

// SegmentIntersectsCircle reports whether the segment p1-p2 passes within
// radiusKm of center. The circle center is projected onto the line through
// p1,p2 with the projection parameter clamped to [0,1], so the closest point
// is constrained to the segment. A bounding-box pre-filter short-circuits
// zones far from the segment before the exact distance computation.
func SegmentIntersectsCircle(p1, p2, center geo.LatLng, radiusKm float64) bool {
	if !geo.SegmentBounds(p1, p2).Overlaps(geo.CircleBounds(center, radiusKm)) {
		return false
	}
	return geo.DistanceToSegmentKm(center, p1, p2) <= radiusKm
}

// Intersects reports whether the segment p1-p2 crosses this zone.
func (z ThreatZone) Intersects(p1, p2 geo.LatLng) bool {
	return SegmentIntersectsCircle(p1, p2, z.Center, z.RadiusKm)
}

// Contains reports whether the point lies inside the zone.
func (z ThreatZone) Contains(p geo.LatLng) bool {
	return geo.HaversineKm(p, z.Center) <= z.RadiusKm
}

// PointInAnyZone reports whether the point lies inside any active zone.
func (m *Manager) PointInAnyZone(p geo.LatLng) bool {
	for _, z := range m.Zones() {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// ClosestDistanceToAnyZone returns the id of the nearest zone and the
// distance in km from the point to that zone's edge (0 if inside).
// Returns ok=false when no zones are active.
func (m *Manager) ClosestDistanceToAnyZone(p geo.LatLng) (zoneID string, distanceKm float64, ok bool) {
	minDist := math.Inf(1)
	for _, z := range m.Zones() {
		d := geo.HaversineKm(p, z.Center) - z.RadiusKm
		if d < 0 {
			d = 0
		}
		if d < minDist {
			minDist = d
			zoneID = z.ID
			ok = true
		}
	}
	return zoneID, minDist, ok
}
