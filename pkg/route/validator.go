package route

import (
	"math"
	"sort"

	"github.com/safesphere/saferoute/pkg/geo"
	"github.com/safesphere/saferoute/pkg/zones"
)

const (
	// DefaultSampleStride checks every 3rd vertex pair of a polyline.
	// Stride 1 checks every segment exactly.
	DefaultSampleStride = 3

	// DefaultReferenceDistanceKm is the closest-approach distance at which a
	// route earns a full safety score of 1.0.
	DefaultReferenceDistanceKm = 3.0
)

// Validator tests external polylines against threat zones. It is the hard
// safety layer: a route crossing any zone is rejected outright, never merely
// penalized.
type Validator struct {
	stride      int
	referenceKm float64
}

// NewValidator creates a validator with the default stride and reference
// distance.
func NewValidator() *Validator {
	return &Validator{stride: DefaultSampleStride, referenceKm: DefaultReferenceDistanceKm}
}

// SetStride overrides the sampling stride (1 = every segment).
func (v *Validator) SetStride(stride int) {
	if stride > 0 {
		v.stride = stride
	}
}

// SetReferenceDistance overrides the full-score distance in km.
func (v *Validator) SetReferenceDistance(km float64) {
	if km > 0 {
		v.referenceKm = km
	}
}

// ValidateRoute samples the polyline's vertex pairs at the configured stride
// and tests each sampled segment against every zone. Any intersection makes
// the route unsafe with score 0 and the blocking zones listed. Otherwise the
// score is the closest approach distance normalized by the reference
// distance, clamped to [0,1].
func (v *Validator) ValidateRoute(coords []geo.LatLng, zoneList []zones.ThreatZone) RouteCandidate {
	cand := RouteCandidate{
		Coordinates: coords,
		IsSafe:      true,
		SafetyScore: 1.0,
		// With no zones in range the route is fully safe; report the
		// reference distance rather than an unserializable infinity.
		ClosestDistanceKm: v.referenceKm,
		ClosestApproachKm: v.referenceKm,
	}
	if len(coords) < 2 || len(zoneList) == 0 {
		return cand
	}
	cand.ClosestDistanceKm = math.Inf(1)
	cand.ClosestApproachKm = math.Inf(1)

	blocked := make(map[string]bool)
	for i := 0; i+1 < len(coords); i += v.stride {
		p1, p2 := coords[i], coords[i+1]
		for _, z := range zoneList {
			approach := geo.DistanceToSegmentKm(z.Center, p1, p2) - z.RadiusKm
			if approach < cand.ClosestApproachKm {
				cand.ClosestApproachKm = approach
				cand.ClosestZoneID = z.ID
			}
			if z.Intersects(p1, p2) && !blocked[z.ID] {
				blocked[z.ID] = true
				cand.IntersectingZones = append(cand.IntersectingZones, z.ID)
			}
		}
	}
	sort.Strings(cand.IntersectingZones)

	cand.ClosestDistanceKm = math.Max(0, cand.ClosestApproachKm)
	if len(cand.IntersectingZones) > 0 {
		// Hard rejection: no further scoring once a zone is crossed.
		cand.IsSafe = false
		cand.SafetyScore = 0
		return cand
	}
	cand.SafetyScore = clamp01(cand.ClosestDistanceKm / v.referenceKm)
	return cand
}

// RankRoutes validates every candidate and keeps only the safe ones, sorted
// by descending safety score. When no candidate is safe, all of them are
// returned ranked by closest approach with AllUnsafe set, the union of
// blocking zones listed, and the least-bad candidate designated. Callers
// must surface that as a warning, never as a normal result.
func (v *Validator) RankRoutes(candidates [][]geo.LatLng, zoneList []zones.ThreatZone) RankResult {
	if len(candidates) == 0 {
		return RankResult{}
	}
	validated := make([]RouteCandidate, 0, len(candidates))
	for _, coords := range candidates {
		validated = append(validated, v.ValidateRoute(coords, zoneList))
	}

	var safe []RouteCandidate
	blocking := make(map[string]bool)
	for _, c := range validated {
		if c.IsSafe {
			safe = append(safe, c)
			continue
		}
		for _, id := range c.IntersectingZones {
			blocking[id] = true
		}
	}

	if len(safe) > 0 {
		sort.SliceStable(safe, func(i, j int) bool {
			return safe[i].SafetyScore > safe[j].SafetyScore
		})
		res := RankResult{Candidates: safe}
		res.Best = &res.Candidates[0]
		return res
	}

	// Fallback: every candidate crosses a zone. Rank by how shallowly the
	// route approaches danger (least penetration first).
	sort.SliceStable(validated, func(i, j int) bool {
		return validated[i].ClosestApproachKm > validated[j].ClosestApproachKm
	})
	res := RankResult{Candidates: validated, AllUnsafe: true}
	for id := range blocking {
		res.BlockingZones = append(res.BlockingZones, id)
	}
	sort.Strings(res.BlockingZones)
	if len(res.Candidates) > 0 {
		res.Best = &res.Candidates[0]
	}
	return res
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
