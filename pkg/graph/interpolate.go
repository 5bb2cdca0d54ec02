package graph

import (
	"sort"

	"github.com/safesphere/saferoute/pkg/geo"
)

// DefaultInterpolationK is the neighbor count used when callers pass k <= 0.
const DefaultInterpolationK = 3

// InterpolateRisk estimates the risk at an arbitrary position using
// inverse-distance weighting over the k nearest nodes (weight = 1/d²).
// A node exactly coincident with the position short-circuits to that node's
// risk. Fewer than k nodes means all available nodes are used; an empty
// snapshot returns ErrNoData.
func (s *Snapshot) InterpolateRisk(pos geo.Point, k int) (float64, error) {
	if len(s.nodes) == 0 {
		return 0, ErrNoData
	}
	if k <= 0 {
		k = DefaultInterpolationK
	}

	type sample struct {
		dist float64
		risk float64
	}
	samples := make([]sample, 0, len(s.nodes))
	for _, n := range s.nodes {
		samples = append(samples, sample{dist: pos.DistanceTo(n.Position), risk: n.Risk})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].dist < samples[j].dist })

	if k > len(samples) {
		k = len(samples)
	}
	nearest := samples[:k]

	// Exact hit: return the node's risk directly, avoiding division by zero.
	if nearest[0].dist == 0 {
		return nearest[0].risk, nil
	}

	var weighted, total float64
	for _, sm := range nearest {
		w := 1.0 / (sm.dist * sm.dist)
		weighted += w * sm.risk
		total += w
	}
	return clampRisk(weighted / total), nil
}
