package route

import (
	"github.com/safesphere/saferoute/pkg/geo"
)

// Segment is one realized hop of a path. Risk is the traversal risk term
// (edge risk averaged with the destination node risk).
type Segment struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	EdgeID   string  `json:"edge_id"`
	Risk     float64 `json:"risk"`
	Distance float64 `json:"distance"`
}

// Path is a loop-free, ordered node sequence with its realized segments.
// TotalRisk is the sum of per-segment risk terms; TotalCost is the sum of
// edge costs under the cost model the path was searched with.
type Path struct {
	Nodes         []string  `json:"nodes"`
	Segments      []Segment `json:"segments"`
	TotalRisk     float64   `json:"total_risk"`
	TotalCost     float64   `json:"total_cost"`
	TotalDistance float64   `json:"total_distance"`
}

// Hops returns the number of edges traversed.
func (p Path) Hops() int {
	if len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// ReachInfo describes how a node was reached during constrained traversal.
type ReachInfo struct {
	Risk float64 `json:"risk"`
	Hops int     `json:"hops"`
}

// BottleneckKind distinguishes node and edge bottlenecks.
type BottleneckKind string

const (
	BottleneckNode BottleneckKind = "node"
	BottleneckEdge BottleneckKind = "edge"
)

// Bottleneck is a node or edge whose risk is at or above a scan threshold.
type Bottleneck struct {
	Kind BottleneckKind `json:"kind"`
	ID   string         `json:"id"`
	Risk float64        `json:"risk"`
	From string         `json:"from,omitempty"`
	To   string         `json:"to,omitempty"`
	Name string         `json:"name,omitempty"`
}

// SafetyLevel classifies a route by its average segment risk.
type SafetyLevel uint8

const (
	LevelExcellent SafetyLevel = iota
	LevelGood
	LevelModerate
	LevelRisky
	LevelDangerous
)

// String returns the reporting label for the level.
func (l SafetyLevel) String() string {
	switch l {
	case LevelExcellent:
		return "EXCELLENT"
	case LevelGood:
		return "GOOD"
	case LevelModerate:
		return "MODERATE"
	case LevelRisky:
		return "RISKY"
	default:
		return "DANGEROUS"
	}
}

// LevelFor buckets an average segment risk into a safety level.
func LevelFor(avgRisk float64) SafetyLevel {
	switch {
	case avgRisk < 0.2:
		return LevelExcellent
	case avgRisk < 0.4:
		return LevelGood
	case avgRisk < 0.6:
		return LevelModerate
	case avgRisk < 0.8:
		return LevelRisky
	default:
		return LevelDangerous
	}
}

// RecommendationTag is the closed set of route guidance markers. Callers map
// tags to user-facing copy; the engine never emits prose.
type RecommendationTag string

const (
	TagStandardPrecautions RecommendationTag = "STANDARD_PRECAUTIONS"
	TagNormalAwareness     RecommendationTag = "NORMAL_AWARENESS"
	TagMaintainVigilance   RecommendationTag = "MAINTAIN_VIGILANCE"
	TagEnhancedSecurity    RecommendationTag = "ENHANCED_SECURITY"
	TagSeekAlternative     RecommendationTag = "SEEK_ALTERNATIVE"
)

// TagFor maps a safety level to its recommendation tag.
func TagFor(level SafetyLevel) RecommendationTag {
	switch level {
	case LevelExcellent:
		return TagStandardPrecautions
	case LevelGood:
		return TagNormalAwareness
	case LevelModerate:
		return TagMaintainVigilance
	case LevelRisky:
		return TagEnhancedSecurity
	default:
		return TagSeekAlternative
	}
}

// RouteAnalysis is the per-segment breakdown of a path.
type RouteAnalysis struct {
	Path           []string          `json:"path"`
	Segments       []Segment         `json:"segments"`
	Cumulative     []float64         `json:"cumulative_risk"`
	TotalRisk      float64           `json:"total_risk"`
	AvgRisk        float64           `json:"avg_risk"`
	MaxRisk        float64           `json:"max_risk"`
	MaxRiskAt      string            `json:"max_risk_at"`
	DangerSegments int               `json:"danger_segments"`
	Level          SafetyLevel       `json:"-"`
	LevelLabel     string            `json:"safety_level"`
	Tag            RecommendationTag `json:"recommendation"`
}

// Comparison ranks candidate paths by total risk.
type Comparison struct {
	Ranked  []RouteAnalysis `json:"ranked"`
	Safest  *RouteAnalysis  `json:"safest"`
	Compared int            `json:"compared"`
}

// SegmentTime is the per-segment travel-time breakdown.
type SegmentTime struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Risk     float64 `json:"risk"`
	Speed    float64 `json:"speed"`
	Seconds  float64 `json:"seconds"`
}

// TravelEstimate aggregates risk-adjusted travel time over a path.
type TravelEstimate struct {
	TotalDistance float64       `json:"total_distance"`
	TotalSeconds  float64       `json:"total_seconds"`
	AvgSpeed      float64       `json:"avg_speed"`
	Segments      []SegmentTime `json:"segments"`
}

// RouteCandidate is an externally supplied polyline annotated by validation.
// SafetyScore is 0 when any sampled segment crosses a zone, otherwise the
// closest approach distance normalized by the reference distance.
// ClosestApproachKm is signed: negative when the route enters a zone.
type RouteCandidate struct {
	Coordinates        []geo.LatLng `json:"coordinates"`
	IsSafe             bool         `json:"is_safe"`
	SafetyScore        float64      `json:"safety_score"`
	IntersectingZones  []string     `json:"intersecting_zones,omitempty"`
	ClosestZoneID      string       `json:"closest_zone_id,omitempty"`
	ClosestDistanceKm  float64      `json:"closest_distance_km"`
	ClosestApproachKm  float64      `json:"closest_approach_km"`
}

// RankResult is the outcome of ranking candidate polylines. When AllUnsafe
// is set every candidate crossed a zone: the full set is still returned,
// ranked by closest approach, with the blocking zones listed and the best
// (still unsafe) candidate designated. Callers must surface AllUnsafe as a
// warning, never as a normal safe result.
type RankResult struct {
	Candidates    []RouteCandidate `json:"candidates"`
	AllUnsafe     bool             `json:"all_unsafe"`
	BlockingZones []string         `json:"blocking_zones,omitempty"`
	Best          *RouteCandidate  `json:"best,omitempty"`
}
