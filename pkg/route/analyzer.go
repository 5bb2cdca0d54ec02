package route

import (
	"sort"
)

// dangerSegmentThreshold marks a segment as a danger spot in analysis.
const dangerSegmentThreshold = 0.7

// AnalyzeRoute derives per-segment and cumulative risk metrics from a path,
// classifies it into a safety level, and attaches the matching
// recommendation tag.
func AnalyzeRoute(p Path) (RouteAnalysis, error) {
	if len(p.Segments) == 0 {
		return RouteAnalysis{}, ErrEmptyPath
	}

	a := RouteAnalysis{
		Path:       append([]string{}, p.Nodes...),
		Segments:   append([]Segment{}, p.Segments...),
		Cumulative: make([]float64, 0, len(p.Segments)),
	}
	running := 0.0
	for _, seg := range p.Segments {
		running += seg.Risk
		a.Cumulative = append(a.Cumulative, running)
		if seg.Risk > a.MaxRisk {
			a.MaxRisk = seg.Risk
			a.MaxRiskAt = seg.To
		}
		if seg.Risk > dangerSegmentThreshold {
			a.DangerSegments++
		}
	}
	a.TotalRisk = running
	a.AvgRisk = running / float64(len(p.Segments))
	a.Level = LevelFor(a.AvgRisk)
	a.LevelLabel = a.Level.String()
	a.Tag = TagFor(a.Level)
	return a, nil
}

// CompareRoutes analyzes all candidate paths and ranks them ascending by
// total risk, designating the safest.
func CompareRoutes(paths []Path) (Comparison, error) {
	cmp := Comparison{Compared: len(paths)}
	for _, p := range paths {
		a, err := AnalyzeRoute(p)
		if err != nil {
			return Comparison{}, err
		}
		cmp.Ranked = append(cmp.Ranked, a)
	}
	sort.SliceStable(cmp.Ranked, func(i, j int) bool {
		return cmp.Ranked[i].TotalRisk < cmp.Ranked[j].TotalRisk
	})
	if len(cmp.Ranked) > 0 {
		cmp.Safest = &cmp.Ranked[0]
	}
	return cmp, nil
}

// RouteSummary is the aggregate report over a path: risk analysis, weighted
// overall risk, and the risk-adjusted travel estimate.
type RouteSummary struct {
	Analysis    RouteAnalysis  `json:"analysis"`
	OverallRisk float64        `json:"overall_risk"`
	Travel      TravelEstimate `json:"travel"`
}

// Summarize is the route analyzer: a pure aggregation over a path. The
// overall risk weights the maximum segment risk above the average
// (0.4*avg + 0.6*max), so a single hot segment dominates the headline
// number.
func Summarize(p Path, baseSpeed float64) (RouteSummary, error) {
	analysis, err := AnalyzeRoute(p)
	if err != nil {
		return RouteSummary{}, err
	}
	travel, err := TravelTime(p, baseSpeed)
	if err != nil {
		return RouteSummary{}, err
	}
	return RouteSummary{
		Analysis:    analysis,
		OverallRisk: 0.4*analysis.AvgRisk + 0.6*analysis.MaxRisk,
		Travel:      travel,
	}, nil
}
