package route

import (
	"errors"
	"math"
	"testing"
)

func analyzerPath() Path {
	return Path{
		Nodes: []string{"a", "b", "c", "d"},
		Segments: []Segment{
			{From: "a", To: "b", Risk: 0.1, Distance: 10},
			{From: "b", To: "c", Risk: 0.8, Distance: 10},
			{From: "c", To: "d", Risk: 0.3, Distance: 10},
		},
	}
}

func TestAnalyzeRoute(t *testing.T) {
	a, err := AnalyzeRoute(analyzerPath())
	if err != nil {
		t.Fatalf("AnalyzeRoute failed: %v", err)
	}

	if math.Abs(a.TotalRisk-1.2) > 1e-9 {
		t.Errorf("TotalRisk = %v, want 1.2", a.TotalRisk)
	}
	if math.Abs(a.AvgRisk-0.4) > 1e-9 {
		t.Errorf("AvgRisk = %v, want 0.4", a.AvgRisk)
	}
	if a.MaxRisk != 0.8 || a.MaxRiskAt != "c" {
		t.Errorf("max = %v at %s, want 0.8 at c", a.MaxRisk, a.MaxRiskAt)
	}
	if a.DangerSegments != 1 {
		t.Errorf("DangerSegments = %d, want 1", a.DangerSegments)
	}

	wantCumulative := []float64{0.1, 0.9, 1.2}
	for i, want := range wantCumulative {
		if math.Abs(a.Cumulative[i]-want) > 1e-9 {
			t.Errorf("Cumulative[%d] = %v, want %v", i, a.Cumulative[i], want)
		}
	}

	// AvgRisk 0.4 buckets to moderate.
	if a.Level != LevelModerate || a.Tag != TagMaintainVigilance {
		t.Errorf("level/tag = %v/%v, want moderate/maintain-vigilance", a.Level, a.Tag)
	}
}

func TestAnalyzeRouteEmpty(t *testing.T) {
	if _, err := AnalyzeRoute(Path{}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("error = %v, want ErrEmptyPath", err)
	}
}

func TestLevelForBoundaries(t *testing.T) {
	cases := []struct {
		risk float64
		want SafetyLevel
	}{
		{0.0, LevelExcellent},
		{0.2, LevelGood},
		{0.4, LevelModerate},
		{0.6, LevelRisky},
		{0.8, LevelDangerous},
		{1.0, LevelDangerous},
	}
	for _, c := range cases {
		if got := LevelFor(c.risk); got != c.want {
			t.Errorf("LevelFor(%v) = %v, want %v", c.risk, got, c.want)
		}
	}
}

func TestCompareRoutes(t *testing.T) {
	risky := analyzerPath()
	safe := Path{
		Nodes: []string{"a", "x", "d"},
		Segments: []Segment{
			{From: "a", To: "x", Risk: 0.1, Distance: 10},
			{From: "x", To: "d", Risk: 0.1, Distance: 10},
		},
	}

	cmp, err := CompareRoutes([]Path{risky, safe})
	if err != nil {
		t.Fatalf("CompareRoutes failed: %v", err)
	}
	if cmp.Compared != 2 {
		t.Errorf("Compared = %d, want 2", cmp.Compared)
	}
	if cmp.Safest == nil || math.Abs(cmp.Safest.TotalRisk-0.2) > 1e-9 {
		t.Errorf("Safest should be the 0.2-risk route: %+v", cmp.Safest)
	}
	if cmp.Ranked[0].TotalRisk > cmp.Ranked[1].TotalRisk {
		t.Error("ranked not ascending by total risk")
	}
}

func TestSummarize(t *testing.T) {
	sum, err := Summarize(analyzerPath(), 10)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	// 0.4*avg + 0.6*max = 0.4*0.4 + 0.6*0.8 = 0.64
	if math.Abs(sum.OverallRisk-0.64) > 1e-9 {
		t.Errorf("OverallRisk = %v, want 0.64", sum.OverallRisk)
	}
	if sum.Travel.TotalDistance != 30 {
		t.Errorf("travel distance = %v, want 30", sum.Travel.TotalDistance)
	}

	if _, err := Summarize(analyzerPath(), 0); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("invalid speed error = %v, want ErrInvalidSpeed", err)
	}
}
