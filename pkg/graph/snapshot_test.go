package graph

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/safesphere/saferoute/pkg/geo"
)

func testInput() SnapshotInput {
	return SnapshotInput{
		Nodes: map[string]NodeInput{
			"a": {Position: geo.Point{X: 0, Y: 0}, Risk: 0.1, Type: "zone"},
			"b": {Position: geo.Point{X: 3, Y: 4}, Risk: 0.5, Type: "entrance"},
			"c": {Position: geo.Point{X: 6, Y: 8}, Risk: 0.9, Type: "shelter"},
		},
		Edges: map[string]EdgeInput{
			"ab": {From: "a", To: "b", Distance: 5, Risk: 0.2},
			"bc": {From: "b", To: "c", Risk: 0.8},
		},
	}
}

func TestNewSnapshot(t *testing.T) {
	s, err := NewSnapshot(testInput())
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	if s.NodeCount() != 3 || s.EdgeCount() != 2 {
		t.Errorf("got %d nodes, %d edges, want 3 and 2", s.NodeCount(), s.EdgeCount())
	}

	n, err := s.Node("b")
	if err != nil {
		t.Fatalf("Node(b) failed: %v", err)
	}
	if n.Type != NodeEntrance {
		t.Errorf("node b type = %v, want entrance", n.Type)
	}
}

func TestNewSnapshotCollectsAllViolations(t *testing.T) {
	input := SnapshotInput{
		Nodes: map[string]NodeInput{
			"a": {Risk: 0.1},
		},
		Edges: map[string]EdgeInput{
			"e1": {From: "a", To: "missing", Risk: 0.2},
			"e2": {From: "ghost", To: "a", Risk: 0.2},
			"e3": {From: "a", To: "a", Distance: -1, Risk: 0.2},
		},
	}
	_, err := NewSnapshot(input)
	if err == nil {
		t.Fatal("expected error for invalid input")
	}

	var snapErr *SnapshotError
	if !errors.As(err, &snapErr) {
		t.Fatalf("error type = %T, want *SnapshotError", err)
	}
	if len(snapErr.Violations) != 3 {
		t.Errorf("got %d violations, want 3: %v", len(snapErr.Violations), snapErr.Violations)
	}
	msg := err.Error()
	if !strings.Contains(msg, "missing") || !strings.Contains(msg, "ghost") {
		t.Errorf("error should name the unknown nodes: %v", msg)
	}
}

func TestNewSnapshotClampsRisk(t *testing.T) {
	input := SnapshotInput{
		Nodes: map[string]NodeInput{
			"hot":  {Risk: 1.7},
			"cold": {Risk: -0.3},
		},
	}
	s, err := NewSnapshot(input)
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	if r, _ := s.NodeRisk("hot"); r != 1.0 {
		t.Errorf("risk above 1 clamped to %v, want 1.0", r)
	}
	if r, _ := s.NodeRisk("cold"); r != 0.0 {
		t.Errorf("risk below 0 clamped to %v, want 0.0", r)
	}
}

func TestEdgeInheritsEuclideanDistance(t *testing.T) {
	s, err := NewSnapshot(testInput())
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	e, err := s.Edge("bc")
	if err != nil {
		t.Fatalf("Edge(bc) failed: %v", err)
	}
	// b=(3,4), c=(6,8): Euclidean distance 5.
	if math.Abs(e.Distance-5) > 1e-9 {
		t.Errorf("inherited distance = %v, want 5", e.Distance)
	}
}

func TestNeighborsUndirected(t *testing.T) {
	s, _ := NewSnapshot(testInput())

	nbs, err := s.Neighbors("b")
	if err != nil {
		t.Fatalf("Neighbors(b) failed: %v", err)
	}
	if len(nbs) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(nbs))
	}
	// Sorted by id: a before c.
	if nbs[0].ID != "a" || nbs[1].ID != "c" {
		t.Errorf("neighbor order = %s, %s, want a, c", nbs[0].ID, nbs[1].ID)
	}
}

func TestNeighborsDirected(t *testing.T) {
	input := testInput()
	input.Directed = true
	s, _ := NewSnapshot(input)

	nbs, _ := s.Neighbors("b")
	if len(nbs) != 1 || nbs[0].ID != "c" {
		t.Errorf("directed neighbors of b = %v, want only c", nbs)
	}

	nbs, _ = s.Neighbors("c")
	if len(nbs) != 0 {
		t.Errorf("directed neighbors of c = %v, want none", nbs)
	}
}

func TestLookupErrors(t *testing.T) {
	s, _ := NewSnapshot(testInput())

	_, err := s.Node("nope")
	if !IsNotFound(err) {
		t.Errorf("Node(nope) error = %v, want not-found", err)
	}
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("error should unwrap to ErrNodeNotFound: %v", err)
	}

	_, err = s.Edge("nope")
	if !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("Edge(nope) error = %v, want ErrEdgeNotFound", err)
	}
}

func TestNodesByRiskBand(t *testing.T) {
	s, _ := NewSnapshot(testInput())

	safe := s.NodesByRiskBand(DefaultSafeThreshold, RiskBelow)
	if len(safe) != 1 || safe[0] != "a" {
		t.Errorf("safe nodes = %v, want [a]", safe)
	}

	danger := s.NodesByRiskBand(DefaultDangerThreshold, RiskAtOrAbove)
	if len(danger) != 1 || danger[0] != "c" {
		t.Errorf("danger nodes = %v, want [c]", danger)
	}
}

func TestStats(t *testing.T) {
	s, _ := NewSnapshot(testInput())
	st := s.Stats()

	if st.NodeCount != 3 || st.EdgeCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", st.NodeCount, st.EdgeCount)
	}
	if math.Abs(st.AvgNodeRisk-0.5) > 1e-9 {
		t.Errorf("AvgNodeRisk = %v, want 0.5", st.AvgNodeRisk)
	}
	if st.MinNodeRisk != 0.1 || st.MaxNodeRisk != 0.9 {
		t.Errorf("min/max = %v/%v, want 0.1/0.9", st.MinNodeRisk, st.MaxNodeRisk)
	}
	if st.SafeZones != 1 || st.DangerZones != 1 {
		t.Errorf("safe/danger = %d/%d, want 1/1", st.SafeZones, st.DangerZones)
	}
	if math.Abs(st.AvgEdgeRisk-0.5) > 1e-9 {
		t.Errorf("AvgEdgeRisk = %v, want 0.5", st.AvgEdgeRisk)
	}
}

func TestStatsEmpty(t *testing.T) {
	s, _ := NewSnapshot(SnapshotInput{})
	st := s.Stats()
	if st.NodeCount != 0 || st.AvgNodeRisk != 0 {
		t.Errorf("empty stats = %+v", st)
	}
}

func TestRiskDistribution(t *testing.T) {
	s, _ := NewSnapshot(testInput())
	dist := s.RiskDistribution()

	// 0.1 -> safe, 0.5 -> medium, 0.9 -> critical
	if dist[BandSafe.String()] != 1 {
		t.Errorf("safe band = %d, want 1", dist[BandSafe.String()])
	}
	if dist[BandMedium.String()] != 1 {
		t.Errorf("medium band = %d, want 1", dist[BandMedium.String()])
	}
	if dist[BandCritical.String()] != 1 {
		t.Errorf("critical band = %d, want 1", dist[BandCritical.String()])
	}
	if dist[BandLow.String()] != 0 || dist[BandHigh.String()] != 0 {
		t.Errorf("unexpected counts in low/high bands: %v", dist)
	}
}

func TestBandFor(t *testing.T) {
	cases := []struct {
		risk float64
		want RiskBand
	}{
		{0.0, BandSafe},
		{0.19, BandSafe},
		{0.2, BandLow},
		{0.4, BandMedium},
		{0.6, BandHigh},
		{0.8, BandCritical},
		{1.0, BandCritical},
	}
	for _, c := range cases {
		if got := BandFor(c.risk); got != c.want {
			t.Errorf("BandFor(%v) = %v, want %v", c.risk, got, c.want)
		}
	}
}
