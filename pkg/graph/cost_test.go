package graph

import (
	"errors"
	"math"
	"testing"
)

func TestEdgeCostPureRisk(t *testing.T) {
	s, _ := NewSnapshot(testInput())
	m := DefaultCostModel()

	// Edge ab: edge risk 0.2, dest node b risk 0.5.
	got, err := m.EdgeCost(s, "a", "b")
	if err != nil {
		t.Fatalf("EdgeCost failed: %v", err)
	}
	if math.Abs(got-0.35) > 1e-9 {
		t.Errorf("pure-risk cost = %v, want 0.35", got)
	}
}

func TestEdgeCostDistanceWeighted(t *testing.T) {
	input := testInput()
	input.Edges["ab"] = EdgeInput{From: "a", To: "b", Distance: 5, Risk: 0.6}
	s, _ := NewSnapshot(input)

	m := CostModel{Mode: CostDistanceWeighted, PenaltyFactor: DefaultRiskPenaltyFactor}
	got, err := m.EdgeCost(s, "a", "b")
	if err != nil {
		t.Fatalf("EdgeCost failed: %v", err)
	}
	// 5.0 * (1 + 50*0.6) = 155.0
	if math.Abs(got-155.0) > 1e-9 {
		t.Errorf("weighted cost = %v, want 155.0", got)
	}
}

func TestEdgeCostZeroRiskEqualsDistance(t *testing.T) {
	input := testInput()
	input.Edges["ab"] = EdgeInput{From: "a", To: "b", Distance: 5, Risk: 0}
	s, _ := NewSnapshot(input)

	m := CostModel{Mode: CostDistanceWeighted, PenaltyFactor: DefaultRiskPenaltyFactor}
	got, _ := m.EdgeCost(s, "a", "b")
	if got != 5.0 {
		t.Errorf("zero-risk weighted cost = %v, want plain distance 5.0", got)
	}
}

func TestEdgeCostNotConnected(t *testing.T) {
	s, _ := NewSnapshot(testInput())
	m := DefaultCostModel()

	_, err := m.EdgeCost(s, "a", "c")
	if !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("EdgeCost(a,c) error = %v, want ErrEdgeNotFound", err)
	}

	_, err = m.EdgeCost(s, "nope", "b")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("EdgeCost(nope,b) error = %v, want ErrNodeNotFound", err)
	}
}

func TestNeighborCostMatchesEdgeCost(t *testing.T) {
	s, _ := NewSnapshot(testInput())
	for _, m := range []CostModel{
		DefaultCostModel(),
		{Mode: CostDistanceWeighted, PenaltyFactor: 25},
	} {
		nbs, _ := s.Neighbors("a")
		for _, nb := range nbs {
			want, err := m.EdgeCost(s, "a", nb.ID)
			if err != nil {
				t.Fatalf("EdgeCost failed: %v", err)
			}
			if got := m.NeighborCost(s, nb); math.Abs(got-want) > 1e-9 {
				t.Errorf("mode %v: NeighborCost = %v, EdgeCost = %v", m.Mode, got, want)
			}
		}
	}
}

func TestWithPenaltyFactorDoesNotMutate(t *testing.T) {
	m := DefaultCostModel()
	derived := m.WithPenaltyFactor(10)
	if m.PenaltyFactor != DefaultRiskPenaltyFactor {
		t.Errorf("original model mutated: %v", m.PenaltyFactor)
	}
	if derived.PenaltyFactor != 10 {
		t.Errorf("derived factor = %v, want 10", derived.PenaltyFactor)
	}
}

func TestParseCostMode(t *testing.T) {
	if ParseCostMode("distance_weighted") != CostDistanceWeighted {
		t.Error("distance_weighted not parsed")
	}
	if ParseCostMode("pure_risk") != CostPureRisk {
		t.Error("pure_risk not parsed")
	}
	if ParseCostMode("garbage") != CostPureRisk {
		t.Error("unknown mode should default to pure_risk")
	}
	if CostDistanceWeighted.String() != "distance_weighted" {
		t.Error("String round trip failed")
	}
}

func TestSegmentRisk(t *testing.T) {
	s, _ := NewSnapshot(testInput())
	nbs, _ := s.Neighbors("a")
	// Edge ab: (0.2 + 0.5) / 2
	if got := SegmentRisk(s, nbs[0]); math.Abs(got-0.35) > 1e-9 {
		t.Errorf("SegmentRisk = %v, want 0.35", got)
	}
}
