package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/safesphere/saferoute/pkg/geo"
)

func interpolationInput() SnapshotInput {
	return SnapshotInput{
		Nodes: map[string]NodeInput{
			"a": {Position: geo.Point{X: 0, Y: 0}, Risk: 0.2},
			"b": {Position: geo.Point{X: 2, Y: 0}, Risk: 0.8},
			"c": {Position: geo.Point{X: 0, Y: 2}, Risk: 0.4},
			"d": {Position: geo.Point{X: 10, Y: 10}, Risk: 1.0},
		},
	}
}

func TestInterpolateExactHit(t *testing.T) {
	s, _ := NewSnapshot(interpolationInput())
	got, err := s.InterpolateRisk(geo.Point{X: 2, Y: 0}, 3)
	if err != nil {
		t.Fatalf("InterpolateRisk failed: %v", err)
	}
	if got != 0.8 {
		t.Errorf("exact hit = %v, want node risk 0.8", got)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	s, _ := NewSnapshot(interpolationInput())
	// Equidistant from a (0.2) and b (0.8) with k=2: plain average.
	got, err := s.InterpolateRisk(geo.Point{X: 1, Y: 0}, 2)
	if err != nil {
		t.Fatalf("InterpolateRisk failed: %v", err)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("midpoint = %v, want 0.5", got)
	}
}

func TestInterpolateCloserNodeDominates(t *testing.T) {
	s, _ := NewSnapshot(interpolationInput())
	// Much closer to a than to b; result pulls toward 0.2.
	got, err := s.InterpolateRisk(geo.Point{X: 0.1, Y: 0}, 2)
	if err != nil {
		t.Fatalf("InterpolateRisk failed: %v", err)
	}
	if got > 0.25 {
		t.Errorf("near-a estimate = %v, want close to 0.2", got)
	}
}

func TestInterpolateBounds(t *testing.T) {
	s, _ := NewSnapshot(interpolationInput())
	positions := []geo.Point{
		{X: 1, Y: 1}, {X: -5, Y: -5}, {X: 100, Y: 100}, {X: 0.5, Y: 0.5},
	}
	for _, pos := range positions {
		got, err := s.InterpolateRisk(pos, 3)
		if err != nil {
			t.Fatalf("InterpolateRisk(%v) failed: %v", pos, err)
		}
		if got < 0 || got > 1 {
			t.Errorf("InterpolateRisk(%v) = %v, outside [0,1]", pos, got)
		}
	}
}

func TestInterpolateKLargerThanNodeCount(t *testing.T) {
	s, _ := NewSnapshot(interpolationInput())
	if _, err := s.InterpolateRisk(geo.Point{X: 1, Y: 1}, 50); err != nil {
		t.Errorf("oversized k should use all nodes, got error: %v", err)
	}
}

func TestInterpolateDefaultK(t *testing.T) {
	s, _ := NewSnapshot(interpolationInput())
	withDefault, _ := s.InterpolateRisk(geo.Point{X: 1, Y: 1}, 0)
	withThree, _ := s.InterpolateRisk(geo.Point{X: 1, Y: 1}, DefaultInterpolationK)
	if withDefault != withThree {
		t.Errorf("k<=0 should fall back to default: %v vs %v", withDefault, withThree)
	}
}

func TestInterpolateEmptySnapshot(t *testing.T) {
	s, _ := NewSnapshot(SnapshotInput{})
	_, err := s.InterpolateRisk(geo.Point{}, 3)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("empty snapshot error = %v, want ErrNoData", err)
	}
}
