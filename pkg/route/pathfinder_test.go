package route

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/safesphere/saferoute/pkg/graph"
)

// diamond builds s -> {a risky, b safe} -> t plus a direct risky shortcut.
func diamond(t *testing.T) *graph.Snapshot {
	t.Helper()
	s, err := graph.NewSnapshot(graph.SnapshotInput{
		Nodes: map[string]graph.NodeInput{
			"s": {Risk: 0.1},
			"a": {Risk: 0.8},
			"b": {Risk: 0.1},
			"t": {Risk: 0.1},
		},
		Edges: map[string]graph.EdgeInput{
			"sa": {From: "s", To: "a", Distance: 1, Risk: 0.8},
			"at": {From: "a", To: "t", Distance: 1, Risk: 0.8},
			"sb": {From: "s", To: "b", Distance: 1, Risk: 0.1},
			"bt": {From: "b", To: "t", Distance: 1, Risk: 0.1},
			"st": {From: "s", To: "t", Distance: 1, Risk: 0.9},
		},
	})
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	return s
}

func TestSafestPathPrefersLowRisk(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	p, err := pf.SafestPath(context.Background(), "s", "t")
	if err != nil {
		t.Fatalf("SafestPath failed: %v", err)
	}
	want := []string{"s", "b", "t"}
	if len(p.Nodes) != 3 || p.Nodes[0] != want[0] || p.Nodes[1] != want[1] || p.Nodes[2] != want[2] {
		t.Errorf("path = %v, want %v", p.Nodes, want)
	}
	// Segments: (0.1+0.1)/2 twice.
	if math.Abs(p.TotalRisk-0.2) > 1e-9 {
		t.Errorf("TotalRisk = %v, want 0.2", p.TotalRisk)
	}
	if p.TotalDistance != 2 {
		t.Errorf("TotalDistance = %v, want 2", p.TotalDistance)
	}
	if p.Hops() != 2 {
		t.Errorf("Hops = %d, want 2", p.Hops())
	}
}

func TestSafestPathStartEqualsEnd(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	p, err := pf.SafestPath(context.Background(), "s", "s")
	if err != nil {
		t.Fatalf("SafestPath failed: %v", err)
	}
	if len(p.Nodes) != 1 || p.Nodes[0] != "s" || p.Hops() != 0 {
		t.Errorf("self path = %v", p.Nodes)
	}
}

func TestSafestPathDeterministicTieBreak(t *testing.T) {
	// Two equal-cost routes; the lexicographically smaller node sequence wins.
	s, _ := graph.NewSnapshot(graph.SnapshotInput{
		Nodes: map[string]graph.NodeInput{
			"s": {Risk: 0.2}, "a": {Risk: 0.2}, "b": {Risk: 0.2}, "t": {Risk: 0.2},
		},
		Edges: map[string]graph.EdgeInput{
			"sa": {From: "s", To: "a", Distance: 1, Risk: 0.2},
			"at": {From: "a", To: "t", Distance: 1, Risk: 0.2},
			"sb": {From: "s", To: "b", Distance: 1, Risk: 0.2},
			"bt": {From: "b", To: "t", Distance: 1, Risk: 0.2},
		},
	})
	pf := NewPathFinder(s, graph.DefaultCostModel())

	for i := 0; i < 10; i++ {
		p, err := pf.SafestPath(context.Background(), "s", "t")
		if err != nil {
			t.Fatalf("SafestPath failed: %v", err)
		}
		if p.Nodes[1] != "a" {
			t.Fatalf("tie broke to %v, want the a-route every time", p.Nodes)
		}
	}
}

func TestSafestPathUnreachable(t *testing.T) {
	s, _ := graph.NewSnapshot(graph.SnapshotInput{
		Nodes: map[string]graph.NodeInput{
			"s": {}, "island": {},
		},
	})
	pf := NewPathFinder(s, graph.DefaultCostModel())
	_, err := pf.SafestPath(context.Background(), "s", "island")
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("error = %v, want ErrUnreachable", err)
	}
}

func TestSafestPathUnknownNodes(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	if _, err := pf.SafestPath(context.Background(), "nope", "t"); !graph.IsNotFound(err) {
		t.Errorf("unknown start error = %v, want not-found", err)
	}
	if _, err := pf.SafestPath(context.Background(), "s", "nope"); !graph.IsNotFound(err) {
		t.Errorf("unknown end error = %v, want not-found", err)
	}
}

func TestSafestPathIterationLimit(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	pf.SetMaxIterations(1)
	_, err := pf.SafestPath(context.Background(), "s", "t")
	if !errors.Is(err, ErrIterationLimit) {
		t.Errorf("error = %v, want ErrIterationLimit", err)
	}
}

func TestKSafestPathsDistinctAndSorted(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	paths, err := pf.KSafestPaths(context.Background(), "s", "t", 3)
	if err != nil {
		t.Fatalf("KSafestPaths failed: %v", err)
	}
	if len(paths) < 2 {
		t.Fatalf("got %d paths, want at least 2", len(paths))
	}

	seen := make(map[string]bool)
	for i, p := range paths {
		key := ""
		for _, n := range p.Nodes {
			key += n + "/"
		}
		if seen[key] {
			t.Errorf("duplicate path: %v", p.Nodes)
		}
		seen[key] = true
		if i > 0 && paths[i-1].TotalRisk > p.TotalRisk {
			t.Errorf("paths not sorted by risk: %v then %v", paths[i-1].TotalRisk, p.TotalRisk)
		}
	}

	// The safest alternative is the safe route.
	if paths[0].Nodes[1] != "b" {
		t.Errorf("first alternative = %v, want the b-route", paths[0].Nodes)
	}
}

func TestKSafestPathsFewerThanRequested(t *testing.T) {
	// Only one route exists; asking for more is not an error.
	s, _ := graph.NewSnapshot(graph.SnapshotInput{
		Nodes: map[string]graph.NodeInput{"s": {}, "t": {}},
		Edges: map[string]graph.EdgeInput{
			"st": {From: "s", To: "t", Distance: 1, Risk: 0.1},
		},
	})
	pf := NewPathFinder(s, graph.DefaultCostModel())
	paths, err := pf.KSafestPaths(context.Background(), "s", "t", 5)
	if err != nil {
		t.Fatalf("KSafestPaths failed: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("got %d paths, want 1", len(paths))
	}
}

func TestKSafestPathsCancelledContext(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pf.KSafestPaths(ctx, "s", "t", 3)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("cancelled context error = %v, want ErrUnreachable", err)
	}
}

func TestIsReachable(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())

	ok, err := pf.IsReachable("s", "t", 0.2)
	if err != nil || !ok {
		t.Errorf("t should be reachable via the safe route: ok=%v err=%v", ok, err)
	}

	// Ceiling below every edge: nothing reachable.
	ok, err = pf.IsReachable("s", "t", 0.05)
	if err != nil || ok {
		t.Errorf("t should be unreachable below all edge risks: ok=%v err=%v", ok, err)
	}

	if _, err := pf.IsReachable("s", "nope", 1.0); !graph.IsNotFound(err) {
		t.Errorf("unknown end error = %v, want not-found", err)
	}
}

func TestReachableNodesRiskCeiling(t *testing.T) {
	// Chain s -(0.2)- a -(0.5)- b: ceiling 0.3 stops at a.
	s, _ := graph.NewSnapshot(graph.SnapshotInput{
		Nodes: map[string]graph.NodeInput{
			"s": {Risk: 0.1}, "a": {Risk: 0.2}, "b": {Risk: 0.3},
		},
		Edges: map[string]graph.EdgeInput{
			"sa": {From: "s", To: "a", Distance: 1, Risk: 0.2},
			"ab": {From: "a", To: "b", Distance: 1, Risk: 0.5},
		},
	})
	pf := NewPathFinder(s, graph.DefaultCostModel())

	reached, err := pf.ReachableNodes("s", 0.3, 5)
	if err != nil {
		t.Fatalf("ReachableNodes failed: %v", err)
	}
	if len(reached) != 2 {
		t.Fatalf("reached %d nodes, want 2 (s and a): %v", len(reached), reached)
	}
	info, ok := reached["a"]
	if !ok {
		t.Fatal("a should be reachable")
	}
	if info.Hops != 1 {
		t.Errorf("a hops = %d, want 1", info.Hops)
	}
	// Segment risk (0.2+0.2)/2.
	if math.Abs(info.Risk-0.2) > 1e-9 {
		t.Errorf("a accumulated risk = %v, want 0.2", info.Risk)
	}
	if _, ok := reached["b"]; ok {
		t.Error("b should be blocked by the risk ceiling")
	}
}

func TestReachableNodesHopLimit(t *testing.T) {
	s, _ := graph.NewSnapshot(graph.SnapshotInput{
		Nodes: map[string]graph.NodeInput{"s": {}, "a": {}, "b": {}},
		Edges: map[string]graph.EdgeInput{
			"sa": {From: "s", To: "a", Distance: 1, Risk: 0.1},
			"ab": {From: "a", To: "b", Distance: 1, Risk: 0.1},
		},
	})
	pf := NewPathFinder(s, graph.DefaultCostModel())

	reached, _ := pf.ReachableNodes("s", 1.0, 1)
	if _, ok := reached["b"]; ok {
		t.Error("b is 2 hops out, should be cut by maxHops=1")
	}
	if _, ok := reached["a"]; !ok {
		t.Error("a is 1 hop out, should be reached")
	}
}

func TestBottlenecks(t *testing.T) {
	pf := NewPathFinder(diamond(t), graph.DefaultCostModel())
	out := pf.Bottlenecks(0.7)

	// Node a (0.8), edges sa, at (0.8) and st (0.9).
	if len(out) != 4 {
		t.Fatalf("got %d bottlenecks, want 4: %v", len(out), out)
	}
	if out[0].Risk != 0.9 || out[0].ID != "st" {
		t.Errorf("first bottleneck = %+v, want edge st at 0.9", out[0])
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Risk < out[i].Risk {
			t.Error("bottlenecks not sorted by descending risk")
		}
	}
}

func TestBuildPath(t *testing.T) {
	snap := diamond(t)
	cost := graph.DefaultCostModel()

	p, err := BuildPath(snap, cost, []string{"s", "b", "t"})
	if err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}
	if math.Abs(p.TotalRisk-0.2) > 1e-9 {
		t.Errorf("TotalRisk = %v, want 0.2", p.TotalRisk)
	}
	if len(p.Segments) != 2 {
		t.Errorf("segments = %d, want 2", len(p.Segments))
	}

	if _, err := BuildPath(snap, cost, []string{"a", "b"}); !errors.Is(err, ErrUnreachable) {
		t.Errorf("disconnected pair error = %v, want ErrUnreachable", err)
	}
	if _, err := BuildPath(snap, cost, []string{"s"}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("single node error = %v, want ErrEmptyPath", err)
	}
	if _, err := BuildPath(snap, cost, []string{"s", "b", "s"}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("repeated node error = %v, want ErrEmptyPath", err)
	}
}
