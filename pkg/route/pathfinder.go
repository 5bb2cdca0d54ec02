// Package route implements the search and safety layers over a risk-graph
// snapshot: safest-path and k-alternative Dijkstra search, constrained
// reachability, travel-time estimation, route analysis, and the hard-safety
// validation of external polylines against threat zones.
package route

import (
	"container/heap"
	"context"
	"sort"
	"strings"

	"github.com/safesphere/saferoute/pkg/graph"
)

// DefaultMaxIterations bounds a single Dijkstra run. Exceeding it aborts the
// search with ErrIterationLimit instead of hanging on a malformed graph.
const DefaultMaxIterations = 100000

// deadlineCheckInterval controls how often the search loop polls the context.
const deadlineCheckInterval = 64

// PathFinder runs searches over one immutable snapshot. It holds no mutable
// state; concurrent calls against the same snapshot are safe.
type PathFinder struct {
	snap    *graph.Snapshot
	cost    graph.CostModel
	maxIter int
}

// NewPathFinder creates a path finder over the given snapshot and cost model.
func NewPathFinder(snap *graph.Snapshot, cost graph.CostModel) *PathFinder {
	return &PathFinder{snap: snap, cost: cost, maxIter: DefaultMaxIterations}
}

// SetMaxIterations overrides the per-search iteration budget.
func (pf *PathFinder) SetMaxIterations(n int) {
	if n > 0 {
		pf.maxIter = n
	}
}

// searchEntry is a frontier state in the priority queue. The full node
// sequence rides along so ties break deterministically and the path needs no
// reconstruction pass.
type searchEntry struct {
	cost     float64
	risk     float64
	distance float64
	nodes    []string
	segments []Segment
	key      string
}

type searchQueue []*searchEntry

func (q searchQueue) Len() int { return len(q) }

// Less orders by cost, then fewer hops, then lexicographically smaller
// node-id sequence, so equal-cost searches are deterministic.
func (q searchQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	if len(q[i].nodes) != len(q[j].nodes) {
		return len(q[i].nodes) < len(q[j].nodes)
	}
	return q[i].key < q[j].key
}

func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x any) { *q = append(*q, x.(*searchEntry)) }

func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

func pathKey(nodes []string) string {
	return strings.Join(nodes, "\x1f")
}

// SafestPath finds the minimum-cost path from start to end under the
// configured cost model. Returns ErrUnreachable when the endpoints are in
// different connected components, and ErrIterationLimit when the search
// exceeds its budget. A context deadline expiring mid-search also yields
// ErrUnreachable: no partial path is a usable result.
func (pf *PathFinder) SafestPath(ctx context.Context, start, end string) (Path, error) {
	return pf.safestPath(ctx, start, end, nil)
}

func (pf *PathFinder) safestPath(ctx context.Context, start, end string, blocked map[string]bool) (Path, error) {
	if _, err := pf.snap.Node(start); err != nil {
		return Path{}, err
	}
	if _, err := pf.snap.Node(end); err != nil {
		return Path{}, err
	}
	if start == end {
		return Path{Nodes: []string{start}}, nil
	}

	q := &searchQueue{{nodes: []string{start}, key: start}}
	heap.Init(q)
	visited := make(map[string]bool)
	iterations := 0

	for q.Len() > 0 {
		iterations++
		if iterations > pf.maxIter {
			return Path{}, ErrIterationLimit
		}
		if iterations%deadlineCheckInterval == 0 && ctx.Err() != nil {
			return Path{}, ErrUnreachable
		}

		cur := heap.Pop(q).(*searchEntry)
		at := cur.nodes[len(cur.nodes)-1]
		if visited[at] {
			continue
		}
		visited[at] = true

		if at == end {
			return Path{
				Nodes:         cur.nodes,
				Segments:      cur.segments,
				TotalRisk:     cur.risk,
				TotalCost:     cur.cost,
				TotalDistance: cur.distance,
			}, nil
		}

		neighbors, err := pf.snap.Neighbors(at)
		if err != nil {
			continue
		}
		for _, nb := range neighbors {
			if visited[nb.ID] || blocked[nb.EdgeID] {
				continue
			}
			// Keep paths loop-free even before a node is settled.
			if containsNode(cur.nodes, nb.ID) {
				continue
			}
			nodes := append(append([]string{}, cur.nodes...), nb.ID)
			seg := Segment{
				From:     at,
				To:       nb.ID,
				EdgeID:   nb.EdgeID,
				Risk:     graph.SegmentRisk(pf.snap, nb),
				Distance: nb.Distance,
			}
			heap.Push(q, &searchEntry{
				cost:     cur.cost + pf.cost.NeighborCost(pf.snap, nb),
				risk:     cur.risk + seg.Risk,
				distance: cur.distance + nb.Distance,
				nodes:    nodes,
				segments: append(append([]Segment{}, cur.segments...), seg),
				key:      pathKey(nodes),
			})
		}
	}
	return Path{}, ErrUnreachable
}

func containsNode(nodes []string, id string) bool {
	for _, n := range nodes {
		if n == id {
			return true
		}
	}
	return false
}

// KSafestPaths finds up to k distinct paths by repeatedly removing the edges
// of the best path found and re-running the search. Fewer than k paths is
// not an error: the supply may be exhausted, or the context deadline may
// expire, in which case the paths found so far are returned as a best-effort
// partial result. Results are sorted ascending by total risk.
func (pf *PathFinder) KSafestPaths(ctx context.Context, start, end string, k int) ([]Path, error) {
	if k <= 0 {
		k = 1
	}
	blocked := make(map[string]bool)
	seen := make(map[string]bool)
	var paths []Path

	for len(paths) < k {
		if ctx.Err() != nil {
			break
		}
		p, err := pf.safestPath(ctx, start, end, blocked)
		if err != nil {
			if len(paths) == 0 && !isSearchExhausted(err) {
				return nil, err
			}
			break
		}
		key := pathKey(p.Nodes)
		if seen[key] {
			break
		}
		seen[key] = true
		paths = append(paths, p)
		for _, seg := range p.Segments {
			blocked[seg.EdgeID] = true
		}
	}

	if len(paths) == 0 {
		return nil, ErrUnreachable
	}
	sort.SliceStable(paths, func(i, j int) bool {
		if paths[i].TotalRisk != paths[j].TotalRisk {
			return paths[i].TotalRisk < paths[j].TotalRisk
		}
		return paths[i].Hops() < paths[j].Hops()
	})
	return paths, nil
}

// isSearchExhausted reports whether the error means "no further path", which
// ends alternative enumeration without failing the call.
func isSearchExhausted(err error) bool {
	return err == ErrUnreachable || err == ErrIterationLimit
}

// IsReachable reports whether end can be reached from start using only edges
// with risk at or below maxRisk.
func (pf *PathFinder) IsReachable(start, end string, maxRisk float64) (bool, error) {
	reachable, err := pf.ReachableNodes(start, maxRisk, pf.snap.NodeCount())
	if err != nil {
		return false, err
	}
	if !pf.snap.HasNode(end) {
		return false, graph.ErrNodeNotFound
	}
	_, ok := reachable[end]
	return ok, nil
}

// ReachableNodes runs a constrained breadth-first traversal from start,
// expanding only edges with risk at or below maxRisk and stopping at maxHops.
// The result maps each reached node to its accumulated segment risk and hop
// count along the discovery path.
func (pf *PathFinder) ReachableNodes(start string, maxRisk float64, maxHops int) (map[string]ReachInfo, error) {
	if _, err := pf.snap.Node(start); err != nil {
		return nil, err
	}

	type frontier struct {
		id   string
		risk float64
		hops int
	}
	reached := map[string]ReachInfo{start: {}}
	queue := []frontier{{id: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hops >= maxHops {
			continue
		}
		neighbors, err := pf.snap.Neighbors(cur.id)
		if err != nil {
			continue
		}
		for _, nb := range neighbors {
			if nb.EdgeRisk > maxRisk {
				continue
			}
			if _, ok := reached[nb.ID]; ok {
				continue
			}
			risk := cur.risk + graph.SegmentRisk(pf.snap, nb)
			reached[nb.ID] = ReachInfo{Risk: risk, Hops: cur.hops + 1}
			queue = append(queue, frontier{id: nb.ID, risk: risk, hops: cur.hops + 1})
		}
	}
	return reached, nil
}

// Bottlenecks scans for nodes and edges with risk at or above the threshold,
// sorted by descending risk.
func (pf *PathFinder) Bottlenecks(threshold float64) []Bottleneck {
	var out []Bottleneck
	for _, id := range pf.snap.NodeIDs() {
		n, err := pf.snap.Node(id)
		if err != nil || n.Risk < threshold {
			continue
		}
		out = append(out, Bottleneck{Kind: BottleneckNode, ID: id, Risk: n.Risk, Name: n.Name})
	}
	for _, id := range pf.snap.EdgeIDs() {
		e, err := pf.snap.Edge(id)
		if err != nil || e.Risk < threshold {
			continue
		}
		out = append(out, Bottleneck{Kind: BottleneckEdge, ID: id, Risk: e.Risk, From: e.From, To: e.To})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Risk > out[j].Risk })
	return out
}

// BuildPath realizes a node-id sequence into a Path using the snapshot's
// edges, computing per-segment risk and distances. Consecutive nodes must be
// connected; repeated nodes are rejected to keep paths loop-free.
func BuildPath(snap *graph.Snapshot, cost graph.CostModel, nodes []string) (Path, error) {
	if len(nodes) < 2 {
		return Path{}, ErrEmptyPath
	}
	seen := make(map[string]bool, len(nodes))
	p := Path{Nodes: append([]string{}, nodes...)}
	for i := 0; i+1 < len(nodes); i++ {
		if seen[nodes[i]] {
			return Path{}, ErrEmptyPath
		}
		seen[nodes[i]] = true
		neighbors, err := snap.Neighbors(nodes[i])
		if err != nil {
			return Path{}, err
		}
		found := false
		for _, nb := range neighbors {
			if nb.ID != nodes[i+1] {
				continue
			}
			seg := Segment{
				From:     nodes[i],
				To:       nb.ID,
				EdgeID:   nb.EdgeID,
				Risk:     graph.SegmentRisk(snap, nb),
				Distance: nb.Distance,
			}
			p.Segments = append(p.Segments, seg)
			p.TotalRisk += seg.Risk
			p.TotalCost += cost.NeighborCost(snap, nb)
			p.TotalDistance += nb.Distance
			found = true
			break
		}
		if !found {
			return Path{}, ErrUnreachable
		}
	}
	if seen[nodes[len(nodes)-1]] {
		return Path{}, ErrEmptyPath
	}
	return p, nil
}
