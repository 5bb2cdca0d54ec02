// Package graph implements the risk graph: an immutable, atomically-published
// snapshot of zone nodes and connecting edges, each carrying a risk score in
// [0,1], plus the cost functions and risk queries the route engine runs on it.
package graph

import (
	"fmt"
	"sort"
	"time"

	"github.com/safesphere/saferoute/pkg/geo"
)

// NodeInput is the wire form of a node in a snapshot payload.
type NodeInput struct {
	Position geo.Point         `json:"position"`
	Risk     float64           `json:"risk"`
	Name     string            `json:"name,omitempty"`
	Type     string            `json:"type,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EdgeInput is the wire form of an edge in a snapshot payload.
type EdgeInput struct {
	From     string            `json:"from_node"`
	To       string            `json:"to_node"`
	Distance float64           `json:"distance,omitempty"`
	Risk     float64           `json:"risk"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SnapshotInput is the full-replace payload handed to the engine by the
// external ingestion process.
type SnapshotInput struct {
	Nodes     map[string]NodeInput `json:"nodes"`
	Edges     map[string]EdgeInput `json:"edges"`
	Directed  bool                 `json:"directed,omitempty"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewSnapshot validates and builds an immutable snapshot from a payload.
// Validation is all-or-nothing: every violation is collected and returned in
// a single SnapshotError, and nothing is partially loaded. Risk scores are
// clamped to [0,1]; an edge with no distance inherits the Euclidean distance
// between its endpoints.
func NewSnapshot(input SnapshotInput) (*Snapshot, error) {
	var violations []string

	nodes := make(map[string]*Node, len(input.Nodes))
	for id, in := range input.Nodes {
		if id == "" {
			violations = append(violations, "node with empty id")
			continue
		}
		nodes[id] = &Node{
			ID:       id,
			Position: in.Position,
			Risk:     clampRisk(in.Risk),
			Name:     in.Name,
			Type:     ParseNodeType(in.Type),
			Metadata: in.Metadata,
		}
	}

	edges := make(map[string]*Edge, len(input.Edges))
	for id, in := range input.Edges {
		if id == "" {
			violations = append(violations, "edge with empty id")
			continue
		}
		from, fromOK := nodes[in.From]
		to, toOK := nodes[in.To]
		if !fromOK {
			violations = append(violations, fmt.Sprintf("edge %q references unknown from_node %q", id, in.From))
		}
		if !toOK {
			violations = append(violations, fmt.Sprintf("edge %q references unknown to_node %q", id, in.To))
		}
		if in.Distance < 0 {
			violations = append(violations, fmt.Sprintf("edge %q has negative distance %v", id, in.Distance))
		}
		if !fromOK || !toOK || in.Distance < 0 {
			continue
		}
		distance := in.Distance
		if distance == 0 {
			distance = from.Position.DistanceTo(to.Position)
		}
		edges[id] = &Edge{
			ID:       id,
			From:     in.From,
			To:       in.To,
			Distance: distance,
			Risk:     clampRisk(in.Risk),
			Metadata: in.Metadata,
		}
	}

	if len(violations) > 0 {
		return nil, &SnapshotError{Violations: violations}
	}

	s := &Snapshot{
		nodes:     nodes,
		edges:     edges,
		adjacency: make(map[string][]Neighbor, len(nodes)),
		directed:  input.Directed,
		updatedAt: input.UpdatedAt,
	}
	s.buildAdjacency()
	return s, nil
}

// buildAdjacency constructs the id->neighbor-list map. Undirected edges are
// registered under both endpoints so they are queryable from either side.
// Neighbor lists are sorted by id for deterministic iteration.
func (s *Snapshot) buildAdjacency() {
	for _, e := range s.edges {
		s.adjacency[e.From] = append(s.adjacency[e.From], Neighbor{
			ID: e.To, EdgeID: e.ID, EdgeRisk: e.Risk, Distance: e.Distance,
		})
		if !s.directed {
			s.adjacency[e.To] = append(s.adjacency[e.To], Neighbor{
				ID: e.From, EdgeID: e.ID, EdgeRisk: e.Risk, Distance: e.Distance,
			})
		}
	}
	for id := range s.adjacency {
		list := s.adjacency[id]
		sort.Slice(list, func(i, j int) bool {
			if list[i].ID != list[j].ID {
				return list[i].ID < list[j].ID
			}
			return list[i].EdgeID < list[j].EdgeID
		})
	}
}

// Node returns the node with the given id.
func (s *Snapshot) Node(id string) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, nodeNotFound("Node", id)
	}
	return n, nil
}

// Edge returns the edge with the given id.
func (s *Snapshot) Edge(id string) (*Edge, error) {
	e, ok := s.edges[id]
	if !ok {
		return nil, edgeNotFound("Edge", id)
	}
	return e, nil
}

// NodeRisk returns the risk score of a node.
func (s *Snapshot) NodeRisk(id string) (float64, error) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, nodeNotFound("NodeRisk", id)
	}
	return n.Risk, nil
}

// EdgeRisk returns the risk score of an edge.
func (s *Snapshot) EdgeRisk(id string) (float64, error) {
	e, ok := s.edges[id]
	if !ok {
		return 0, edgeNotFound("EdgeRisk", id)
	}
	return e.Risk, nil
}

// HasNode reports whether a node exists.
func (s *Snapshot) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Neighbors returns the outgoing connections of a node. The returned slice
// is shared with the snapshot and must not be modified.
func (s *Snapshot) Neighbors(id string) ([]Neighbor, error) {
	if _, ok := s.nodes[id]; !ok {
		return nil, nodeNotFound("Neighbors", id)
	}
	return s.adjacency[id], nil
}

// NodeIDs returns all node ids in sorted order.
func (s *Snapshot) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EdgeIDs returns all edge ids in sorted order.
func (s *Snapshot) EdgeIDs() []string {
	ids := make([]string, 0, len(s.edges))
	for id := range s.edges {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NodesByRiskBand returns the ids of nodes whose risk satisfies the
// comparison against the threshold, sorted by id. RiskBelow answers
// "safe zones" queries, RiskAtOrAbove answers "danger zones".
func (s *Snapshot) NodesByRiskBand(threshold float64, cmp RiskComparator) []string {
	var ids []string
	for id, n := range s.nodes {
		switch cmp {
		case RiskBelow:
			if n.Risk < threshold {
				ids = append(ids, id)
			}
		case RiskAtOrAbove:
			if n.Risk >= threshold {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// Stats computes the snapshot's risk summary.
func (s *Snapshot) Stats() Stats {
	st := Stats{
		NodeCount: len(s.nodes),
		EdgeCount: len(s.edges),
		Directed:  s.directed,
		UpdatedAt: s.updatedAt,
	}
	if len(s.nodes) == 0 {
		return st
	}

	st.MinNodeRisk = 1.0
	var nodeSum float64
	for _, n := range s.nodes {
		nodeSum += n.Risk
		if n.Risk > st.MaxNodeRisk {
			st.MaxNodeRisk = n.Risk
		}
		if n.Risk < st.MinNodeRisk {
			st.MinNodeRisk = n.Risk
		}
		if n.Risk < DefaultSafeThreshold {
			st.SafeZones++
		}
		if n.Risk >= DefaultDangerThreshold {
			st.DangerZones++
		}
	}
	st.AvgNodeRisk = nodeSum / float64(len(s.nodes))

	if len(s.edges) > 0 {
		var edgeSum float64
		for _, e := range s.edges {
			edgeSum += e.Risk
		}
		st.AvgEdgeRisk = edgeSum / float64(len(s.edges))
	}
	return st
}

// RiskDistribution counts nodes per risk band.
func (s *Snapshot) RiskDistribution() map[string]int {
	dist := map[string]int{
		BandSafe.String():     0,
		BandLow.String():      0,
		BandMedium.String():   0,
		BandHigh.String():     0,
		BandCritical.String(): 0,
	}
	for _, n := range s.nodes {
		dist[BandFor(n.Risk).String()]++
	}
	return dist
}

// Default thresholds for safe-zone and danger-zone queries.
const (
	DefaultSafeThreshold   = 0.3
	DefaultDangerThreshold = 0.7
)

func clampRisk(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
