package graph

import (
	"time"

	"github.com/safesphere/saferoute/pkg/geo"
)

// NodeType classifies a node in the zone network.
type NodeType uint8

const (
	NodeZone NodeType = iota
	NodeEntrance
	NodeShelter
	NodePOI
)

// String returns the wire representation of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeZone:
		return "zone"
	case NodeEntrance:
		return "entrance"
	case NodeShelter:
		return "shelter"
	case NodePOI:
		return "poi"
	default:
		return "zone"
	}
}

// ParseNodeType converts a wire string to a NodeType. Unknown strings map to
// NodeZone, matching the permissive ingest behavior for snapshot payloads.
func ParseNodeType(s string) NodeType {
	switch s {
	case "entrance":
		return NodeEntrance
	case "shelter":
		return NodeShelter
	case "poi":
		return NodePOI
	default:
		return NodeZone
	}
}

// Node is a geographic zone or location with a risk score in [0,1].
type Node struct {
	ID       string
	Position geo.Point
	Risk     float64
	Name     string
	Type     NodeType
	Metadata map[string]string
}

// Edge is a traversable segment between two nodes. Risk is in [0,1] and
// Distance is non-negative.
type Edge struct {
	ID       string
	From     string
	To       string
	Distance float64
	Risk     float64
	Metadata map[string]string
}

// Neighbor describes one outgoing connection from a node.
type Neighbor struct {
	ID       string
	EdgeID   string
	EdgeRisk float64
	Distance float64
}

// Snapshot is an immutable view of the zone network at a point in time.
// It is built once by NewSnapshot and never mutated afterwards; replacing
// the active graph means publishing a new Snapshot.
type Snapshot struct {
	nodes     map[string]*Node
	edges     map[string]*Edge
	adjacency map[string][]Neighbor
	directed  bool
	updatedAt time.Time
}

// NodeCount returns the number of nodes in the snapshot.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges in the snapshot.
func (s *Snapshot) EdgeCount() int { return len(s.edges) }

// Directed reports whether edges are one-way.
func (s *Snapshot) Directed() bool { return s.directed }

// UpdatedAt returns the snapshot timestamp supplied at load time.
func (s *Snapshot) UpdatedAt() time.Time { return s.updatedAt }

// RiskComparator selects nodes relative to a risk threshold.
type RiskComparator uint8

const (
	// RiskBelow matches nodes with risk strictly below the threshold (safe zones).
	RiskBelow RiskComparator = iota
	// RiskAtOrAbove matches nodes with risk at or above the threshold (danger zones).
	RiskAtOrAbove
)

// Stats summarizes the risk profile of a snapshot.
type Stats struct {
	NodeCount   int       `json:"node_count"`
	EdgeCount   int       `json:"edge_count"`
	Directed    bool      `json:"directed"`
	AvgNodeRisk float64   `json:"avg_node_risk"`
	MaxNodeRisk float64   `json:"max_node_risk"`
	MinNodeRisk float64   `json:"min_node_risk"`
	AvgEdgeRisk float64   `json:"avg_edge_risk"`
	SafeZones   int       `json:"safe_zones"`
	DangerZones int       `json:"danger_zones"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RiskBand is a discretized risk range used for reporting.
type RiskBand uint8

const (
	BandSafe RiskBand = iota
	BandLow
	BandMedium
	BandHigh
	BandCritical
)

// String returns the reporting label for the band.
func (b RiskBand) String() string {
	switch b {
	case BandSafe:
		return "safe"
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	case BandHigh:
		return "high"
	case BandCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// BandFor buckets a risk score into its band. Boundaries at 0.2/0.4/0.6/0.8.
func BandFor(risk float64) RiskBand {
	switch {
	case risk < 0.2:
		return BandSafe
	case risk < 0.4:
		return BandLow
	case risk < 0.6:
		return BandMedium
	case risk < 0.8:
		return BandHigh
	default:
		return BandCritical
	}
}
