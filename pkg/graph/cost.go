package graph

// CostMode selects how edge traversal cost is derived from risk and distance.
type CostMode uint8

const (
	// CostPureRisk ranks edges by risk alone: (edgeRisk + destNodeRisk) / 2.
	// This is the default safest-path mode; distance does not influence the
	// ranking and the accumulated cost equals the path's total risk.
	CostPureRisk CostMode = iota

	// CostDistanceWeighted penalizes distance by risk:
	// distance * (1 + penaltyFactor*edgeRisk). Callers wanting distance-aware
	// routing use this mode.
	CostDistanceWeighted
)

// String returns the wire representation of the cost mode.
func (m CostMode) String() string {
	if m == CostDistanceWeighted {
		return "distance_weighted"
	}
	return "pure_risk"
}

// ParseCostMode converts a wire string to a CostMode. Unknown strings map to
// CostPureRisk.
func ParseCostMode(s string) CostMode {
	if s == "distance_weighted" {
		return CostDistanceWeighted
	}
	return CostPureRisk
}

// DefaultRiskPenaltyFactor controls how strongly risk inflates edge cost in
// distance-weighted mode. At 50.0, a fully risky edge costs 51x its distance.
const DefaultRiskPenaltyFactor = 50.0

// CostModel is an immutable edge-cost configuration. Deriving a model with a
// different penalty factor produces a new value; costs are always recomputed
// from it, never cached and mutated.
type CostModel struct {
	Mode          CostMode
	PenaltyFactor float64
}

// DefaultCostModel returns the pure-risk model.
func DefaultCostModel() CostModel {
	return CostModel{Mode: CostPureRisk, PenaltyFactor: DefaultRiskPenaltyFactor}
}

// WithPenaltyFactor returns a copy of the model with the given penalty factor.
func (m CostModel) WithPenaltyFactor(factor float64) CostModel {
	m.PenaltyFactor = factor
	return m
}

// EdgeCost computes the traversal cost of the edge from->to under this model.
// For a fixed distance the cost is monotonically non-decreasing in risk in
// both modes. Returns ErrEdgeNotFound if the nodes are not connected.
func (m CostModel) EdgeCost(s *Snapshot, from, to string) (float64, error) {
	neighbors, err := s.Neighbors(from)
	if err != nil {
		return 0, err
	}
	for _, nb := range neighbors {
		if nb.ID != to {
			continue
		}
		switch m.Mode {
		case CostDistanceWeighted:
			return nb.Distance * (1 + m.PenaltyFactor*nb.EdgeRisk), nil
		default:
			destRisk, err := s.NodeRisk(to)
			if err != nil {
				return 0, err
			}
			return (nb.EdgeRisk + destRisk) / 2, nil
		}
	}
	return 0, edgeNotFound("EdgeCost", from+"->"+to)
}

// NeighborCost computes the cost of traversing to an already-resolved
// neighbor, avoiding a second adjacency scan inside search loops.
func (m CostModel) NeighborCost(s *Snapshot, nb Neighbor) float64 {
	switch m.Mode {
	case CostDistanceWeighted:
		return nb.Distance * (1 + m.PenaltyFactor*nb.EdgeRisk)
	default:
		destRisk := 0.0
		if n, ok := s.nodes[nb.ID]; ok {
			destRisk = n.Risk
		}
		return (nb.EdgeRisk + destRisk) / 2
	}
}

// SegmentRisk is the risk term a traversal contributes to a path's total
// risk, independent of cost mode: (edgeRisk + destNodeRisk) / 2.
func SegmentRisk(s *Snapshot, nb Neighbor) float64 {
	destRisk := 0.0
	if n, ok := s.nodes[nb.ID]; ok {
		destRisk = n.Risk
	}
	return (nb.EdgeRisk + destRisk) / 2
}
