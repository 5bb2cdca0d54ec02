package graph

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
)

// Export reconstructs the wire-form payload for this snapshot. Exporting and
// re-importing yields identical node/edge sets and risk values.
func (s *Snapshot) Export() SnapshotInput {
	out := SnapshotInput{
		Nodes:     make(map[string]NodeInput, len(s.nodes)),
		Edges:     make(map[string]EdgeInput, len(s.edges)),
		Directed:  s.directed,
		UpdatedAt: s.updatedAt,
	}
	for id, n := range s.nodes {
		out.Nodes[id] = NodeInput{
			Position: n.Position,
			Risk:     n.Risk,
			Name:     n.Name,
			Type:     n.Type.String(),
			Metadata: n.Metadata,
		}
	}
	for id, e := range s.edges {
		out.Edges[id] = EdgeInput{
			From:     e.From,
			To:       e.To,
			Distance: e.Distance,
			Risk:     e.Risk,
			Metadata: e.Metadata,
		}
	}
	return out
}

// ExportJSON serializes the snapshot to its JSON wire form.
func (s *Snapshot) ExportJSON() ([]byte, error) {
	data, err := json.Marshal(s.Export())
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	return data, nil
}

// ImportJSON validates and builds a snapshot from its JSON wire form.
func ImportJSON(data []byte) (*Snapshot, error) {
	var input SnapshotInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, &SnapshotError{Violations: []string{fmt.Sprintf("malformed JSON: %v", err)}}
	}
	return NewSnapshot(input)
}

// ExportCompressed serializes the snapshot to snappy-framed JSON, for feed
// transfer and archival of large graphs.
func (s *Snapshot) ExportCompressed() ([]byte, error) {
	raw, err := s.ExportJSON()
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

// ImportCompressed builds a snapshot from snappy-framed JSON.
func ImportCompressed(data []byte) (*Snapshot, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, &SnapshotError{Violations: []string{fmt.Sprintf("malformed snappy frame: %v", err)}}
	}
	return ImportJSON(raw)
}
