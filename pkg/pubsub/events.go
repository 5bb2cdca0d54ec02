package pubsub

import "time"

// Topics published by the engine.
const (
	TopicSnapshotUpdated = "snapshot.updated"
	TopicZoneAdded       = "zone.added"
	TopicZoneRemoved     = "zone.removed"
	TopicZonesExpired    = "zones.expired"
)

// SnapshotEvent is published when the active risk graph is replaced.
type SnapshotEvent struct {
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ZoneEvent is published when a threat zone is added or removed.
type ZoneEvent struct {
	ZoneID   string  `json:"zone_id"`
	Severity string  `json:"severity,omitempty"`
	RadiusKm float64 `json:"radius_km,omitempty"`
}

// ExpiryEvent is published after a zone expiry sweep.
type ExpiryEvent struct {
	ZoneIDs []string  `json:"zone_ids"`
	Cutoff  time.Time `json:"cutoff"`
}
