package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/safesphere/saferoute/pkg/validation"
	"github.com/safesphere/saferoute/pkg/zones"
)

// handleIncidents accepts incident reports and materializes threat zones.
func (s *Server) handleIncidents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.IncidentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateIncidentRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Timestamp: must be RFC3339")
			return
		}
		ts = parsed
	}

	zone, err := s.engine.ApplyIncident(zones.Incident{
		ID:          req.IncidentID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ThreatLevel: req.ThreatLevel,
		Timestamp:   ts,
	})
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, IncidentResponse{Zone: zone})
}

// handleZones lists the active threat zones.
func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	zs := s.engine.Zones()
	s.respondJSON(w, http.StatusOK, ZonesResponse{Zones: zs, Count: len(zs)})
}

// handleZone removes a threat zone by id: DELETE /api/v1/zones/{id}.
func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/zones/"), "/")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "Zone id required")
		return
	}

	if !s.engine.RemoveZone(id) {
		s.respondError(w, http.StatusNotFound, "Zone not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
