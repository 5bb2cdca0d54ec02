package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/safesphere/saferoute/pkg/geo"
	"github.com/safesphere/saferoute/pkg/graph"
	"github.com/safesphere/saferoute/pkg/validation"
)

// handleSnapshot loads a new risk graph (POST) or exports the current one
// (GET). Compressed payloads use Content-Type application/octet-stream.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleSnapshotLoad(w, r)
	case http.MethodGet:
		s.handleSnapshotExport(w, r)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleSnapshotLoad(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var stats graph.Stats
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/octet-stream") {
		stats, err = s.engine.ImportSnapshotCompressed(data)
	} else {
		stats, err = s.engine.ImportSnapshotJSON(data)
	}
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, SnapshotLoadResponse{Loaded: true, Stats: stats})
}

func (s *Server) handleSnapshotExport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "compressed" {
		data, err := s.engine.ExportSnapshotCompressed()
		if err != nil {
			s.respondEngineError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	data, err := s.engine.ExportSnapshotJSON()
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.respondJSON(w, http.StatusOK, StatsResponse{
		Graph: s.engine.Stats(),
		Zones: s.engine.ZoneStats(),
	})
}

func (s *Server) handleRiskDistribution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.respondJSON(w, http.StatusOK, s.engine.RiskDistribution())
}

func (s *Server) handleInterpolate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.InterpolateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateInterpolateRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	risk, err := s.engine.InterpolateRisk(geo.Point{X: req.X, Y: req.Y}, req.K)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, InterpolateResponse{
		Risk: risk,
		Band: graph.BandFor(risk).String(),
	})
}
