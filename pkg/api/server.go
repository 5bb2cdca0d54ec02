// Package api exposes the route engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/safesphere/saferoute/pkg/engine"
	"github.com/safesphere/saferoute/pkg/graph"
	"github.com/safesphere/saferoute/pkg/logging"
	"github.com/safesphere/saferoute/pkg/metrics"
	"github.com/safesphere/saferoute/pkg/route"
)

const maxBodyBytes = 16 << 20

// Server represents the HTTP API server.
type Server struct {
	engine    *engine.Engine
	logger    logging.Logger
	metrics   *metrics.Registry
	startTime time.Time
	version   string
}

// NewServer creates a new API server around the engine.
func NewServer(eng *engine.Engine, logger logging.Logger, reg *metrics.Registry, version string) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		engine:    eng,
		logger:    logger.With(logging.Component("api")),
		metrics:   reg,
		startTime: time.Now(),
		version:   version,
	}
}

// Handler builds the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	mux.HandleFunc("/api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/risk/distribution", s.handleRiskDistribution)
	mux.HandleFunc("/api/v1/risk/interpolate", s.handleInterpolate)

	mux.HandleFunc("/api/v1/route/safest", s.handleSafestPath)
	mux.HandleFunc("/api/v1/route/alternatives", s.handleAlternatives)
	mux.HandleFunc("/api/v1/route/validate", s.handleValidate)
	mux.HandleFunc("/api/v1/route/rank", s.handleRank)

	mux.HandleFunc("/api/v1/incidents", s.handleIncidents)
	mux.HandleFunc("/api/v1/zones", s.handleZones)
	mux.HandleFunc("/api/v1/zones/", s.handleZone)

	var h http.Handler = mux
	h = s.bodySizeLimitMiddleware(h, maxBodyBytes)
	h = s.metricsMiddleware(h)
	h = s.loggingMiddleware(h)
	h = s.corsMiddleware(h)
	h = s.panicRecoveryMiddleware(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().UTC(),
	})
}

// Helper methods

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding response failed", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondEngineError maps domain errors onto HTTP status codes.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	var snapErr *graph.SnapshotError
	switch {
	case errors.As(err, &snapErr):
		s.respondError(w, http.StatusBadRequest, snapErr.Error())
	case graph.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, graph.ErrNoData):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, route.ErrUnreachable):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, route.ErrAllUnsafe):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, route.ErrIterationLimit):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, route.ErrInvalidSpeed), errors.Is(err, route.ErrEmptyPath):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
