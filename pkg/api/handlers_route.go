package api

import (
	"net/http"

	"github.com/safesphere/saferoute/pkg/geo"
	"github.com/safesphere/saferoute/pkg/route"
	"github.com/safesphere/saferoute/pkg/validation"
)

func (s *Server) handleSafestPath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.RouteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateRouteRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.engine.SafestPath(r.Context(), req.From, req.To)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	analysis, err := route.AnalyzeRoute(p)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, PathResponse{Path: p, Analysis: analysis})
}

func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.RouteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateRouteRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	k := req.K
	if k <= 0 {
		k = 3
	}

	paths, err := s.engine.Alternatives(r.Context(), req.From, req.To, k)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, AlternativesResponse{Paths: paths, Count: len(paths)})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.PolylineRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidatePolylineRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cand := s.engine.ValidatePolyline(toLatLngs(req.Coordinates))
	s.respondJSON(w, http.StatusOK, cand)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req validation.RankRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateRankRequest(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	candidates := make([][]geo.LatLng, len(req.Routes))
	for i, coords := range req.Routes {
		candidates[i] = toLatLngs(coords)
	}

	s.respondJSON(w, http.StatusOK, s.engine.RankPolylines(candidates))
}

func toLatLngs(coords [][2]float64) []geo.LatLng {
	out := make([]geo.LatLng, len(coords))
	for i, c := range coords {
		out[i] = geo.LatLng{Lat: c[0], Lng: c[1]}
	}
	return out
}
