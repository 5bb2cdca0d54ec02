package validation

import (
	"strings"
	"testing"
)

func TestValidateRouteRequest(t *testing.T) {
	valid := &RouteRequest{From: "zone-a", To: "zone-b", K: 3}
	if err := ValidateRouteRequest(valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  *RouteRequest
		want string
	}{
		{"nil", nil, "nil"},
		{"missing from", &RouteRequest{To: "b"}, "From"},
		{"missing to", &RouteRequest{From: "a"}, "To"},
		{"bad characters", &RouteRequest{From: "a b", To: "c"}, "invalid characters"},
		{"too many alternatives", &RouteRequest{From: "a", To: "b", K: MaxAlternatives + 1}, "alternatives"},
		{"oversized id", &RouteRequest{From: strings.Repeat("x", 129), To: "b"}, "From"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateRouteRequest(c.req)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q should mention %q", err, c.want)
			}
		})
	}
}

func TestValidateIncidentRequest(t *testing.T) {
	valid := &IncidentRequest{IncidentID: "inc-1", Latitude: 45, Longitude: 90, ThreatLevel: "HIGH"}
	if err := ValidateIncidentRequest(valid); err != nil {
		t.Errorf("valid incident rejected: %v", err)
	}

	if err := ValidateIncidentRequest(&IncidentRequest{Latitude: 0, Longitude: 0, ThreatLevel: "LOW"}); err == nil {
		t.Error("missing incident id should be rejected")
	}
	if err := ValidateIncidentRequest(&IncidentRequest{IncidentID: "x", Latitude: 91, ThreatLevel: "LOW"}); err == nil {
		t.Error("out-of-range latitude should be rejected")
	}
	if err := ValidateIncidentRequest(&IncidentRequest{IncidentID: "x", Longitude: -181, ThreatLevel: "LOW"}); err == nil {
		t.Error("out-of-range longitude should be rejected")
	}
	if err := ValidateIncidentRequest(&IncidentRequest{IncidentID: "x", Latitude: 1, Longitude: 1}); err == nil {
		t.Error("missing threat level should be rejected")
	}
}

func TestValidatePolylineRequest(t *testing.T) {
	valid := &PolylineRequest{Coordinates: [][2]float64{{0, 0}, {1, 1}}}
	if err := ValidatePolylineRequest(valid); err != nil {
		t.Errorf("valid polyline rejected: %v", err)
	}

	if err := ValidatePolylineRequest(&PolylineRequest{Coordinates: [][2]float64{{0, 0}}}); err == nil {
		t.Error("single-point polyline should be rejected")
	}
	if err := ValidatePolylineRequest(&PolylineRequest{Coordinates: [][2]float64{{95, 0}, {0, 0}}}); err == nil {
		t.Error("latitude outside [-90, 90] should be rejected")
	}
	if err := ValidatePolylineRequest(&PolylineRequest{Coordinates: [][2]float64{{0, 200}, {0, 0}}}); err == nil {
		t.Error("longitude outside [-180, 180] should be rejected")
	}
}

func TestValidateRankRequest(t *testing.T) {
	valid := &RankRequest{Routes: [][][2]float64{{{0, 0}, {1, 1}}}}
	if err := ValidateRankRequest(valid); err != nil {
		t.Errorf("valid rank request rejected: %v", err)
	}

	if err := ValidateRankRequest(&RankRequest{}); err == nil {
		t.Error("empty candidate list should be rejected")
	}

	bad := &RankRequest{Routes: [][][2]float64{{{0, 0}, {1, 1}}, {{0, 0}}}}
	err := ValidateRankRequest(bad)
	if err == nil {
		t.Fatal("a short candidate polyline should be rejected")
	}
	if !strings.Contains(err.Error(), "candidate 1") {
		t.Errorf("error %q should name the offending candidate", err)
	}
}

func TestValidateInterpolateRequest(t *testing.T) {
	if err := ValidateInterpolateRequest(&InterpolateRequest{X: 1, Y: 2, K: 5}); err != nil {
		t.Errorf("valid interpolate request rejected: %v", err)
	}
	if err := ValidateInterpolateRequest(&InterpolateRequest{K: -1}); err == nil {
		t.Error("negative k should be rejected")
	}
}
