// Package validation validates configuration values and API request payloads.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxAlternatives  = 10
	MaxPolylinePoints = 10000
	MaxRankCandidates = 100

	nodeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)
)

func init() {
	validate = validator.New()
}

// RouteRequest asks for a safest path between two nodes.
type RouteRequest struct {
	From string `json:"from" validate:"required,min=1,max=128"`
	To   string `json:"to" validate:"required,min=1,max=128"`
	K    int    `json:"k" validate:"omitempty,min=1"`
}

// IncidentRequest reports an incident that spawns a threat zone.
type IncidentRequest struct {
	IncidentID  string  `json:"incident_id" validate:"required,min=1,max=128"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	ThreatLevel string  `json:"threat_level" validate:"required"`
	Timestamp   string  `json:"timestamp" validate:"omitempty"`
}

// PolylineRequest carries a coordinate sequence to validate.
type PolylineRequest struct {
	Coordinates [][2]float64 `json:"coordinates" validate:"required,min=2"`
}

// RankRequest carries candidate polylines to rank by safety.
type RankRequest struct {
	Routes [][][2]float64 `json:"routes" validate:"required,min=1"`
}

// InterpolateRequest asks for an interpolated risk at a position.
type InterpolateRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K int     `json:"k" validate:"omitempty,min=1"`
}

// ValidateRouteRequest validates a safest-path request.
func ValidateRouteRequest(req *RouteRequest) error {
	if req == nil {
		return errors.New("route request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if !nodeIDPattern.MatchString(req.From) {
		return fmt.Errorf("From: node id %q contains invalid characters", req.From)
	}
	if !nodeIDPattern.MatchString(req.To) {
		return fmt.Errorf("To: node id %q contains invalid characters", req.To)
	}
	if req.K > MaxAlternatives {
		return fmt.Errorf("K: maximum %d alternatives allowed, got %d", MaxAlternatives, req.K)
	}
	return nil
}

// ValidateIncidentRequest validates an incident report.
func ValidateIncidentRequest(req *IncidentRequest) error {
	if req == nil {
		return errors.New("incident request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidatePolylineRequest validates a coordinate sequence.
func ValidatePolylineRequest(req *PolylineRequest) error {
	if req == nil {
		return errors.New("polyline request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.Coordinates) > MaxPolylinePoints {
		return fmt.Errorf("Coordinates: maximum %d points allowed, got %d", MaxPolylinePoints, len(req.Coordinates))
	}
	for i, c := range req.Coordinates {
		if c[0] < -90 || c[0] > 90 {
			return fmt.Errorf("Coordinates: latitude %f at index %d is outside [-90, 90]", c[0], i)
		}
		if c[1] < -180 || c[1] > 180 {
			return fmt.Errorf("Coordinates: longitude %f at index %d is outside [-180, 180]", c[1], i)
		}
	}
	return nil
}

// ValidateRankRequest validates a set of candidate polylines.
func ValidateRankRequest(req *RankRequest) error {
	if req == nil {
		return errors.New("rank request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.Routes) > MaxRankCandidates {
		return fmt.Errorf("Routes: maximum %d candidates allowed, got %d", MaxRankCandidates, len(req.Routes))
	}
	for i, route := range req.Routes {
		if err := ValidatePolylineRequest(&PolylineRequest{Coordinates: route}); err != nil {
			return fmt.Errorf("Routes: candidate %d: %w", i, err)
		}
	}
	return nil
}

// ValidateInterpolateRequest validates an interpolation request.
func ValidateInterpolateRequest(req *InterpolateRequest) error {
	if req == nil {
		return errors.New("interpolate request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
