// Package geo provides the coordinate primitives shared by the risk graph
// and the threat-zone geometry: planar points with Euclidean distance, and
// geographic points with haversine distance and point-to-segment distance
// via a local equirectangular projection.
package geo

import (
	"math"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// kmPerDegreeLat is the approximate north-south extent of one degree of latitude.
const kmPerDegreeLat = 111.0

// Point is a position in a planar coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineKm returns the great-circle distance between two coordinates in km.
func HaversineKm(a, b LatLng) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dlat := radians(b.Lat - a.Lat)
	dlng := radians(b.Lng - a.Lng)

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// DistanceToSegmentKm returns the minimum distance in km from point p to the
// segment ab. Coordinates are projected onto a local plane around the segment
// midpoint (equirectangular approximation, valid for short segments), the
// projection parameter is clamped to [0,1] so the closest point stays on the
// segment rather than the infinite line.
func DistanceToSegmentKm(p, a, b LatLng) float64 {
	latCenter := (a.Lat + b.Lat) / 2
	scaleLng := kmPerDegreeLat * math.Cos(radians(latCenter))

	x1, y1 := a.Lng*scaleLng, a.Lat*kmPerDegreeLat
	x2, y2 := b.Lng*scaleLng, b.Lat*kmPerDegreeLat
	px, py := p.Lng*scaleLng, p.Lat*kmPerDegreeLat

	dx := x2 - x1
	dy := y2 - y1

	// Degenerate segment: distance to the single endpoint.
	if dx == 0 && dy == 0 {
		return math.Hypot(px-x1, py-y1)
	}

	t := ((px-x1)*dx + (py-y1)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))

	cx := x1 + t*dx
	cy := y1 + t*dy
	return math.Hypot(px-cx, py-cy)
}

// BoundingBox is an axis-aligned lat/lng rectangle.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// SegmentBounds returns the bounding box of segment ab.
func SegmentBounds(a, b LatLng) BoundingBox {
	return BoundingBox{
		MinLat: math.Min(a.Lat, b.Lat),
		MaxLat: math.Max(a.Lat, b.Lat),
		MinLng: math.Min(a.Lng, b.Lng),
		MaxLng: math.Max(a.Lng, b.Lng),
	}
}

// CircleBounds returns the bounding box of a circle centered at c with the
// given radius in km. Longitude extent widens with latitude.
func CircleBounds(c LatLng, radiusKm float64) BoundingBox {
	dLat := radiusKm / kmPerDegreeLat
	cosLat := math.Cos(radians(c.Lat))
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	dLng := radiusKm / (kmPerDegreeLat * cosLat)
	return BoundingBox{
		MinLat: c.Lat - dLat,
		MaxLat: c.Lat + dLat,
		MinLng: c.Lng - dLng,
		MaxLng: c.Lng + dLng,
	}
}

// Overlaps reports whether two bounding boxes intersect.
func (bb BoundingBox) Overlaps(other BoundingBox) bool {
	if bb.MaxLat < other.MinLat || bb.MinLat > other.MaxLat {
		return false
	}
	if bb.MaxLng < other.MinLng || bb.MinLng > other.MaxLng {
		return false
	}
	return true
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
