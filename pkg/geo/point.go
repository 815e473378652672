package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean earth radius used for great-circle distances.
const EarthRadiusMeters = 6371008.8

// Point is a geographic coordinate in WGS-84 degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceMeters returns the great-circle distance between two points in meters.
// The same metric is used for nearest-waypoint resolution and for seeding edge
// weights, so ordering is never mixed between the two.
func DistanceMeters(a, b Point) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lng)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return la.Distance(lb).Radians() * EarthRadiusMeters
}

// LngLat returns the point as a [lng, lat] pair, the order used in GeoJSON
// coordinates and in route responses.
func (p Point) LngLat() [2]float64 {
	return [2]float64{p.Lng, p.Lat}
}

// WKT renders the point in well-known text, POINT(lng lat).
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%g %g)", p.Lng, p.Lat)
}

// ParsePointWKT parses a POINT(lng lat) string as produced by ST_AsText.
func ParsePointWKT(s string) (Point, error) {
	trimmed := strings.TrimSpace(s)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "POINT") {
		return Point{}, fmt.Errorf("not a WKT point: %q", s)
	}
	open := strings.IndexByte(trimmed, '(')
	close := strings.IndexByte(trimmed, ')')
	if open < 0 || close < open {
		return Point{}, fmt.Errorf("malformed WKT point: %q", s)
	}
	parts := strings.Fields(trimmed[open+1 : close])
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("malformed WKT point: %q", s)
	}
	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad longitude in %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad latitude in %q: %w", s, err)
	}
	return Point{Lat: lat, Lng: lng}, nil
}
