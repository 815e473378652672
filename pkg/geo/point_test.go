package geo

import (
	"math"
	"testing"
)

func TestParsePointWKT(t *testing.T) {
	p, err := ParsePointWKT("POINT(13.40495 52.52001)")
	if err != nil {
		t.Fatalf("ParsePointWKT failed: %v", err)
	}
	if p.Lng != 13.40495 || p.Lat != 52.52001 {
		t.Errorf("Expected lng=13.40495 lat=52.52001, got %+v", p)
	}
}

func TestParsePointWKT_Invalid(t *testing.T) {
	cases := []string{"", "LINESTRING(0 0, 1 1)", "POINT()", "POINT(1)", "POINT(a b)"}
	for _, c := range cases {
		if _, err := ParsePointWKT(c); err == nil {
			t.Errorf("Expected error for %q", c)
		}
	}
}

func TestWKTRoundTrip(t *testing.T) {
	p := Point{Lat: -33.8688, Lng: 151.2093}
	got, err := ParsePointWKT(p.WKT())
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if got != p {
		t.Errorf("Expected %+v, got %+v", p, got)
	}
}

func TestDistanceMeters_Zero(t *testing.T) {
	p := Point{Lat: 52.52, Lng: 13.405}
	if d := DistanceMeters(p, p); d != 0 {
		t.Errorf("Expected 0 distance to self, got %f", d)
	}
}

func TestDistanceMeters_KnownValue(t *testing.T) {
	// One degree of latitude is roughly 111.2km.
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 1, Lng: 0}
	d := DistanceMeters(a, b)
	if math.Abs(d-111195) > 200 {
		t.Errorf("Expected ~111195m for one degree of latitude, got %f", d)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	a := Point{Lat: 52.5200, Lng: 13.4049}
	b := Point{Lat: 52.5201, Lng: 13.4051}
	if DistanceMeters(a, b) != DistanceMeters(b, a) {
		t.Error("Distance should be symmetric")
	}
}
