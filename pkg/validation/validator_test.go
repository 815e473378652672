package validation

import (
	"strconv"
	"strings"
	"testing"
)

func f(v float64) *float64 { return &v }

const (
	floorID = "0c4e1fd0-5ac3-4c44-a1f5-7f3e9a6b2c01"
	poiID   = "1b2f3a40-6dd4-4e55-b2a6-8e4f0b7c3d12"
	nodeA   = "2a3b4c50-7ee5-4f66-c3b7-9f5a1c8d4e23"
	nodeB   = "3b4c5d60-8ff6-4a77-d4c8-0a6b2d9e5f34"
)

func TestValidateRouteRequest(t *testing.T) {
	valid := &RouteRequest{
		FloorID: floorID,
		Lat:     f(51.5),
		Lng:     f(-0.12),
		POIID:   poiID,
	}
	if err := ValidateRouteRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  *RouteRequest
		want string
	}{
		{"nil", nil, "cannot be nil"},
		{"missing floor", &RouteRequest{Lat: f(1), Lng: f(1), POIID: poiID}, "FloorID"},
		{"bad floor uuid", &RouteRequest{FloorID: "not-a-uuid", Lat: f(1), Lng: f(1), POIID: poiID}, "FloorID"},
		{"missing lat", &RouteRequest{FloorID: floorID, Lng: f(1), POIID: poiID}, "Lat"},
		{"lat out of range", &RouteRequest{FloorID: floorID, Lat: f(95), Lng: f(1), POIID: poiID}, "latitude"},
		{"lng out of range", &RouteRequest{FloorID: floorID, Lat: f(1), Lng: f(181), POIID: poiID}, "longitude"},
		{"missing poi", &RouteRequest{FloorID: floorID, Lat: f(1), Lng: f(1)}, "POIID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRouteRequest(tc.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateRouteRequestZeroCoordinates(t *testing.T) {
	// (0, 0) is a legal coordinate and must not look like a missing field.
	req := &RouteRequest{FloorID: floorID, Lat: f(0), Lng: f(0), POIID: poiID}
	if err := ValidateRouteRequest(req); err != nil {
		t.Errorf("zero coordinates rejected: %v", err)
	}
}

func TestValidateFloorRequest(t *testing.T) {
	valid := &FloorRequest{BuildingID: floorID, LevelNumber: -1, Name: "Basement", HeightMeters: 3.5}
	if err := ValidateFloorRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	noHeight := &FloorRequest{BuildingID: floorID, Name: "Ground"}
	if err := ValidateFloorRequest(noHeight); err == nil {
		t.Error("zero height should be rejected")
	}

	negHeight := &FloorRequest{BuildingID: floorID, Name: "Ground", HeightMeters: -2}
	if err := ValidateFloorRequest(negHeight); err == nil || !strings.Contains(err.Error(), "HeightMeters") {
		t.Errorf("negative height: %v", err)
	}
}

func TestValidateEdgeRequest(t *testing.T) {
	valid := &EdgeRequest{FromNodeID: nodeA, ToNodeID: nodeB, EdgeTypeID: floorID, Distance: 12.5}
	if err := ValidateEdgeRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	selfLoop := &EdgeRequest{FromNodeID: nodeA, ToNodeID: nodeA, EdgeTypeID: floorID, Distance: 1}
	if err := ValidateEdgeRequest(selfLoop); err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Errorf("self loop: %v", err)
	}

	zeroDist := &EdgeRequest{FromNodeID: nodeA, ToNodeID: nodeB, EdgeTypeID: floorID}
	if err := ValidateEdgeRequest(zeroDist); err == nil {
		t.Error("zero distance should be rejected")
	}
}

func TestValidateTypeRequest(t *testing.T) {
	valid := &TypeRequest{Code: "elevator"}
	if err := ValidateTypeRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := []string{"Elevator", "1stairs", "has space", ""}
	for _, code := range bad {
		if err := ValidateTypeRequest(&TypeRequest{Code: code}); err == nil {
			t.Errorf("code %q should be rejected", code)
		}
	}
}

func TestValidateBuildingRequest(t *testing.T) {
	if err := ValidateBuildingRequest(&BuildingRequest{Name: "Terminal 2", FloorsCount: 3}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := ValidateBuildingRequest(&BuildingRequest{FloorsCount: 3}); err == nil {
		t.Error("missing name should be rejected")
	}
	if err := ValidateBuildingRequest(&BuildingRequest{Name: strings.Repeat("x", 201), FloorsCount: 1}); err == nil {
		t.Error("overlong name should be rejected")
	}
}

func TestValidatePOIRequest(t *testing.T) {
	valid := &POIRequest{FloorID: floorID, Name: "Pharmacy", Type: "shop", Lat: f(51), Lng: f(7)}
	if err := ValidatePOIRequest(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	big := map[string]any{}
	for i := 0; i <= MaxMetadataKeys; i++ {
		big["key_"+strconv.Itoa(i)] = i
	}
	valid.Metadata = big
	if err := ValidatePOIRequest(valid); err == nil {
		t.Error("oversized metadata should be rejected")
	}
}
