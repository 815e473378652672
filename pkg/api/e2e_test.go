package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openvenue/wayfinder/pkg/routing"
)

// TestVenueLifecycleEndToEnd walks the full operator flow through the HTTP
// surface: build a venue, route through it, tear it down, and verify the
// routing data went with it.
func TestVenueLifecycleEndToEnd(t *testing.T) {
	h, _ := newTestHandler(t)
	fx := seedRouteFixture(t, h)

	// The seeded venue routes across both floors.
	rec := doJSON(t, h, http.MethodPost, "/api/navigation/route", map[string]any{
		"floorId": fx.floor1, "lat": 0.0, "lng": 0.0, "poiId": fx.poi,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var route routing.Route
	decodeInto(t, rec, &route)
	require.Len(t, route.Floors, 2)
	require.Positive(t, route.Distance)

	// The floors and their POIs are visible through the read endpoints.
	rec = doJSON(t, h, http.MethodGet, "/api/floors/"+fx.floor2+"/pois", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pois []map[string]any
	decodeInto(t, rec, &pois)
	require.Len(t, pois, 1)
	require.Equal(t, "Cafe", pois[0]["name"])

	// Deleting the building cascades: floors, POIs and the routing graph all
	// disappear, and routing into the venue stops working.
	rec = doJSON(t, h, http.MethodGet, "/api/buildings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var buildings []map[string]any
	decodeInto(t, rec, &buildings)
	require.Len(t, buildings, 1)
	buildingID := buildings[0]["id"].(string)

	rec = doJSON(t, h, http.MethodDelete, "/api/buildings/"+buildingID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/floors/"+fx.floor1, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/navigation/route", map[string]any{
		"floorId": fx.floor1, "lat": 0.0, "lng": 0.0, "poiId": fx.poi,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
