package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/routing"
	"github.com/openvenue/wayfinder/pkg/store"
	"github.com/openvenue/wayfinder/pkg/validation"
)

// handleRoute computes a route from an origin coordinate to a POI.
//
// POST /api/navigation/route
func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req validation.RouteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateRouteRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Already validated as UUIDs.
	floorID := uuid.MustParse(req.FloorID)
	poiID := uuid.MustParse(req.POIID)

	query := routing.RouteQuery{
		FromFloorID: floorID,
		From:        geo.Point{Lat: *req.Lat, Lng: *req.Lng},
		ToPOIID:     poiID,
		Accessible:  req.Accessible,
	}

	start := time.Now()
	route, err := s.planner.PlanRoute(r.Context(), query)
	if err != nil {
		status := "error"
		switch {
		case errors.Is(err, routing.ErrNoRoute):
			status = "no_route"
		case store.IsNotFound(err):
			status = "not_found"
		}
		s.metrics.RecordRoute(query.Accessible, status, time.Since(start), 0, 0)
		s.respondStoreError(w, r, err)
		return
	}

	s.metrics.RecordRoute(query.Accessible, "ok", time.Since(start),
		route.Distance, len(route.Floors))
	s.respondJSON(w, http.StatusOK, route)
}
