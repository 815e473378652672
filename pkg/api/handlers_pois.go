package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/model"
	"github.com/openvenue/wayfinder/pkg/validation"
)

// POST /api/pois
func (s *Server) handleCreatePOI(w http.ResponseWriter, r *http.Request) {
	var req validation.POIRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidatePOIRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p := model.POI{
		ID:       uuid.New(),
		FloorID:  uuid.MustParse(req.FloorID),
		Name:     req.Name,
		Type:     req.Type,
		Location: geo.Point{Lat: *req.Lat, Lng: *req.Lng},
		Metadata: req.Metadata,
	}
	if err := s.store.CreatePOI(r.Context(), &p); err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	s.log.Info("poi created", logging.POIID(p.ID), logging.FloorID(p.FloorID))
	s.respondJSON(w, http.StatusCreated, p)
}

// GET /api/pois/{id}
func (s *Server) handleGetPOI(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	p, err := s.store.GetPOI(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

// DELETE /api/pois/{id}
func (s *Server) handleDeletePOI(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeletePOI(r.Context(), id); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.log.Info("poi deleted", logging.POIID(id))
	s.respondJSON(w, http.StatusNoContent, nil)
}
