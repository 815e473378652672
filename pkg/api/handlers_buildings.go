package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/model"
	"github.com/openvenue/wayfinder/pkg/validation"
)

// POST /api/buildings
func (s *Server) handleCreateBuilding(w http.ResponseWriter, r *http.Request) {
	var req validation.BuildingRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateBuildingRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	b := model.Building{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		FloorsCount: req.FloorsCount,
		Footprint:   req.Footprint,
	}
	if err := s.store.CreateBuilding(r.Context(), &b); err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	s.log.Info("building created", logging.BuildingID(b.ID))
	s.respondJSON(w, http.StatusCreated, b)
}

// GET /api/buildings
func (s *Server) handleListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := s.store.ListBuildings(r.Context())
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, buildings)
}

// GET /api/buildings/{id}
func (s *Server) handleGetBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	b, err := s.store.GetBuilding(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, b)
}

// DELETE /api/buildings/{id}
//
// Deletion cascades to floors, POIs and routing data, so the spatial index
// entries for the building's floors are dropped as well.
func (s *Server) handleDeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	floors, err := s.store.ListFloorsByBuilding(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	if err := s.store.DeleteBuilding(r.Context(), id); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	for _, f := range floors {
		s.refreshFloorIndex(r.Context(), f.ID, "building_deleted")
	}

	s.log.Info("building deleted", logging.BuildingID(id), logging.Count(len(floors)))
	s.respondJSON(w, http.StatusNoContent, nil)
}

// GET /api/buildings/{id}/floors
func (s *Server) handleListFloors(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	// Distinguish an empty building from an unknown one.
	if _, err := s.store.GetBuilding(r.Context(), id); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	floors, err := s.store.ListFloorsByBuilding(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, floors)
}
