package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/model"
	"github.com/openvenue/wayfinder/pkg/validation"
)

// POST /api/floors
func (s *Server) handleCreateFloor(w http.ResponseWriter, r *http.Request) {
	var req validation.FloorRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateFloorRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	f := model.Floor{
		ID:           uuid.New(),
		BuildingID:   uuid.MustParse(req.BuildingID),
		LevelNumber:  req.LevelNumber,
		Name:         req.Name,
		HeightMeters: req.HeightMeters,
		GeoJSON:      req.GeoJSON,
	}
	if err := s.store.CreateFloor(r.Context(), &f); err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	s.log.Info("floor created",
		logging.FloorID(f.ID),
		logging.BuildingID(f.BuildingID),
		logging.Int("level", f.LevelNumber))
	s.respondJSON(w, http.StatusCreated, f)
}

// GET /api/floors/{id}
func (s *Server) handleGetFloor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	f, err := s.store.GetFloor(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, f)
}

// DELETE /api/floors/{id}
func (s *Server) handleDeleteFloor(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteFloor(r.Context(), id); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.refreshFloorIndex(r.Context(), id, "floor_deleted")

	s.log.Info("floor deleted", logging.FloorID(id))
	s.respondJSON(w, http.StatusNoContent, nil)
}

// GET /api/floors/{id}/geojson
//
// Returns the floor's stored indoor map document. A floor without one yields
// an empty object rather than a 404: the floor exists, the map is just not
// uploaded yet.
func (s *Server) handleFloorGeoJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	f, err := s.store.GetFloor(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	if f.GeoJSON == nil {
		s.respondJSON(w, http.StatusOK, map[string]any{})
		return
	}
	s.respondJSON(w, http.StatusOK, f.GeoJSON)
}

// GET /api/floors/{id}/pois
func (s *Server) handleListFloorPOIs(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	if _, err := s.store.GetFloor(r.Context(), id); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	pois, err := s.store.ListPOIsByFloor(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, pois)
}
