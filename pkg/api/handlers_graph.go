package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/model"
	"github.com/openvenue/wayfinder/pkg/validation"
)

// POST /api/routing/nodes
//
// Creating a node rebuilds its floor's spatial index so nearest-waypoint
// lookups see it immediately.
func (s *Server) handleCreateNode(w http.ResponseWriter, r *http.Request) {
	var req validation.NodeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateNodeRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	n := model.RoutingNode{
		ID:         uuid.New(),
		FloorID:    uuid.MustParse(req.FloorID),
		NodeTypeID: uuid.MustParse(req.NodeTypeID),
		Location:   geo.Point{Lat: *req.Lat, Lng: *req.Lng},
	}
	if err := s.store.CreateRoutingNode(r.Context(), &n); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.refreshFloorIndex(r.Context(), n.FloorID, "node_created")

	s.log.Info("routing node created", logging.NodeID(n.ID), logging.FloorID(n.FloorID))
	s.respondJSON(w, http.StatusCreated, n)
}

// GET /api/routing/nodes/{id}
func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	n, err := s.store.GetRoutingNode(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, n)
}

// POST /api/routing/edges
func (s *Server) handleCreateEdge(w http.ResponseWriter, r *http.Request) {
	var req validation.EdgeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateEdgeRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	e := model.RoutingEdge{
		ID:         uuid.New(),
		FromNodeID: uuid.MustParse(req.FromNodeID),
		ToNodeID:   uuid.MustParse(req.ToNodeID),
		EdgeTypeID: uuid.MustParse(req.EdgeTypeID),
		Distance:   req.Distance,
	}
	if err := s.store.CreateRoutingEdge(r.Context(), &e); err != nil {
		s.respondStoreError(w, r, err)
		return
	}

	s.log.Info("routing edge created",
		logging.String("edge_id", e.ID.String()),
		logging.Distance(e.Distance))
	s.respondJSON(w, http.StatusCreated, e)
}

// POST /api/catalog/node-types
func (s *Server) handleCreateNodeType(w http.ResponseWriter, r *http.Request) {
	var req validation.TypeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateTypeRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	nt := model.NodeType{
		ID:          uuid.New(),
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.store.CreateNodeType(r.Context(), &nt); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, nt)
}

// GET /api/catalog/node-types
func (s *Server) handleListNodeTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.store.ListNodeTypes(r.Context())
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, types)
}

// POST /api/catalog/edge-types
//
// IsAccessible defaults to true: most traversal kinds (hallways, elevators,
// ramps) are wheelchair friendly, and the exceptions are marked explicitly.
func (s *Server) handleCreateEdgeType(w http.ResponseWriter, r *http.Request) {
	var req validation.TypeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateTypeRequest(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	accessible := true
	if req.IsAccessible != nil {
		accessible = *req.IsAccessible
	}
	et := model.EdgeType{
		ID:           uuid.New(),
		Code:         req.Code,
		IsAccessible: accessible,
		Description:  req.Description,
	}
	if err := s.store.CreateEdgeType(r.Context(), &et); err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, et)
}

// GET /api/catalog/edge-types
func (s *Server) handleListEdgeTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.store.ListEdgeTypes(r.Context())
	if err != nil {
		s.respondStoreError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, types)
}
