package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/openvenue/wayfinder/pkg/api/middleware"
	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/routing"
	"github.com/openvenue/wayfinder/pkg/store"
)

// errorResponse is the JSON envelope for every non-2xx response.
type errorResponse struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encoding failed", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respondJSON(w, status, errorResponse{
		Error:     message,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
		RequestID: middleware.GetRequestID(r),
	})
}

// respondStoreError maps a storage or routing error to an HTTP status. The
// full error is logged; 5xx responses carry a sanitized message.
func (s *Server) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			logging.String("path", r.URL.Path),
			logging.RequestID(middleware.GetRequestID(r)),
			logging.Error(err))
		message = "internal server error"
	}
	s.respondError(w, r, status, message)
}

func statusForError(err error) int {
	switch {
	case store.IsNotFound(err), errors.Is(err, routing.ErrNoRoute):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalid), errors.Is(err, store.ErrReference):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into v, rejecting unknown fields. A false
// return means the 400 has already been written.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// pathUUID extracts and parses the {name} path variable. A false return means
// the 400 has already been written.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
