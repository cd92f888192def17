package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-builder/internal/types"
)

// handleListFields returns every simple and skill field value
func (s *Server) handleListFields(w http.ResponseWriter, _ *http.Request) {
	values := s.builder.Fields()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"fields": values,
		"count":  len(values),
	})
}

// handleGetField returns a single field value
func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	value, err := s.builder.Field(id)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id, "value": value})
}

// handleUpdateField assigns a field and re-renders its preview target
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	req, ok := s.decodeFieldUpdate(w, r)
	if !ok {
		return
	}
	if err := s.builder.SetField(id, *req.Value); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"id": id, "value": *req.Value})
}

// decodeFieldUpdate reads a {"value": ...} body, writing a 400 when it is absent or malformed
func (s *Server) decodeFieldUpdate(w http.ResponseWriter, r *http.Request) (*types.FieldUpdateRequest, bool) {
	var req types.FieldUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.failure(w, &ErrValidation{Field: "value", Message: "is required"})
		return nil, false
	}
	return &req, true
}
