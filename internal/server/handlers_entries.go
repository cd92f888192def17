package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-builder/internal/types"
)

// handleListEntries lists the entries of a group in display order
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	list, err := s.builder.Entries(r.PathValue("group"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"entries": list,
		"count":   len(list),
	})
}

// handleAddEntry appends an empty entry to a group
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.builder.AddEntry(r.PathValue("group"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleUpdateEntry assigns several sub-fields of an entry
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req types.EntryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.failure(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, &ErrValidation{Field: "fields", Message: "is required"})
		return
	}

	entry, err := s.builder.SetEntryFields(r.PathValue("group"), r.PathValue("entry_id"), req.Fields)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleUpdateEntryField assigns one sub-field of an entry
func (s *Server) handleUpdateEntryField(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeFieldUpdate(w, r)
	if !ok {
		return
	}

	entry, err := s.builder.SetEntryField(r.PathValue("group"), r.PathValue("entry_id"), r.PathValue("name"), *req.Value)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleRemoveEntry deletes an entry; later entries shift up
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.builder.RemoveEntry(r.PathValue("group"), r.PathValue("entry_id")); err != nil {
		s.failure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
