package server

import (
	"net/http"
)

// handlePage serves the full preview page with the current zoom applied
func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	page, err := s.builder.PreviewPage()
	if err != nil {
		s.failure(w, err)
		return
	}
	s.htmlResponse(w, page)
}

// handlePreview serves the printable CV fragment only
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	fragment, err := s.builder.PreviewFragment()
	if err != nil {
		s.failure(w, err)
		return
	}
	s.htmlResponse(w, fragment)
}

// handleSnapshot returns the snapshot as it would be saved
func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.builder.Snapshot())
}

// handleSave writes the snapshot immediately
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.builder.Save(r.Context()); err != nil {
		s.failure(w, err)
		return
	}
	snap := s.builder.Snapshot()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "saved",
		"entries": snap.EntryCount(),
	})
}

// handlePrefill replaces the form with sample content
func (s *Server) handlePrefill(w http.ResponseWriter, _ *http.Request) {
	s.builder.Prefill()
	s.jsonResponse(w, http.StatusOK, s.builder.Snapshot())
}

// htmlResponse writes an HTML document or fragment
func (s *Server) htmlResponse(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		s.log.WithError(err).Error("Error writing HTML response")
	}
}
