package server

import (
	"net/http"
	"strconv"
)

// handleSession returns zoom and section navigation state
func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.builder.Session())
}

func (s *Server) handleZoomIn(w http.ResponseWriter, _ *http.Request) {
	s.zoomResponse(w, s.builder.ZoomIn())
}

func (s *Server) handleZoomOut(w http.ResponseWriter, _ *http.Request) {
	s.zoomResponse(w, s.builder.ZoomOut())
}

func (s *Server) handleZoomReset(w http.ResponseWriter, _ *http.Request) {
	s.zoomResponse(w, s.builder.ZoomReset())
}

func (s *Server) zoomResponse(w http.ResponseWriter, level int) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"zoom":  level,
		"label": strconv.Itoa(level) + "%",
	})
}

// handleSelectSection makes a form section active
func (s *Server) handleSelectSection(w http.ResponseWriter, r *http.Request) {
	index, ok := s.sectionIndex(w, r)
	if !ok {
		return
	}
	if err := s.builder.SelectSection(index); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.builder.Session())
}

// handleConfirmSection confirms a section; the next one activates after a short delay
func (s *Server) handleConfirmSection(w http.ResponseWriter, r *http.Request) {
	index, ok := s.sectionIndex(w, r)
	if !ok {
		return
	}
	if err := s.builder.ConfirmSection(index); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusAccepted, s.builder.Session())
}

func (s *Server) sectionIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "index", Message: "must be a number"})
		return 0, false
	}
	return index, true
}
