package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/cv-builder/internal/rendering"
)

const printNoticeHeader = "X-Print-Notice"

// handleExportDoc downloads the CV as a Word-compatible document
func (s *Server) handleExportDoc(w http.ResponseWriter, _ *http.Request) {
	fragment, err := s.builder.PreviewFragment()
	if err != nil {
		s.failure(w, err)
		return
	}

	export, err := rendering.RenderWord(fragment, s.exportFilename, s.exportTemplate)
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", export.ContentDisposition())
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Body); err != nil {
		s.log.WithError(err).Error("Error writing Word export")
	}
}

// handleExportPDF prints the preview page to PDF in a headless browser
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	page, err := s.builder.PreviewPage()
	if err != nil {
		s.failure(w, err)
		return
	}

	pdf, err := s.printPDF(r.Context(), page, s.chromeTimeout, s.log)
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", rendering.PDFContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+rendering.PDFFilename+`"`)
	w.Header().Set(printNoticeHeader, rendering.PrintNotice)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.log.WithError(err).Error("Error writing PDF export")
	}
}
