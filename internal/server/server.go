// Package server provides the HTTP API of the CV builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jonathan/cv-builder/internal/builder"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
)

// PrintFunc prints a preview page to PDF.
type PrintFunc func(ctx context.Context, pageHTML string, timeout time.Duration, log *logrus.Entry) ([]byte, error)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	builder     *builder.Builder
	rateLimiter *ratelimit.Limiter
	log         *logrus.Entry

	exportFilename string
	exportTemplate string
	chromeTimeout  time.Duration
	printPDF       PrintFunc
}

// Config holds server configuration
type Config struct {
	Port           int
	RateLimit      float64 // requests per second per client, 0 leaves only the export limits
	RateBurst      int
	AllowedOrigins []string
	ExportFilename string
	ExportTemplate string
	ChromeTimeout  time.Duration
	Print          PrintFunc // defaults to rendering.PrintPDF
}

// New creates a new server instance around an initialized builder.
func New(cfg Config, b *builder.Builder, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	printPDF := cfg.Print
	if printPDF == nil {
		printPDF = rendering.PrintPDF
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		builder: b,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			Rate:            rate.Limit(cfg.RateLimit),
			Burst:           cfg.RateBurst,
			CleanupInterval: 5 * time.Minute,
			Endpoints:       ratelimit.DefaultEndpoints(),
		}),
		log:            logging.Component(logger, "server"),
		exportFilename: cfg.ExportFilename,
		exportTemplate: cfg.ExportTemplate,
		chromeTimeout:  cfg.ChromeTimeout,
		printPDF:       printPDF,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Preview
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /preview", s.handlePreview)

	// Simple and skill fields
	mux.HandleFunc("GET /fields", s.handleListFields)
	mux.HandleFunc("GET /fields/{id}", s.handleGetField)
	mux.HandleFunc("PUT /fields/{id}", s.handleUpdateField)

	// Entry groups
	mux.HandleFunc("GET /groups/{group}/entries", s.handleListEntries)
	mux.HandleFunc("POST /groups/{group}/entries", s.handleAddEntry)
	mux.HandleFunc("PUT /groups/{group}/entries/{entry_id}", s.handleUpdateEntry)
	mux.HandleFunc("PUT /groups/{group}/entries/{entry_id}/fields/{name}", s.handleUpdateEntryField)
	mux.HandleFunc("DELETE /groups/{group}/entries/{entry_id}", s.handleRemoveEntry)

	// Persistence
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("POST /prefill", s.handlePrefill)

	// Export
	mux.HandleFunc("GET /export/doc", s.handleExportDoc)
	mux.HandleFunc("GET /export/pdf", s.handleExportPDF)

	// Session: zoom and section navigation
	mux.HandleFunc("GET /session", s.handleSession)
	mux.HandleFunc("POST /zoom/in", s.handleZoomIn)
	mux.HandleFunc("POST /zoom/out", s.handleZoomOut)
	mux.HandleFunc("POST /zoom/reset", s.handleZoomReset)
	mux.HandleFunc("POST /sections/{index}/select", s.handleSelectSection)
	mux.HandleFunc("POST /sections/{index}/confirm", s.handleConfirmSection)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", printNoticeHeader},
		MaxAge:         300,
	})

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(corsHandler.Handler(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF printing launches a browser
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the full middleware chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT/SIGTERM, then shuts down
// gracefully and flushes any scheduled save.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	s.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops the HTTP server, then flushes pending work.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()
	s.builder.Flush()
	s.log.Info("Server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
			"remote":   r.RemoteAddr,
		}).Info("Request completed")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("Error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status code and writes it as an error response.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("Request failed")
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.log.WithFields(logrus.Fields{
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}).Warn("Rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
