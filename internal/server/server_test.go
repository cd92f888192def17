package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/builder"
	"github.com/jonathan/cv-builder/internal/entries"
	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/types"
)

func fakePrint(_ context.Context, pageHTML string, _ time.Duration, _ *logrus.Entry) ([]byte, error) {
	return []byte("%PDF-1.4 " + fmt.Sprint(len(pageHTML))), nil
}

// newTestServer creates a server around an empty builder backed by a memory store
func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	b, err := builder.New(builder.Options{
		Store:        s,
		SaveDelay:    time.Hour,
		ConfirmDelay: 10 * time.Millisecond,
		Logger:       logging.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(b.Close)

	srv := New(Config{Port: 0, Print: fakePrint}, b, logging.Discard())
	t.Cleanup(srv.rateLimiter.Stop)
	return srv, s
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestUpdateField_RendersPreview(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPut, "/fields/full-name", `{"value": "Jane <b>Doe</b>"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodGet, "/fields/full-name", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jane <b>Doe</b>", decode[map[string]string](t, w)["value"])

	w = do(t, srv, http.MethodGet, "/preview", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Jane &lt;b&gt;Doe&lt;/b&gt;")
	assert.NotContains(t, w.Body.String(), "<b>Doe</b>")
}

func TestUpdateField_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		message string
	}{
		{"unknown field", "/fields/shoe-size", `{"value": "9"}`, http.StatusNotFound, "shoe-size"},
		{"missing value", "/fields/full-name", `{}`, http.StatusBadRequest, "validation error: value - is required"},
		{"malformed body", "/fields/full-name", `{"value":`, http.StatusBadRequest, "validation error: body - invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decode[map[string]string](t, w)["error"], tt.message)
		})
	}
}

func TestUpdateField_EmptyValueAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPut, "/fields/email", `{"value": ""}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListFields(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/fields", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Fields map[string]string `json:"fields"`
		Count  int               `json:"count"`
	}](t, w)
	assert.Contains(t, resp.Fields, "full-name")
	assert.Contains(t, resp.Fields, "tech-ai")
	assert.Equal(t, len(resp.Fields), resp.Count)
}

func TestEntries_Lifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/groups/experience/entries", "")
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode[types.EntryView](t, w)

	w = do(t, srv, http.MethodPost, "/groups/experience/entries", "")
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[types.EntryView](t, w)
	assert.Equal(t, 1, second.Position)

	w = do(t, srv, http.MethodPut, "/groups/experience/entries/"+second.ID+"/fields/role", `{"value": "X"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "X", decode[types.EntryView](t, w).Fields["role"])

	w = do(t, srv, http.MethodDelete, "/groups/experience/entries/"+first.ID, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, srv, http.MethodGet, "/groups/experience/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Entries []types.EntryView `json:"entries"`
		Count   int               `json:"count"`
	}](t, w)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, second.ID, resp.Entries[0].ID)
	assert.Equal(t, 0, resp.Entries[0].Position)
	assert.Equal(t, "X", resp.Entries[0].Fields["role"])
}

func TestEntries_UpdateMany(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/groups/projects/entries", "")
	require.Equal(t, http.StatusCreated, w.Code)
	entry := decode[types.EntryView](t, w)

	w = do(t, srv, http.MethodPut, "/groups/projects/entries/"+entry.ID,
		`{"fields": {"title": "CLI", "description": "Go, Cobra"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[types.EntryView](t, w)
	assert.Equal(t, "CLI", updated.Fields["title"])

	w = do(t, srv, http.MethodPut, "/groups/projects/entries/"+entry.ID, `{"fields": {"stars": "5"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPut, "/groups/projects/entries/"+entry.ID, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation error: fields - is required", decode[map[string]string](t, w)["error"])
}

func TestEntries_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/groups/hobbies/entries", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/groups/hobbies/entries", "").Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, srv, http.MethodDelete, "/groups/experience/entries/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, srv, http.MethodDelete, "/groups/experience/entries/123e4567-e89b-12d3-a456-426614174000", "").Code)
}

func TestSaveAndSnapshot(t *testing.T) {
	srv, s := newTestServer(t)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, "/fields/full-name", `{"value": "Jane"}`).Code)

	w := do(t, srv, http.MethodPost, "/save", "")
	require.Equal(t, http.StatusOK, w.Code)

	raw, found, err := s.Get(context.Background(), persistence.DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"full-name":"Jane"`)

	w = do(t, srv, http.MethodGet, "/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[types.Snapshot](t, w)
	assert.Equal(t, "Jane", snap.SimpleInputs["full-name"])
	assert.Contains(t, snap.DynamicLists, "experience")
}

func TestPrefill(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/prefill", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[types.Snapshot](t, w)
	assert.Equal(t, "John Doe", snap.SimpleInputs["full-name"])
	assert.Len(t, snap.DynamicLists["experience"], 2)
}

func TestExportDoc(t *testing.T) {
	srv, _ := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, "/fields/full-name", `{"value": "Jane"}`).Code)

	w := do(t, srv, http.MethodGet, "/export/doc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rendering.WordContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Resume.doc"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "urn:schemas-microsoft-com:office:word")
	assert.Contains(t, w.Body.String(), "Jane")
}

func TestExportPDF(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/export/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rendering.PDFContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, rendering.PrintNotice, w.Header().Get(printNoticeHeader))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestExportPDF_PrintFailure(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.printPDF = func(context.Context, string, time.Duration, *logrus.Entry) ([]byte, error) {
		return nil, &rendering.RenderError{Message: "no browser"}
	}

	w := do(t, srv, http.MethodGet, "/export/pdf", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestZoom(t *testing.T) {
	srv, _ := newTestServer(t)

	var last map[string]any
	for i := 0; i < 7; i++ {
		w := do(t, srv, http.MethodPost, "/zoom/in", "")
		require.Equal(t, http.StatusOK, w.Code)
		last = decode[map[string]any](t, w)
	}
	assert.Equal(t, float64(150), last["zoom"])
	assert.Equal(t, "150%", last["label"])

	w := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scale(1.5)")

	w = do(t, srv, http.MethodPost, "/zoom/reset", "")
	assert.Equal(t, float64(100), decode[map[string]any](t, w)["zoom"])
	w = do(t, srv, http.MethodPost, "/zoom/out", "")
	assert.Equal(t, float64(90), decode[map[string]any](t, w)["zoom"])
}

func TestSections(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/sections/1/select", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[types.SessionView](t, w).ActiveSection)

	w = do(t, srv, http.MethodPost, "/sections/1/confirm", "")
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		w := do(t, srv, http.MethodGet, "/session", "")
		return decode[types.SessionView](t, w).ActiveSection == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/sections/abc/select", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/sections/42/confirm", "").Code)
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/fields/full-name", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit_Exceeded(t *testing.T) {
	s := store.NewMemoryStore()
	b, err := builder.New(builder.Options{Store: s, SaveDelay: time.Hour, Logger: logging.Discard()})
	require.NoError(t, err)
	t.Cleanup(b.Close)
	srv := New(Config{RateLimit: 1, RateBurst: 1, Print: fakePrint}, b, logging.Discard())
	t.Cleanup(srv.rateLimiter.Stop)

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/fields", "").Code)

	w := do(t, srv, http.MethodGet, "/fields", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", "").Code, "health is never limited")
}

func TestRateLimit_PDFLimitedWithoutDefault(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/export/pdf", "").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(t, srv, http.MethodGet, "/export/pdf", "").Code)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/fields", "").Code)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown field", fmt.Errorf("%w: x", fields.ErrUnknownField), http.StatusNotFound},
		{"unknown group", entries.ErrUnknownGroup, http.StatusNotFound},
		{"entry not found", entries.ErrEntryNotFound, http.StatusNotFound},
		{"unknown sub-field", entries.ErrUnknownSubField, http.StatusBadRequest},
		{"invalid section", session.ErrInvalidSection, http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "value", Message: "required"}, http.StatusBadRequest},
		{"snapshot", &persistence.SnapshotError{Message: "bad"}, http.StatusUnprocessableEntity},
		{"store", &store.StoreError{Backend: "redis", Op: "get", Cause: errors.New("down")}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestShutdown_FlushesPendingSave(t *testing.T) {
	srv, s := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, "/fields/email", `{"value": "a@b.co"}`).Code)

	require.NoError(t, srv.Shutdown(context.Background()))

	raw, found, err := s.Get(context.Background(), persistence.DefaultKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"email":"a@b.co"`)
}
