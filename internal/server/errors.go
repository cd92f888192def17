package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/entries"
	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		snapshotErr   *persistence.SnapshotError
		storeErr      *store.StoreError
	)

	switch {
	case errors.Is(err, fields.ErrUnknownField),
		errors.Is(err, entries.ErrUnknownGroup),
		errors.Is(err, entries.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, entries.ErrUnknownSubField),
		errors.Is(err, session.ErrInvalidSection),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &snapshotErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
