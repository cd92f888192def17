package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldUpdateRequest sets the value of a simple field or entry sub-field. Value must be
// present; an empty string is a valid value.
type FieldUpdateRequest struct {
	Value *string `json:"value" validate:"required"`
}

// EntryUpdateRequest sets several sub-fields of an entry at once.
type EntryUpdateRequest struct {
	Fields map[string]string `json:"fields" validate:"required"`
}

// EntryView is the API representation of a list entry.
type EntryView struct {
	ID       string            `json:"id"`
	Group    string            `json:"group"`
	Position int               `json:"position"`
	Fields   map[string]string `json:"fields"`
}

// ProgressView is the API representation of form progress.
type ProgressView struct {
	Step     int     `json:"step"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
	Text     string  `json:"text"`
	Complete bool    `json:"complete"`
}

// SessionView is the API representation of the editing session.
type SessionView struct {
	Zoom          int          `json:"zoom"`
	ActiveSection int          `json:"active_section"`
	Sections      []string     `json:"sections"`
	Confirming    []int        `json:"confirming"`
	Progress      ProgressView `json:"progress"`
}

// Validate validates the FieldUpdateRequest using the validator.
func (r *FieldUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the EntryUpdateRequest using the validator.
func (r *EntryUpdateRequest) Validate() error {
	return validate.Struct(r)
}
