// Package schemas provides JSON Schema validation functionality for persisted data.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/cv-builder/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	snapshotOnce   sync.Once
	snapshotSchema *gojsonschema.Schema
	snapshotErr    error
)

// compiledSnapshotSchema compiles the embedded snapshot schema once.
func compiledSnapshotSchema() (*gojsonschema.Schema, error) {
	snapshotOnce.Do(func() {
		data, err := schemafiles.Files.ReadFile(schemafiles.SnapshotSchema)
		if err != nil {
			snapshotErr = &SchemaLoadError{Path: schemafiles.SnapshotSchema, Message: "embedded schema missing", Cause: err}
			return
		}
		snapshotSchema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			snapshotErr = &SchemaLoadError{Path: schemafiles.SnapshotSchema, Message: "failed to compile schema", Cause: err}
		}
	})
	return snapshotSchema, snapshotErr
}

// ValidateSnapshot validates serialized snapshot JSON against the embedded schema.
// Documents that are not JSON at all produce a SchemaLoadError wrapping the parse error.
func ValidateSnapshot(data []byte) error {
	schema, err := compiledSnapshotSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{
			Path:    "(document)",
			Message: "failed to load document",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
