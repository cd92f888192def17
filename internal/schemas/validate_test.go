package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSnapshot_Valid(t *testing.T) {
	err := ValidateSnapshot([]byte(`{"simpleInputs":{"email":"a@b.com"},"dynamicLists":{"projects":[{"proj-title":"X"}]}}`))
	assert.NoError(t, err)
}

func TestValidateSnapshot_EmptyCollections(t *testing.T) {
	err := ValidateSnapshot([]byte(`{"simpleInputs":{},"dynamicLists":{}}`))
	assert.NoError(t, err)
}

func TestValidateSnapshot_MissingField(t *testing.T) {
	err := ValidateSnapshot([]byte(`{"simpleInputs":{}}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateSnapshot_WrongTypes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "number value", doc: `{"simpleInputs":{"phone":5551234},"dynamicLists":{}}`},
		{name: "list not array", doc: `{"simpleInputs":{},"dynamicLists":{"experience":{"exp-role":"x"}}}`},
		{name: "entry value not string", doc: `{"simpleInputs":{},"dynamicLists":{"experience":[{"exp-role":1}]}}`},
		{name: "root array", doc: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tt.doc))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateSnapshot_MalformedJSON(t *testing.T) {
	err := ValidateSnapshot([]byte(`{"simpleInputs": {`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "simpleInputs.phone", Message: "Invalid type. Expected: string, given: integer"},
			{Field: "(root)", Message: "dynamicLists is required"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. simpleInputs.phone")
	assert.Contains(t, msg, "2. (root): dynamicLists is required")
}
