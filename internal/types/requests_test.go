package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUpdateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "value present", body: `{"value":"Jane"}`, wantErr: false},
		{name: "empty value is present", body: `{"value":""}`, wantErr: false},
		{name: "value missing", body: `{}`, wantErr: true},
		{name: "value null", body: `{"value":null}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req FieldUpdateRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryUpdateRequest_Validate(t *testing.T) {
	var req EntryUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Error(t, req.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"fields":{"title":"x"}}`), &req))
	assert.NoError(t, req.Validate())
}

func TestSnapshot_JSONShape(t *testing.T) {
	s := NewSnapshot()
	s.SimpleInputs["full-name"] = "Jane"
	s.DynamicLists["projects"] = []map[string]string{{"proj-title": "A"}, {"proj-title": "B"}}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"simpleInputs":{"full-name":"Jane"},"dynamicLists":{"projects":[{"proj-title":"A"},{"proj-title":"B"}]}}`, string(data))
	assert.Equal(t, 2, s.EntryCount())
}
