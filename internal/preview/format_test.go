package preview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/fields"
)

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Jane", PlainText("  Jane \n", "Your Name"))
	assert.Equal(t, "Your Name", PlainText("", "Your Name"))
	assert.Equal(t, "Your Name", PlainText(" \t\n ", "Your Name"))
}

func TestLinesToItems(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "mixed markers and blank line", raw: "- One\n* Two\n\nThree", want: []string{"One", "Two", "Three"}},
		{name: "bullet glyph", raw: "• Led team\n  •  Shipped  ", want: []string{"Led team", "Shipped"}},
		{name: "only first marker stripped", raw: "- - nested", want: []string{"- nested"}},
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace only", raw: " \n\t\n", want: []string{}},
		{name: "marker only line dropped", raw: "-\nreal", want: []string{"real"}},
		{name: "crlf", raw: "a\r\nb", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, LinesToItems(tt.raw)); diff != "" {
				t.Fatalf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommaList(t *testing.T) {
	assert.Equal(t, "Go, Rust, SQL", CommaList(" Go,Rust ,, SQL ,"))
	assert.Equal(t, "", CommaList(" , ,"))
	assert.Equal(t, "", CommaList(""))
}

func TestLinkTarget(t *testing.T) {
	tests := []struct {
		name string
		kind fields.Kind
		raw  string
		want string
	}{
		{name: "email", kind: fields.KindEmail, raw: "a@b.com", want: "mailto:a@b.com"},
		{name: "email trimmed", kind: fields.KindEmail, raw: " a@b.com ", want: "mailto:a@b.com"},
		{name: "empty email", kind: fields.KindEmail, raw: "", want: "#"},
		{name: "phone", kind: fields.KindPhone, raw: "+1 (555) 123-4567", want: "tel:+15551234567"},
		{name: "location", kind: fields.KindLocation, raw: "New York, NY", want: MapSearchURL + "New%20York%2C%20NY"},
		{name: "location ampersand", kind: fields.KindLocation, raw: "A&B", want: MapSearchURL + "A%26B"},
		{name: "bare link", kind: fields.KindLink, raw: "linkedin.com/in/jane", want: "https://linkedin.com/in/jane"},
		{name: "http link kept", kind: fields.KindLink, raw: "http://example.com", want: "http://example.com"},
		{name: "https link kept", kind: fields.KindLink, raw: "HTTPS://Example.com", want: "HTTPS://Example.com"},
		{name: "mailto link kept", kind: fields.KindLink, raw: "mailto:x@y.z", want: "mailto:x@y.z"},
		{name: "whitespace link", kind: fields.KindLink, raw: "   ", want: "#"},
		{name: "not a link kind", kind: fields.KindText, raw: "x", want: "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LinkTarget(tt.kind, tt.raw))
		})
	}
}
