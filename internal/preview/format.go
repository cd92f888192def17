// Package preview renders form values into the CV preview document.
package preview

import (
	"net/url"
	"strings"

	"github.com/jonathan/cv-builder/internal/fields"
)

// InertHref is the link target used when a link field is empty.
const InertHref = "#"

// MapSearchURL prefixes the percent-encoded location query.
const MapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// bulletMarkers are the leading list markers stripped from each line.
var bulletMarkers = []string{"-", "*", "•"}

// recognizedSchemes are the link prefixes left untouched by LinkTarget.
var recognizedSchemes = []string{"http://", "https://", "mailto:", "tel:", "ftp://"}

// PlainText returns the trimmed value, or placeholder when it is empty.
func PlainText(raw, placeholder string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return placeholder
}

// LinesToItems splits raw on newlines into list items. Lines are trimmed, blank lines are
// dropped and one leading bullet marker is removed from each line.
func LinesToItems(raw string) []string {
	items := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = stripBullet(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

func stripBullet(line string) string {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}
	return line
}

// CommaList normalizes a comma-separated value into "a, b, c".
func CommaList(raw string) string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return strings.Join(tokens, ", ")
}

// LinkTarget computes the href of a link field. Empty values map to InertHref.
func LinkTarget(kind fields.Kind, raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return InertHref
	}

	switch kind {
	case fields.KindEmail:
		return "mailto:" + v
	case fields.KindPhone:
		return "tel:" + cleanPhone(v)
	case fields.KindLocation:
		return MapSearchURL + percentEncode(v)
	case fields.KindLink:
		if hasScheme(v) {
			return v
		}
		return "https://" + v
	default:
		return InertHref
	}
}

func cleanPhone(v string) string {
	var sb strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '+' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// percentEncode encodes v as a URI component (spaces become %20, not +).
func percentEncode(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

func hasScheme(v string) bool {
	lower := strings.ToLower(v)
	for _, s := range recognizedSchemes {
		if strings.HasPrefix(lower, s) {
			return true
		}
	}
	return false
}
