package rendering

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// inertHref stands in for href="#" while the policy runs. The policy drops a bare "#"
// because it parses to an empty URL.
const inertHref = "#cv-inert-link"

var (
	exportPolicyOnce sync.Once
	exportPolicy     *bluemonday.Policy
)

// SanitizeFragment strips everything from preview markup that the exported document
// does not need: scripts, event handlers, unknown elements and unsafe URLs.
func SanitizeFragment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	clean := exportSanitizer().Sanitize(markInertLinks(trimmed))
	return strings.TrimSpace(strings.ReplaceAll(clean, `href="`+inertHref+`"`, `href="#"`))
}

// markInertLinks swaps href="#" for inertHref on every anchor.
func markInertLinks(markup string) string {
	if !strings.Contains(markup, "#") {
		return markup
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	inert := doc.Find(`a[href="#"]`)
	if inert.Length() == 0 {
		return markup
	}
	inert.SetAttr("href", inertHref)
	out, err := doc.Find("body").Html()
	if err != nil {
		return markup
	}
	return out
}

func exportSanitizer() *bluemonday.Policy {
	exportPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"header", "section", "div", "span", "p", "h1", "h2", "h3",
			"strong", "em", "b", "i", "br", "ul", "ol", "li",
		)
		policy.AllowAttrs("id", "class").Globally()
		policy.AllowDataAttributes()
		policy.AllowStyles("display").MatchingEnum("block", "none").Globally()

		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto", "tel", "ftp")
		policy.AllowRelativeURLs(true)
		policy.RequireParseableURLs(true)

		exportPolicy = policy
	})
	return exportPolicy
}
