package preview

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CanvasID is the element wrapping the printable CV.
const CanvasID = "resume-canvas"

//go:embed layout.html
var defaultLayout string

// Document is the live preview. Operations addressing an id that is absent from the layout
// are no-ops and report false.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses the built-in preview layout.
func NewDocument() (*Document, error) {
	return ParseDocument(defaultLayout)
}

// ParseDocument parses a custom preview layout.
func ParseDocument(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview layout: %w", err)
	}
	return &Document{doc: doc}, nil
}

func (d *Document) find(id string) *goquery.Selection {
	return d.doc.Find("#" + id).First()
}

// Has reports whether the layout contains id.
func (d *Document) Has(id string) bool {
	return d.find(id).Length() > 0
}

// SetText replaces the content of id with escaped text.
func (d *Document) SetText(id, text string) bool {
	sel := d.find(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetText(text)
	return true
}

// SetAttr sets an attribute on id.
func (d *Document) SetAttr(id, key, val string) bool {
	sel := d.find(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetAttr(key, val)
	return true
}

// SetVisible shows or hides id through its display style.
func (d *Document) SetVisible(id string, visible bool) bool {
	if visible {
		return d.SetAttr(id, "style", "display: block")
	}
	return d.SetAttr(id, "style", "display: none")
}

// Replace swaps the children of id for the given nodes.
func (d *Document) Replace(id string, nodes ...*Node) bool {
	sel := d.find(id)
	if sel.Length() == 0 {
		return false
	}
	sel.Empty()
	for _, n := range nodes {
		sel.AppendNodes(n.HTML())
	}
	return true
}

// Text returns the text content of id.
func (d *Document) Text(id string) string {
	return d.find(id).Text()
}

// Attr returns an attribute of id.
func (d *Document) Attr(id, key string) (string, bool) {
	return d.find(id).Attr(key)
}

// Visible reports whether id is displayed. Missing elements are not visible.
func (d *Document) Visible(id string) bool {
	sel := d.find(id)
	if sel.Length() == 0 {
		return false
	}
	style, _ := sel.Attr("style")
	return !strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none")
}

// Items returns the text of the <li> children of id.
func (d *Document) Items(id string) []string {
	items := make([]string, 0)
	d.find(id).ChildrenFiltered("li").Each(func(_ int, s *goquery.Selection) {
		items = append(items, s.Text())
	})
	return items
}

// InnerHTML returns the markup inside id.
func (d *Document) InnerHTML(id string) (string, error) {
	sel := d.find(id)
	if sel.Length() == 0 {
		return "", nil
	}
	return sel.Html()
}

// Fragment returns the markup of the printable canvas.
func (d *Document) Fragment() (string, error) {
	return d.InnerHTML(CanvasID)
}

// SetScale applies a zoom percentage to the canvas.
func (d *Document) SetScale(percent int) {
	scale := strconv.FormatFloat(float64(percent)/100, 'f', -1, 64)
	d.SetAttr(CanvasID, "style", "transform: scale("+scale+")")
}

// Page returns the complete preview page.
func (d *Document) Page() (string, error) {
	return d.doc.Html()
}

