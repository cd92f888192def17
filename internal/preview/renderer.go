package preview

import (
	"strconv"
	"strings"

	"github.com/jonathan/cv-builder/internal/fields"
)

// Entry is the read view of a list entry needed to render it.
type Entry interface {
	EntryID() string
	Value(name string) string
}

// Renderer mirrors field values and entry groups into a Document.
type Renderer struct {
	registry *fields.Registry
	doc      *Document
}

// NewRenderer creates a renderer over doc.
func NewRenderer(registry *fields.Registry, doc *Document) *Renderer {
	return &Renderer{registry: registry, doc: doc}
}

// Render updates the preview node of fieldID from rawValue. Unknown ids and targets missing
// from the layout are ignored.
func (r *Renderer) Render(fieldID, rawValue string) {
	if f, ok := r.registry.Simple(fieldID); ok {
		r.renderSimple(f, rawValue)
		return
	}
	if s, ok := r.registry.Skill(fieldID); ok {
		r.renderSkill(s, rawValue)
	}
}

func (r *Renderer) renderSimple(f fields.SimpleField, raw string) {
	if f.Kind == fields.KindLines {
		r.doc.Replace(f.Target, listItems(LinesToItems(raw))...)
		return
	}

	if !r.doc.SetText(f.Target, PlainText(raw, f.Placeholder)) {
		return
	}
	if f.Kind.IsLink() {
		r.doc.SetAttr(f.Target, "href", LinkTarget(f.Kind, raw))
	}
}

func (r *Renderer) renderSkill(s fields.SkillField, raw string) {
	formatted := CommaList(raw)
	if !r.doc.SetText(s.Target, formatted) {
		return
	}
	r.doc.SetVisible(s.Container, formatted != "")
}

func listItems(items []string) []*Node {
	nodes := make([]*Node, len(items))
	for i, item := range items {
		nodes[i] = El("li", nil, Text(item))
	}
	return nodes
}

// RenderGroup rebuilds the whole preview fragment of a group from entries, in order.
func (r *Renderer) RenderGroup(group fields.GroupName, entries []Entry) {
	schema, ok := r.registry.Group(group)
	if !ok || !r.doc.Has(schema.Preview) {
		return
	}

	nodes := make([]*Node, len(entries))
	for i, e := range entries {
		nodes[i] = EntryNode(schema, i, e)
	}
	r.doc.Replace(schema.Preview, nodes...)
}

// EntryNode builds the preview node of one entry at position pos.
func EntryNode(schema fields.GroupSchema, pos int, e Entry) *Node {
	value := func(name string) string {
		sf, ok := schema.SubField(name)
		if !ok {
			return ""
		}
		if v := e.Value(name); strings.TrimSpace(v) != "" {
			return v
		}
		return sf.Fallback
	}

	var children []*Node
	switch schema.Layout {
	case fields.LayoutExperience:
		children = []*Node{
			header(value("role"), value("duration")),
			El("div", Class("cv-entry-sub"), Text(value("company"))),
			List("cv-entry-desc", LinesToItems(value("description"))),
		}
	case fields.LayoutEducation:
		children = []*Node{
			header(value("degree"), value("year")),
			El("div", Class("cv-entry-sub"), Text(value("school")+" | "+value("gpa"))),
		}
	case fields.LayoutProject:
		children = []*Node{
			header(value("title")),
			List("cv-entry-desc", LinesToItems(value("description"))),
		}
	default:
		for _, sf := range schema.SubFields {
			children = append(children, El("div", Class("cv-entry-sub"), Text(value(sf.Name))))
		}
	}

	attrs := []Attr{
		{Key: "class", Val: "cv-entry"},
		{Key: "data-entry-id", Val: e.EntryID()},
		{Key: "data-position", Val: strconv.Itoa(pos)},
	}
	return El("div", attrs, children...)
}

func header(spans ...string) *Node {
	h := El("div", Class("cv-entry-header"))
	for _, s := range spans {
		h.Children = append(h.Children, El("span", nil, Text(s)))
	}
	return h
}
