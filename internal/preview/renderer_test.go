package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jonathan/cv-builder/internal/fields"
)

type stubEntry struct {
	id     string
	values map[string]string
}

func (e stubEntry) EntryID() string          { return e.id }
func (e stubEntry) Value(name string) string { return e.values[name] }

func newTestRenderer(t *testing.T) (*Renderer, *Document) {
	t.Helper()
	doc, err := NewDocument()
	require.NoError(t, err)
	return NewRenderer(fields.Default(), doc), doc
}

func TestRender_PlainTextAndPlaceholder(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.Render("full-name", "  Jane Doe  ")
	assert.Equal(t, "Jane Doe", doc.Text("cv-name"))

	r.Render("full-name", "   ")
	assert.Equal(t, "Your Name", doc.Text("cv-name"))
}

func TestRender_EmailLink(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.Render("email", "a@b.com")
	href, ok := doc.Attr("cv-email", "href")
	require.True(t, ok)
	assert.Equal(t, "mailto:a@b.com", href)
	assert.Equal(t, "a@b.com", doc.Text("cv-email"))

	r.Render("email", "")
	href, _ = doc.Attr("cv-email", "href")
	assert.Equal(t, "#", href)
	assert.Equal(t, "email@example.com", doc.Text("cv-email"))
}

func TestRender_PhoneLink(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.Render("phone", "+1 (555) 123-4567")
	href, _ := doc.Attr("cv-phone", "href")
	assert.Equal(t, "tel:+15551234567", href)
	assert.Equal(t, "+1 (555) 123-4567", doc.Text("cv-phone"))
}

func TestRender_LinesField(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.Render("certs", "- One\n* Two\n\nThree")
	assert.Equal(t, []string{"One", "Two", "Three"}, doc.Items("cv-certs"))

	r.Render("certs", "")
	assert.Empty(t, doc.Items("cv-certs"))
}

func TestRender_SkillVisibility(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.Render("tech-languages", "Go, , Rust ")
	assert.Equal(t, "Go, Rust", doc.Text("cv-languages"))
	assert.True(t, doc.Visible("group-languages"))

	r.Render("tech-languages", " , ")
	assert.Equal(t, "", doc.Text("cv-languages"))
	assert.False(t, doc.Visible("group-languages"))
}

func TestRender_EscapesMarkup(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.Render("summary", "<script>alert(1)</script> & more")
	assert.Equal(t, "<script>alert(1)</script> & more", doc.Text("cv-summary"))

	inner, err := doc.InnerHTML("cv-summary")
	require.NoError(t, err)
	assert.Contains(t, inner, "&lt;script&gt;")
	assert.NotContains(t, inner, "<script>")
}

func TestRender_MissingTargetIsNoop(t *testing.T) {
	doc, err := ParseDocument(`<html><body><div id="resume-canvas"></div></body></html>`)
	require.NoError(t, err)
	r := NewRenderer(fields.Default(), doc)

	assert.NotPanics(t, func() {
		r.Render("full-name", "Jane")
		r.Render("email", "a@b.com")
		r.Render("tech-ai", "ML")
		r.Render("does-not-exist", "x")
		r.RenderGroup(fields.GroupExperience, []Entry{stubEntry{id: "1"}})
	})
	frag, err := doc.Fragment()
	require.NoError(t, err)
	assert.Empty(t, frag)
}

func TestRenderGroup_FallbacksAndPositions(t *testing.T) {
	r, doc := newTestRenderer(t)

	entries := []Entry{
		stubEntry{id: "a", values: map[string]string{"role": "Engineer", "description": "- Built\n\n* Shipped"}},
		stubEntry{id: "b", values: map[string]string{}},
	}
	r.RenderGroup(fields.GroupExperience, entries)

	sel := doc.doc.Find("#cv-experience-list > .cv-entry")
	require.Equal(t, 2, sel.Length())

	first := sel.Eq(0)
	assert.Equal(t, "0", first.AttrOr("data-position", ""))
	assert.Equal(t, "a", first.AttrOr("data-entry-id", ""))
	assert.Equal(t, "Engineer", first.Find(".cv-entry-header span").Eq(0).Text())
	assert.Equal(t, "Duration", first.Find(".cv-entry-header span").Eq(1).Text())
	assert.Equal(t, "Company", first.Find(".cv-entry-sub").Text())
	assert.Equal(t, 2, first.Find(".cv-entry-desc li").Length())

	second := sel.Eq(1)
	assert.Equal(t, "1", second.AttrOr("data-position", ""))
	assert.Equal(t, "Role", second.Find(".cv-entry-header span").Eq(0).Text())
	assert.Equal(t, "Description", second.Find(".cv-entry-desc li").Text())
}

func TestRenderGroup_Education(t *testing.T) {
	r, doc := newTestRenderer(t)

	r.RenderGroup(fields.GroupEducation, []Entry{
		stubEntry{id: "e", values: map[string]string{"degree": "BSc", "school": "MIT"}},
	})

	sel := doc.doc.Find("#cv-education-list .cv-entry")
	require.Equal(t, 1, sel.Length())
	assert.Equal(t, "MIT | GPA", sel.Find(".cv-entry-sub").Text())
	assert.Equal(t, "Year", sel.Find(".cv-entry-header span").Eq(1).Text())
}

func TestRenderGroup_Idempotent(t *testing.T) {
	r, doc := newTestRenderer(t)
	entries := []Entry{
		stubEntry{id: "p1", values: map[string]string{"title": "Site", "description": "Tools: Go"}},
		stubEntry{id: "p2", values: map[string]string{"title": "<App>"}},
	}

	r.RenderGroup(fields.GroupProjects, entries)
	first, err := doc.InnerHTML("cv-projects-list")
	require.NoError(t, err)

	r.RenderGroup(fields.GroupProjects, entries)
	second, err := doc.InnerHTML("cv-projects-list")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "&lt;App&gt;")
}

func TestRenderGroup_EmptyClears(t *testing.T) {
	r, doc := newTestRenderer(t)
	r.RenderGroup(fields.GroupProjects, []Entry{stubEntry{id: "x"}})
	r.RenderGroup(fields.GroupProjects, nil)

	inner, err := doc.InnerHTML("cv-projects-list")
	require.NoError(t, err)
	assert.Empty(t, inner)
}

func TestDocument_SetScaleAndPage(t *testing.T) {
	_, doc := newTestRenderer(t)

	doc.SetScale(110)
	style, _ := doc.Attr(CanvasID, "style")
	assert.Equal(t, "transform: scale(1.1)", style)

	page, err := doc.Page()
	require.NoError(t, err)
	assert.Contains(t, page, `id="resume-canvas"`)
	assert.Contains(t, page, "<!DOCTYPE html>")
}

func TestNodeHTML_TextEscaped(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, html.Render(&sb, El("p", Class("x"), Text("a < b")).HTML()))
	assert.Equal(t, `<p class="x">a &lt; b</p>`, sb.String())
}
