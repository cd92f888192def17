// Package fields defines the static schema of the CV form: simple fields, skill fields,
// repeatable entry groups and the ordered form sections.
package fields

import "errors"

// ErrUnknownField is returned when a field id is not part of the registry.
var ErrUnknownField = errors.New("unknown field")

// Kind selects the formatting rule applied when a simple field is mirrored to the preview.
type Kind string

// Supported simple field kinds.
const (
	KindText     Kind = "text"
	KindLines    Kind = "lines"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindLocation Kind = "location"
	KindLink     Kind = "link"
)

// IsLink reports whether the kind carries an href target in the preview.
func (k Kind) IsLink() bool {
	switch k {
	case KindEmail, KindPhone, KindLocation, KindLink:
		return true
	}
	return false
}

// SimpleField is a single-value input mirrored to exactly one preview node.
type SimpleField struct {
	ID          string
	Target      string
	Placeholder string
	Kind        Kind
	Section     string
}

// SkillField is a comma-separated input whose preview container is hidden when empty.
type SkillField struct {
	ID        string
	Label     string
	Target    string
	Container string
	Section   string
}

// Section is one collapsible step of the form.
type Section struct {
	ID    string
	Title string
}

// Registry holds the field and group schema used by the renderer, the entry manager and
// the persistence layer.
type Registry struct {
	simple   []SimpleField
	skills   []SkillField
	groups   []GroupSchema
	sections []Section

	simpleByID map[string]int
	skillByID  map[string]int
	groupByKey map[GroupName]int
}

// New builds a registry from explicit definitions. Later duplicates of an id replace
// earlier ones in lookups but keep their declared position.
func New(simple []SimpleField, skills []SkillField, groups []GroupSchema, sections []Section) *Registry {
	r := &Registry{
		simple:     simple,
		skills:     skills,
		groups:     groups,
		sections:   sections,
		simpleByID: make(map[string]int, len(simple)),
		skillByID:  make(map[string]int, len(skills)),
		groupByKey: make(map[GroupName]int, len(groups)),
	}
	for i, f := range simple {
		r.simpleByID[f.ID] = i
	}
	for i, f := range skills {
		r.skillByID[f.ID] = i
	}
	for i, g := range groups {
		r.groupByKey[g.Name] = i
	}
	return r
}

// Simple returns the simple field with the given id.
func (r *Registry) Simple(id string) (SimpleField, bool) {
	i, ok := r.simpleByID[id]
	if !ok {
		return SimpleField{}, false
	}
	return r.simple[i], true
}

// Skill returns the skill field with the given id.
func (r *Registry) Skill(id string) (SkillField, bool) {
	i, ok := r.skillByID[id]
	if !ok {
		return SkillField{}, false
	}
	return r.skills[i], true
}

// Known reports whether id names a simple or skill field.
func (r *Registry) Known(id string) bool {
	_, simple := r.simpleByID[id]
	_, skill := r.skillByID[id]
	return simple || skill
}

// Group returns the schema of the named entry group.
func (r *Registry) Group(name GroupName) (GroupSchema, bool) {
	i, ok := r.groupByKey[name]
	if !ok {
		return GroupSchema{}, false
	}
	return r.groups[i], true
}

// SimpleFields returns simple fields in declaration order.
func (r *Registry) SimpleFields() []SimpleField {
	return append([]SimpleField(nil), r.simple...)
}

// SkillFields returns skill fields in declaration order.
func (r *Registry) SkillFields() []SkillField {
	return append([]SkillField(nil), r.skills...)
}

// FieldIDs returns every simple and skill field id, simple fields first.
func (r *Registry) FieldIDs() []string {
	ids := make([]string, 0, len(r.simple)+len(r.skills))
	for _, f := range r.simple {
		ids = append(ids, f.ID)
	}
	for _, f := range r.skills {
		ids = append(ids, f.ID)
	}
	return ids
}

// Groups returns entry group schemas in declaration order.
func (r *Registry) Groups() []GroupSchema {
	return append([]GroupSchema(nil), r.groups...)
}

// Sections returns the form sections in display order.
func (r *Registry) Sections() []Section {
	return append([]Section(nil), r.sections...)
}
