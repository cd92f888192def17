// Package entries manages the repeatable entry groups of the CV (experience, education,
// projects). Entries are kept in an arena keyed by a generated id; the display position is
// derived from an explicit order list.
package entries

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/fields"
)

// Lookup errors.
var (
	ErrUnknownGroup    = errors.New("unknown entry group")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrUnknownSubField = errors.New("unknown sub-field")
)

// Entry is one structured record of a group.
type Entry struct {
	ID     uuid.UUID
	Group  fields.GroupName
	values map[string]string
}

// EntryID returns the entry id as a string.
func (e *Entry) EntryID() string {
	return e.ID.String()
}

// Value returns the value of a sub-field, empty when unset.
func (e *Entry) Value(name string) string {
	return e.values[name]
}

// Values returns a copy of all sub-field values keyed by name.
func (e *Entry) Values() map[string]string {
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Group is an ordered collection of entries sharing one schema.
type Group struct {
	schema  fields.GroupSchema
	entries map[uuid.UUID]*Entry
	order   []uuid.UUID
}

func newGroup(schema fields.GroupSchema) *Group {
	return &Group{
		schema:  schema,
		entries: make(map[uuid.UUID]*Entry),
	}
}

// Schema returns the group schema.
func (g *Group) Schema() fields.GroupSchema {
	return g.schema
}

// add appends an entry with every schema sub-field set to "".
func (g *Group) add() *Entry {
	e := &Entry{
		ID:     newID(),
		Group:  g.schema.Name,
		values: make(map[string]string, len(g.schema.SubFields)),
	}
	for _, sf := range g.schema.SubFields {
		e.values[sf.Name] = ""
	}
	g.entries[e.ID] = e
	g.order = append(g.order, e.ID)
	return e
}

func (g *Group) remove(id uuid.UUID) bool {
	if _, ok := g.entries[id]; !ok {
		return false
	}
	delete(g.entries, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

func (g *Group) clear() {
	g.entries = make(map[uuid.UUID]*Entry)
	g.order = nil
}

// list returns entries in display order.
func (g *Group) list() []*Entry {
	out := make([]*Entry, len(g.order))
	for i, id := range g.order {
		out[i] = g.entries[id]
	}
	return out
}

func (g *Group) position(id uuid.UUID) (int, bool) {
	for i, oid := range g.order {
		if oid == id {
			return i, true
		}
	}
	return -1, false
}

func (g *Group) set(id uuid.UUID, name, value string) error {
	e, ok := g.entries[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if _, ok := g.schema.SubField(name); !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownSubField, g.schema.Name, name)
	}
	e.values[name] = value
	return nil
}

// newID generates a time-ordered id, falling back to a random one.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
