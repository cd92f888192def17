package entries

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/fields"
)

// ChangeKind describes what happened to a group.
type ChangeKind string

// Change kinds passed to a Listener.
const (
	ChangeAdded   ChangeKind = "added"
	ChangeEdited  ChangeKind = "edited"
	ChangeRemoved ChangeKind = "removed"
	ChangeCleared ChangeKind = "cleared"
)

// Listener is notified after every mutation of a group.
type Listener func(group fields.GroupName, kind ChangeKind)

// Manager owns one Group per registry schema. It is not safe for concurrent use; callers
// serialize access.
type Manager struct {
	groups   map[fields.GroupName]*Group
	order    []fields.GroupName
	listener Listener
}

// NewManager creates empty groups for every schema of the registry.
func NewManager(registry *fields.Registry) *Manager {
	m := &Manager{groups: make(map[fields.GroupName]*Group)}
	for _, schema := range registry.Groups() {
		m.groups[schema.Name] = newGroup(schema)
		m.order = append(m.order, schema.Name)
	}
	return m
}

// SetListener installs the change listener. A nil listener disables notifications.
func (m *Manager) SetListener(l Listener) {
	m.listener = l
}

func (m *Manager) notify(group fields.GroupName, kind ChangeKind) {
	if m.listener != nil {
		m.listener(group, kind)
	}
}

func (m *Manager) group(name fields.GroupName) (*Group, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	return g, nil
}

// GroupNames returns the managed groups in registry order.
func (m *Manager) GroupNames() []fields.GroupName {
	return append([]fields.GroupName(nil), m.order...)
}

// Schema returns the schema of a managed group.
func (m *Manager) Schema(name fields.GroupName) (fields.GroupSchema, error) {
	g, err := m.group(name)
	if err != nil {
		return fields.GroupSchema{}, err
	}
	return g.Schema(), nil
}

// AddEntry appends an empty entry at the tail of group and returns it for population.
func (m *Manager) AddEntry(group fields.GroupName) (*Entry, error) {
	g, err := m.group(group)
	if err != nil {
		return nil, err
	}
	e := g.add()
	m.notify(group, ChangeAdded)
	return e, nil
}

// RemoveEntry detaches an entry. Later entries move up by one position.
func (m *Manager) RemoveEntry(group fields.GroupName, id uuid.UUID) error {
	g, err := m.group(group)
	if err != nil {
		return err
	}
	if !g.remove(id) {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	m.notify(group, ChangeRemoved)
	return nil
}

// SetField assigns one sub-field of an entry.
func (m *Manager) SetField(group fields.GroupName, id uuid.UUID, name, value string) error {
	g, err := m.group(group)
	if err != nil {
		return err
	}
	if err := g.set(id, name, value); err != nil {
		return err
	}
	m.notify(group, ChangeEdited)
	return nil
}

// SetFields assigns several sub-fields at once. Unknown names fail before any assignment.
func (m *Manager) SetFields(group fields.GroupName, id uuid.UUID, values map[string]string) error {
	g, err := m.group(group)
	if err != nil {
		return err
	}
	if _, ok := g.entries[id]; !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	for name := range values {
		if _, ok := g.schema.SubField(name); !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownSubField, group, name)
		}
	}
	for name, v := range values {
		g.entries[id].values[name] = v
	}
	m.notify(group, ChangeEdited)
	return nil
}

// Clear removes every entry of a group.
func (m *Manager) Clear(group fields.GroupName) error {
	g, err := m.group(group)
	if err != nil {
		return err
	}
	g.clear()
	m.notify(group, ChangeCleared)
	return nil
}

// Entries returns the entries of a group in display order.
func (m *Manager) Entries(group fields.GroupName) ([]*Entry, error) {
	g, err := m.group(group)
	if err != nil {
		return nil, err
	}
	return g.list(), nil
}

// Get returns one entry.
func (m *Manager) Get(group fields.GroupName, id uuid.UUID) (*Entry, error) {
	g, err := m.group(group)
	if err != nil {
		return nil, err
	}
	e, ok := g.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, nil
}

// Position returns the display position of an entry.
func (m *Manager) Position(group fields.GroupName, id uuid.UUID) (int, error) {
	g, err := m.group(group)
	if err != nil {
		return -1, err
	}
	pos, ok := g.position(id)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return pos, nil
}
