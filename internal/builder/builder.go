// Package builder is the CV editing controller. It owns the live form state and keeps
// the preview and the saved snapshot in step with every edit.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/cv-builder/internal/entries"
	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/logging"
	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultSaveTimeout bounds a single store write.
const DefaultSaveTimeout = 10 * time.Second

// Options configures a Builder. Store is required; everything else has a default.
type Options struct {
	Registry     *fields.Registry
	Store        store.Store
	Key          string
	SaveDelay    time.Duration
	ConfirmDelay time.Duration
	SaveTimeout  time.Duration
	Logger       *logrus.Logger
}

// Builder serializes all edits behind one mutex. The debounced save runs on its own
// goroutine and takes the same mutex only to read a snapshot.
type Builder struct {
	mu sync.Mutex

	// saveMu orders store writes. It is taken before mu, never after.
	saveMu sync.Mutex
	// changes counts edits (guarded by mu); savedChanges is the count last written
	// or discarded by a reset (guarded by saveMu).
	changes      uint64
	savedChanges uint64

	registry *fields.Registry
	values   map[string]string
	doc      *preview.Document
	renderer *preview.Renderer
	entries  *entries.Manager
	session  *session.State

	persister   *persistence.Persister
	saver       *persistence.Debouncer
	saveTimeout time.Duration

	// bulk suppresses per-change rendering and saving while a snapshot is applied.
	bulk bool

	log *logrus.Entry
}

// New creates a Builder with an empty form.
func New(opts Options) (*Builder, error) {
	if opts.Store == nil {
		return nil, errors.New("builder: store is required")
	}
	registry := opts.Registry
	if registry == nil {
		registry = fields.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	saveTimeout := opts.SaveTimeout
	if saveTimeout <= 0 {
		saveTimeout = DefaultSaveTimeout
	}

	doc, err := preview.NewDocument()
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(registry.Sections()))
	for _, s := range registry.Sections() {
		titles = append(titles, s.Title)
	}

	b := &Builder{
		registry:    registry,
		values:      make(map[string]string),
		doc:         doc,
		renderer:    preview.NewRenderer(registry, doc),
		entries:     entries.NewManager(registry),
		session:     session.New(titles, opts.ConfirmDelay),
		persister:   persistence.NewPersister(opts.Store, opts.Key),
		saveTimeout: saveTimeout,
		log:         logging.Component(logger, "builder"),
	}
	b.saver = persistence.NewDebouncer(opts.SaveDelay, b.autosave)
	b.entries.SetListener(b.onGroupChange)
	b.session.Nav.OnAdvance(func(active int, progress types.ProgressView) {
		b.log.WithFields(logrus.Fields{
			"active":   active,
			"progress": progress.Text,
		}).Debug("Section confirmed")
	})

	for _, id := range registry.FieldIDs() {
		b.values[id] = ""
		b.renderer.Render(id, "")
	}
	return b, nil
}

func (b *Builder) onGroupChange(group fields.GroupName, kind entries.ChangeKind) {
	if b.bulk {
		return
	}
	b.renderGroupLocked(group)
	b.markDirtyLocked()
}

func (b *Builder) markDirtyLocked() {
	b.changes++
	b.saver.Trigger()
}

func (b *Builder) renderGroupLocked(group fields.GroupName) {
	list, err := b.entries.Entries(group)
	if err != nil {
		return
	}
	items := make([]preview.Entry, len(list))
	for i, e := range list {
		items[i] = e
	}
	b.renderer.RenderGroup(group, items)
}

// Init restores the saved snapshot, or fills the form with sample content when nothing
// usable is stored. It reports whether saved data was restored.
func (b *Builder) Init(ctx context.Context) (bool, error) {
	loaded, err := b.Load(ctx)
	var snapErr *persistence.SnapshotError
	switch {
	case errors.As(err, &snapErr):
		b.log.WithError(err).Warn("Stored snapshot is unreadable, using sample data")
	case err != nil:
		return false, err
	case loaded:
		return true, nil
	}
	b.Prefill()
	return false, nil
}

// Load replaces the form with the stored snapshot. It returns false when nothing is stored.
// A stored value that cannot be decoded yields a *persistence.SnapshotError and leaves the
// form untouched.
func (b *Builder) Load(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, b.saveTimeout)
	defer cancel()

	snap, found, err := b.persister.Load(ctx)
	if err != nil || !found {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.applyLocked(snap)
	b.log.WithFields(logrus.Fields{
		"key":     b.persister.Key(),
		"entries": snap.EntryCount(),
	}).Info("Loaded saved resume")
	return true, nil
}

// Prefill clears the form, fills it with sample content and schedules a save.
func (b *Builder) Prefill() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applyLocked(SampleSnapshot())
	b.markDirtyLocked()
	b.log.Info("Prefilled form with sample data")
}

// applyLocked replaces all values and entries with snap. Ids, groups and keys the
// registry does not know are skipped.
func (b *Builder) applyLocked(snap *types.Snapshot) {
	b.bulk = true
	defer func() { b.bulk = false }()

	for _, id := range b.registry.FieldIDs() {
		b.values[id] = ""
	}
	for id, v := range snap.SimpleInputs {
		if !b.registry.Known(id) {
			b.log.WithField("field", id).Debug("Skipping unknown stored field")
			continue
		}
		b.values[id] = v
	}
	for _, id := range b.registry.FieldIDs() {
		b.renderer.Render(id, b.values[id])
	}

	for _, group := range b.entries.GroupNames() {
		_ = b.entries.Clear(group)
		schema, _ := b.entries.Schema(group)
		for _, stored := range snap.DynamicLists[string(group)] {
			e, err := b.entries.AddEntry(group)
			if err != nil {
				continue
			}
			values := make(map[string]string, len(stored))
			for key, v := range stored {
				if sf, ok := schema.SubFieldByKey(key); ok {
					values[sf.Name] = v
				}
			}
			_ = b.entries.SetFields(group, e.ID, values)
		}
		b.renderGroupLocked(group)
	}
	for name := range snap.DynamicLists {
		if _, ok := b.registry.Group(fields.GroupName(name)); !ok {
			b.log.WithField("group", name).Debug("Skipping unknown stored group")
		}
	}
}

// SetField assigns a simple or skill field, re-renders it and schedules a save.
func (b *Builder) SetField(id, value string) error {
	if !b.registry.Known(id) {
		return fmt.Errorf("%w: %s", fields.ErrUnknownField, id)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[id] = value
	b.renderer.Render(id, value)
	b.markDirtyLocked()
	return nil
}

// Field returns the raw value of a simple or skill field.
func (b *Builder) Field(id string) (string, error) {
	if !b.registry.Known(id) {
		return "", fmt.Errorf("%w: %s", fields.ErrUnknownField, id)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.values[id], nil
}

// Fields returns a copy of every simple and skill field value.
func (b *Builder) Fields() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]string, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// Registry returns the field registry in use.
func (b *Builder) Registry() *fields.Registry {
	return b.registry
}

func parseEntryID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", entries.ErrEntryNotFound, id)
	}
	return parsed, nil
}

func (b *Builder) viewLocked(group fields.GroupName, e *entries.Entry) types.EntryView {
	pos, _ := b.entries.Position(group, e.ID)
	return types.EntryView{
		ID:       e.EntryID(),
		Group:    string(group),
		Position: pos,
		Fields:   e.Values(),
	}
}

// AddEntry appends an empty entry to group.
func (b *Builder) AddEntry(group string) (types.EntryView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.entries.AddEntry(fields.GroupName(group))
	if err != nil {
		return types.EntryView{}, err
	}
	return b.viewLocked(e.Group, e), nil
}

// RemoveEntry detaches an entry from group.
func (b *Builder) RemoveEntry(group, id string) error {
	entryID, err := parseEntryID(id)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries.RemoveEntry(fields.GroupName(group), entryID)
}

// SetEntryField assigns one sub-field of an entry.
func (b *Builder) SetEntryField(group, id, name, value string) (types.EntryView, error) {
	return b.SetEntryFields(group, id, map[string]string{name: value})
}

// SetEntryFields assigns several sub-fields of an entry at once.
func (b *Builder) SetEntryFields(group, id string, values map[string]string) (types.EntryView, error) {
	entryID, err := parseEntryID(id)
	if err != nil {
		return types.EntryView{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	g := fields.GroupName(group)
	if err := b.entries.SetFields(g, entryID, values); err != nil {
		return types.EntryView{}, err
	}
	e, err := b.entries.Get(g, entryID)
	if err != nil {
		return types.EntryView{}, err
	}
	return b.viewLocked(g, e), nil
}

// Entries returns the entries of group in display order.
func (b *Builder) Entries(group string) ([]types.EntryView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	g := fields.GroupName(group)
	list, err := b.entries.Entries(g)
	if err != nil {
		return nil, err
	}
	views := make([]types.EntryView, len(list))
	for i, e := range list {
		views[i] = types.EntryView{ID: e.EntryID(), Group: group, Position: i, Fields: e.Values()}
	}
	return views, nil
}

// Snapshot captures every field value and every group, with sub-fields under their
// persisted keys.
func (b *Builder) Snapshot() *types.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Builder) snapshotLocked() *types.Snapshot {
	snap := types.NewSnapshot()
	for _, id := range b.registry.FieldIDs() {
		snap.SimpleInputs[id] = b.values[id]
	}
	for _, group := range b.entries.GroupNames() {
		schema, _ := b.entries.Schema(group)
		list, _ := b.entries.Entries(group)
		stored := make([]map[string]string, 0, len(list))
		for _, e := range list {
			m := make(map[string]string, len(schema.SubFields))
			for _, sf := range schema.SubFields {
				m[sf.Key] = e.Value(sf.Name)
			}
			stored = append(stored, m)
		}
		snap.DynamicLists[string(group)] = stored
	}
	return snap
}

// Save writes the snapshot now and drops any scheduled save.
func (b *Builder) Save(ctx context.Context) error {
	b.saver.Cancel()
	return b.save(ctx, true)
}

// save writes the current snapshot. Unless force is set, it skips the write when no
// edit happened since the last save or reset.
func (b *Builder) save(ctx context.Context, force bool) error {
	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	b.mu.Lock()
	snap := b.snapshotLocked()
	changes := b.changes
	b.mu.Unlock()

	if !force && changes == b.savedChanges {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.saveTimeout)
	defer cancel()
	if err := b.persister.Save(ctx, snap); err != nil {
		return err
	}
	b.savedChanges = changes
	b.log.WithFields(logrus.Fields{
		"key":     b.persister.Key(),
		"entries": snap.EntryCount(),
	}).Debug("Progress saved")
	return nil
}

func (b *Builder) autosave() {
	if err := b.save(context.Background(), false); err != nil {
		b.log.WithError(err).Error("Auto-save failed")
	}
}

// SavePending reports whether a debounced save is scheduled.
func (b *Builder) SavePending() bool {
	return b.saver.Pending()
}

// Flush runs a scheduled save immediately.
func (b *Builder) Flush() {
	b.saver.Flush()
}

// Reset deletes the stored snapshot and drops any scheduled save. The live form is kept.
func (b *Builder) Reset(ctx context.Context) error {
	b.saver.Cancel()

	b.saveMu.Lock()
	defer b.saveMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, b.saveTimeout)
	defer cancel()
	if err := b.persister.Reset(ctx); err != nil {
		return err
	}
	b.mu.Lock()
	b.savedChanges = b.changes
	b.mu.Unlock()
	return nil
}

// Close flushes a scheduled save and stops all timers. The store is not closed.
func (b *Builder) Close() {
	b.saver.Flush()
	b.saver.Stop()
	b.session.Close()
}

// PreviewFragment returns the markup of the printable CV.
func (b *Builder) PreviewFragment() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Fragment()
}

// PreviewPage returns the complete preview page with the current zoom applied.
func (b *Builder) PreviewPage() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Page()
}

// PreviewText returns the text of a preview element, for inspection.
func (b *Builder) PreviewText(id string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Text(id)
}

// PreviewItems returns the list items of a preview element, for inspection.
func (b *Builder) PreviewItems(id string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.doc.Items(id)
}

func (b *Builder) applyZoom(level int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.doc.SetScale(level)
	return level
}

// ZoomIn enlarges the preview by one step.
func (b *Builder) ZoomIn() int {
	return b.applyZoom(b.session.Zoom.In())
}

// ZoomOut shrinks the preview by one step.
func (b *Builder) ZoomOut() int {
	return b.applyZoom(b.session.Zoom.Out())
}

// ZoomReset restores the default zoom.
func (b *Builder) ZoomReset() int {
	return b.applyZoom(b.session.Zoom.Reset())
}

// SelectSection makes one form section active.
func (b *Builder) SelectSection(index int) error {
	return b.session.Nav.Select(index)
}

// ConfirmSection confirms a form section; the next one activates after the confirm delay.
func (b *Builder) ConfirmSection(index int) error {
	return b.session.Nav.Confirm(index)
}

// Session returns the zoom and navigation state.
func (b *Builder) Session() types.SessionView {
	return b.session.View()
}
