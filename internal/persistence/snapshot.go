// Package persistence saves and restores the form snapshot through a durable store.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/store"
	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultKey is the store key the snapshot lives under.
const DefaultKey = "cv_builder_data"

// SnapshotError represents stored data that cannot be decoded into a snapshot.
type SnapshotError struct {
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid snapshot: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid snapshot: %s", e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// Encode serializes a snapshot to JSON.
func Encode(snap *types.Snapshot) ([]byte, error) {
	if snap == nil {
		snap = types.NewSnapshot()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode checks data against the snapshot schema and unmarshals it.
func Decode(data []byte) (*types.Snapshot, error) {
	if err := schemas.ValidateSnapshot(data); err != nil {
		return nil, &SnapshotError{Message: "schema check failed", Cause: err}
	}

	snap := types.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, &SnapshotError{Message: "failed to unmarshal", Cause: err}
	}
	if snap.SimpleInputs == nil {
		snap.SimpleInputs = make(map[string]string)
	}
	if snap.DynamicLists == nil {
		snap.DynamicLists = make(map[string][]map[string]string)
	}
	return snap, nil
}

// Persister reads and writes the snapshot under a single key.
type Persister struct {
	store store.Store
	key   string
}

// NewPersister creates a Persister. An empty key selects DefaultKey.
func NewPersister(s store.Store, key string) *Persister {
	if key == "" {
		key = DefaultKey
	}
	return &Persister{store: s, key: key}
}

// Key returns the store key in use.
func (p *Persister) Key() string {
	return p.key
}

// Save writes the snapshot, replacing any previous value.
func (p *Persister) Save(ctx context.Context, snap *types.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := p.store.Set(ctx, p.key, string(data)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. found is false when nothing is stored.
// Stored text that does not decode yields a *SnapshotError.
func (p *Persister) Load(ctx context.Context) (snap *types.Snapshot, found bool, err error) {
	raw, found, err := p.Raw(ctx)
	if err != nil || !found {
		return nil, false, err
	}
	snap, err = Decode([]byte(raw))
	if err != nil {
		return nil, true, err
	}
	return snap, true, nil
}

// Raw returns the stored JSON text as-is.
func (p *Persister) Raw(ctx context.Context) (string, bool, error) {
	raw, found, err := p.store.Get(ctx, p.key)
	if err != nil {
		return "", false, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return raw, found, nil
}

// Reset deletes the stored snapshot.
func (p *Persister) Reset(ctx context.Context) error {
	if err := p.store.Delete(ctx, p.key); err != nil {
		return fmt.Errorf("failed to reset snapshot: %w", err)
	}
	return nil
}
