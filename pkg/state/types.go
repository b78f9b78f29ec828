package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-styles/pkg/activity"
)

var (
	ErrETagMismatch = errors.New("state: etag mismatch")
	ErrNotFound     = errors.New("state: snapshot not found")
	// ErrNotify reports a snapshot that was saved but whose activity event
	// could not be delivered.
	ErrNotify = errors.New("state: snapshot saved but notification failed")
)

// DefaultPart is the package part a Ref points at when Part is empty.
const DefaultPart = "xl/styles.xml"

// Ref identifies one persisted snapshot: a document and the styles part
// inside it.
type Ref struct {
	Document string `json:"document"`
	Part     string `json:"part,omitempty"`
}

// Identifier returns the canonical storage key for r.
func (r Ref) Identifier() (string, error) {
	document := strings.Trim(strings.TrimSpace(r.Document), "/")
	if document == "" {
		return "", fmt.Errorf("state: document is required")
	}
	return document + "#" + r.part(), nil
}

func (r Ref) part() string {
	part := strings.Trim(strings.TrimSpace(r.Part), "/")
	if part == "" {
		return DefaultPart
	}
	return part
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one snapshot for a single reference.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Validator is implemented by snapshots that can check their own invariants.
type Validator interface {
	Validate() error
}

// Mutator changes a snapshot in place.
type Mutator[T any] func(*T) error

// Manager runs load/mutate/save cycles against a Store.
type Manager[T any] struct {
	Store Store[T]
	Hooks activity.Hooks
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

func (m Manager[T]) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m Manager[T]) newID() string {
	if m.NewID != nil {
		return m.NewID()
	}
	return uuid.NewString()
}

// Load returns the stored snapshot for ref or ErrNotFound.
func (m Manager[T]) Load(ctx context.Context, ref Ref) (T, Meta, error) {
	var zero T
	if m.Store == nil {
		return zero, Meta{}, fmt.Errorf("state: store is required")
	}
	key, err := ref.Identifier()
	if err != nil {
		return zero, Meta{}, err
	}
	snapshot, meta, ok, err := m.Store.Load(ctx, ref)
	if err != nil {
		return zero, Meta{}, fmt.Errorf("state: load %q: %w", key, err)
	}
	if !ok {
		return zero, Meta{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return snapshot, meta, nil
}

// Mutate loads one snapshot (the zero value when absent), applies fn,
// validates the result and saves it. A non-empty meta.ETag must match the
// stored ETag. Every save gets a fresh SnapshotID unless meta carries one.
func (m Manager[T]) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator[T]) (T, Meta, error) {
	var zero T
	if m.Store == nil {
		return zero, Meta{}, fmt.Errorf("state: store is required")
	}
	if fn == nil {
		return zero, Meta{}, fmt.Errorf("state: mutator is required")
	}
	key, err := ref.Identifier()
	if err != nil {
		return zero, Meta{}, err
	}

	snapshot, loadedMeta, ok, err := m.Store.Load(ctx, ref)
	if err != nil {
		return zero, Meta{}, fmt.Errorf("state: load %q: %w", key, err)
	}
	if !ok {
		snapshot = zero
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return zero, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(&snapshot); err != nil {
		return zero, loadedMeta, err
	}
	if validator, ok := any(snapshot).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return zero, loadedMeta, err
		}
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	if meta.SnapshotID == "" {
		saveMeta.SnapshotID = m.newID()
	}
	if meta.UpdatedAt.IsZero() {
		saveMeta.UpdatedAt = m.now()
	}
	savedMeta, err := m.Store.Save(ctx, ref, snapshot, saveMeta)
	if err != nil {
		return zero, loadedMeta, fmt.Errorf("state: save %q: %w", key, err)
	}

	if err := m.notify(ctx, key, ref, savedMeta); err != nil {
		return snapshot, savedMeta, fmt.Errorf("%w: %w", ErrNotify, err)
	}
	return snapshot, savedMeta, nil
}

func (m Manager[T]) notify(ctx context.Context, key string, ref Ref, meta Meta) error {
	emitter := activity.NewEmitter(m.Hooks, activity.Config{Enabled: true, Document: ref.Document})
	if !emitter.Enabled() {
		return nil
	}
	return emitter.Emit(ctx, activity.BuildSnapshotSavedEvent(activity.StyleEventInput{
		ObjectID:      key,
		SnapshotID:    meta.SnapshotID,
		Index:         -1,
		PreviousIndex: -1,
		OccurredAt:    meta.UpdatedAt,
		Metadata: map[string]any{
			"part": ref.part(),
			"etag": meta.ETag,
		},
	}))
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
