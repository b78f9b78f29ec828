package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-styles/layering"
)

// MemoryStore is an in-memory Store for tests and examples. Snapshots are
// deep-copied on the way in and out, and every save bumps the ETag.
type MemoryStore[T any] struct {
	mu       sync.RWMutex
	records  map[string]memoryRecord[T]
	revision int
}

type memoryRecord[T any] struct {
	snapshot T
	meta     Meta
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: map[string]memoryRecord[T]{}}
}

func (s *MemoryStore[T]) Load(_ context.Context, ref Ref) (T, Meta, bool, error) {
	var zero T
	key, err := ref.Identifier()
	if err != nil {
		return zero, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return zero, Meta{}, false, nil
	}
	return layering.Clone(record.snapshot), cloneMeta(record.meta), true, nil
}

// Save stores snapshot. When a record exists and meta carries an ETag, the
// ETag must match the stored one.
func (s *MemoryStore[T]) Save(_ context.Context, ref Ref, snapshot T, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok && meta.ETag != "" && meta.ETag != existing.meta.ETag {
		return Meta{}, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, existing.meta.ETag)
	}
	s.revision++
	stored := cloneMeta(meta)
	stored.ETag = fmt.Sprintf("r%d", s.revision)
	if stored.SnapshotID == "" {
		stored.SnapshotID = uuid.NewString()
	}
	s.records[key] = memoryRecord[T]{snapshot: layering.Clone(snapshot), meta: stored}
	return cloneMeta(stored), nil
}

// Len reports how many refs hold a snapshot.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
