package paintsync

import (
	"context"
	"sort"
	"sync"
)

// Store persists paint edits per model in the boundary form.
// Update merges the given entries last-write-wins; it does not remove
// entries that are absent from the update.
type Store interface {
	Load(ctx context.Context, modelID string) (map[string]string, error)
	Update(ctx context.Context, modelID string, edits map[string]string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	models map[string]map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{models: make(map[string]map[string]string)}
}

// Load returns a copy of the stored edits; an unknown model has none.
func (s *MemoryStore) Load(ctx context.Context, modelID string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.models[modelID]))
	for k, v := range s.models[modelID] {
		out[k] = v
	}
	return out, nil
}

// Update merges edits into the model's map.
func (s *MemoryStore) Update(ctx context.Context, modelID string, edits map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.models[modelID]
	if !ok {
		m = make(map[string]string, len(edits))
		s.models[modelID] = m
	}
	for k, v := range edits {
		m[k] = v
	}
	return nil
}

// Replace overwrites all edits of modelID.
func (s *MemoryStore) Replace(ctx context.Context, modelID string, edits map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(edits) == 0 {
		delete(s.models, modelID)
		return nil
	}
	m := make(map[string]string, len(edits))
	for k, v := range edits {
		m[k] = v
	}
	s.models[modelID] = m
	return nil
}

// Models lists stored model IDs in order.
func (s *MemoryStore) Models(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.models))
	for id := range s.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
