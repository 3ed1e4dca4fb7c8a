package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/saanjh/storefront/internal/domain/content"
)

// MemoryStore is an in-process content.DataService. It backs local
// development when no backend is configured and keeps records in
// insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[content.Collection][]map[string]any
	// FailWith, when set, is returned by every call
	FailWith error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[content.Collection][]map[string]any)}
}

var _ content.DataService = (*MemoryStore)(nil)

// Seed appends records to a collection. Records are converted through JSON,
// so entity structs and plain maps are both accepted.
func (s *MemoryStore) Seed(collection content.Collection, records ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("seed %s: %w", collection, err)
		}
		s.items[collection] = append(s.items[collection], m)
	}
	return nil
}

// GetAll returns every record of a collection
func (s *MemoryStore) GetAll(ctx context.Context, collection content.Collection) (*content.ItemsResult, error) {
	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &content.ItemsResult{Items: make([]json.RawMessage, 0, len(s.items[collection]))}
	for _, m := range s.items[collection] {
		data, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, data)
	}
	return out, nil
}

// GetByID returns one record or content.ErrNotFound
func (s *MemoryStore) GetByID(ctx context.Context, collection content.Collection, id string) (json.RawMessage, error) {
	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if m := s.find(collection, id); m != nil {
		return json.Marshal(m)
	}
	return nil, content.ErrNotFound
}

// Update merges the patch into the stored record
func (s *MemoryStore) Update(ctx context.Context, collection content.Collection, patch map[string]any) (json.RawMessage, error) {
	if err := s.check(ctx, collection); err != nil {
		return nil, err
	}
	id, ok := content.PatchID(patch)
	if !ok {
		return nil, errors.New("cms: update patch must carry _id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.find(collection, id)
	if m == nil {
		return nil, content.ErrNotFound
	}
	for k, v := range patch {
		m[k] = v
	}
	return json.Marshal(m)
}

func (s *MemoryStore) check(ctx context.Context, collection content.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.FailWith != nil {
		return s.FailWith
	}
	if !collection.IsValid() {
		return fmt.Errorf("cms: unknown collection %q", collection)
	}
	return nil
}

// find must be called with the lock held
func (s *MemoryStore) find(collection content.Collection, id string) map[string]any {
	for _, m := range s.items[collection] {
		if m["_id"] == id {
			return m
		}
	}
	return nil
}
