package dedup

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-process runs.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]map[string]struct{})}
}

// Seen reports whether the id is present in the namespace.
func (s *MemoryStore) Seen(_ context.Context, namespace, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sets[namespace][id]
	return ok, nil
}

// Add inserts the id, reporting whether it was newly added. The mutex makes
// the check-then-set atomic.
func (s *MemoryStore) Add(_ context.Context, namespace, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[namespace]
	if !ok {
		set = make(map[string]struct{})
		s.sets[namespace] = set
	}

	if _, exists := set[id]; exists {
		return false, nil
	}
	set[id] = struct{}{}
	return true, nil
}

// Remove deletes the id from the namespace.
func (s *MemoryStore) Remove(_ context.Context, namespace, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets[namespace], id)
	return nil
}
