package profile

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore is an in-memory profile store for tests. Fetch and Insert can
// be forced to fail to simulate backend outages.
type MemoryStore struct {
	mu         sync.RWMutex
	profiles   map[string]Profile
	failFetch  error
	failInsert error
}

// NewMemoryStore builds an in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile)}
}

// FailFetchWith makes every subsequent Fetch return err.
func (s *MemoryStore) FailFetchWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFetch = err
}

// FailInsertWith makes every subsequent Insert return err.
func (s *MemoryStore) FailInsertWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failInsert = err
}

func (s *MemoryStore) Fetch(_ context.Context, userID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failFetch != nil {
		return Profile{}, s.failFetch
	}
	p, ok := s.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Insert(_ context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert != nil {
		return s.failInsert
	}
	if _, exists := s.profiles[p.UserID]; exists {
		return errors.New("profile exists")
	}
	s.profiles[p.UserID] = p
	return nil
}
