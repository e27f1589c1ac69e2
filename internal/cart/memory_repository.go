package cart

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

// NewMemoryRepository builds an in-memory cart repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{carts: make(map[string][]Line)}
}

func (r *memoryRepository) Load(_ context.Context, scope Scope) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.carts[scope.Key()]
	lines := make([]Line, len(stored))
	copy(lines, stored)
	return Cart{Lines: lines}, nil
}

func (r *memoryRepository) Save(_ context.Context, scope Scope, c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	r.carts[scope.Key()] = lines
	return nil
}

func (r *memoryRepository) Clear(_ context.Context, scope Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, scope.Key())
	return nil
}
