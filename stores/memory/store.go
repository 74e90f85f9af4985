package memory

import (
	"context"
	"sync"

	"shopmart/core"
)

// memStore keeps carts in a userID-keyed map. It is the default backend
// and the one the tests use.
type memStore struct {
	mu    sync.RWMutex
	carts map[string]core.Cart
}

// NewStore creates a new in-memory cart store.
func NewStore() *memStore {
	return &memStore{carts: make(map[string]core.Cart)}
}

// Load returns the saved cart for a user, or an empty cart if the user has
// never saved one.
func (s *memStore) Load(ctx context.Context, userID string) (core.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return core.Cart{}, nil
	}
	return cart.Clone(), nil
}

// Save replaces the stored cart for a user.
func (s *memStore) Save(ctx context.Context, userID string, cart core.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = cart.Clone()
	return nil
}
