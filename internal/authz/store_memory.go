package authz

import (
	"context"
	"sync"

	id "bureau/pkg/domain"
)

// InMemoryStore keeps the lender permission map in memory.
type InMemoryStore struct {
	mu         sync.RWMutex
	authorized map[id.PrincipalID]bool
}

// NewInMemoryStore creates an in-memory permission store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{authorized: make(map[id.PrincipalID]bool)}
}

// Set records the permission flag for a principal. Setting an existing flag
// to the same value is a no-op, which keeps grant and revoke idempotent.
func (s *InMemoryStore) Set(_ context.Context, principal id.PrincipalID, allowed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized[principal] = allowed
	return nil
}

// Get reports the permission flag for a principal, defaulting to false for
// unknown principals.
func (s *InMemoryStore) Get(_ context.Context, principal id.PrincipalID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authorized[principal], nil
}
