package store

import (
	"context"
	"sync"

	"bureau/internal/ledger"
	id "bureau/pkg/domain"
)

// InMemory stores profiles in memory. Profiles are cloned on the way in and
// out so callers never share state with the map.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.AccountID]*ledger.CreditProfile
}

// NewInMemory creates an in-memory profile store.
func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[id.AccountID]*ledger.CreditProfile)}
}

// Find retrieves a profile by account.
func (s *InMemory) Find(_ context.Context, account id.AccountID) (*ledger.CreditProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[account]; ok {
		return p.Clone(), nil
	}
	return nil, ErrNotFound
}

// Save upserts a profile.
func (s *InMemory) Save(_ context.Context, account id.AccountID, profile *ledger.CreditProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[account] = profile.Clone()
	return nil
}

// Exists reports whether an account has a profile.
func (s *InMemory) Exists(_ context.Context, account id.AccountID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[account]
	return ok, nil
}
