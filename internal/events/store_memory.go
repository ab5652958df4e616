package events

import (
	"context"
	"sync"

	id "bureau/pkg/domain"
)

// InMemoryStore keeps the event stream in memory, in append order.
type InMemoryStore struct {
	mu        sync.RWMutex
	byAccount map[id.AccountID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byAccount: make(map[id.AccountID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byAccount[event.Account] = append(s.byAccount[event.Account], event)
	return nil
}

func (s *InMemoryStore) ListByAccount(_ context.Context, account id.AccountID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.byAccount[account]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byAccount = make(map[id.AccountID][]Event)
}
