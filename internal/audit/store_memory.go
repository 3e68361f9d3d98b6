package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps audit events in memory. Default sink for development
// and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByIdentity(_ context.Context, identityID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Event{}
	for _, e := range s.events {
		if e.IdentityID == identityID {
			out = append(out, e)
		}
	}
	return out, nil
}
