package claim

import (
	"context"
	"sync"

	"hustings/pkg/platform/sentinel"
)

// InMemory keeps district claims in a mutex-guarded map. Check-then-claim is
// atomic under the lock, matching the contract the postgres store gets from
// its unique constraint.
type InMemory struct {
	mu     sync.Mutex
	owners map[string]string
}

func NewInMemory() *InMemory {
	return &InMemory{owners: make(map[string]string)}
}

// ClaimIfAvailable claims districtKey for identityID, all-or-nothing.
// Re-claiming an already-owned key is idempotent success; a key owned by a
// different identity returns sentinel.ErrClaimed.
func (s *InMemory) ClaimIfAvailable(_ context.Context, districtKey, identityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.owners[districtKey]
	if ok && owner != identityID {
		return sentinel.ErrClaimed
	}
	s.owners[districtKey] = identityID
	return nil
}

// Release removes the claim if identityID owns it. Releasing an absent or
// foreign claim is a no-op so callers can release unconditionally.
func (s *InMemory) Release(_ context.Context, districtKey, identityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owners[districtKey] == identityID {
		delete(s.owners, districtKey)
	}
	return nil
}

// ReleaseAll removes every claim held by identityID. Used on account deletion.
func (s *InMemory) ReleaseAll(_ context.Context, identityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, owner := range s.owners {
		if owner == identityID {
			delete(s.owners, key)
		}
	}
	return nil
}

// Owner returns the identity holding districtKey, or sentinel.ErrNotFound.
func (s *InMemory) Owner(_ context.Context, districtKey string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.owners[districtKey]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return owner, nil
}
