package profile

import (
	"context"
	"sync"

	"hustings/internal/profile/models"
	"hustings/pkg/platform/sentinel"
)

// InMemory keeps profile snapshots in a mutex-guarded map. Snapshots are
// cloned on the way in and out so callers never share memory with the store.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[string]*models.Profile)}
}

// Find returns the snapshot for identityID or sentinel.ErrNotFound.
func (s *InMemory) Find(_ context.Context, identityID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[identityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

// Save upserts the snapshot.
func (s *InMemory) Save(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.IdentityID] = p.Clone()
	return nil
}

// Delete removes the snapshot. Deleting an absent profile is a no-op.
func (s *InMemory) Delete(_ context.Context, identityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, identityID)
	return nil
}
