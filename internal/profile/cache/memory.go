package cache

import (
	"context"
	"sync"

	"hustings/internal/profile/models"
	"hustings/pkg/platform/sentinel"
)

// Memory is the in-process mirror used when Redis is not configured.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[string]*models.Profile
}

func NewMemory() *Memory {
	return &Memory{snapshots: make(map[string]*models.Profile)}
}

func (m *Memory) Get(_ context.Context, identityID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.snapshots[identityID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (m *Memory) Put(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[p.IdentityID] = p.Clone()
	return nil
}

func (m *Memory) Invalidate(_ context.Context, identityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, identityID)
	return nil
}
