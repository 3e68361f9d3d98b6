// Package cache provides the non-authoritative profile snapshot mirror kept
// for UI continuity. Only authoritative snapshots are written: the reconciler
// overwrites the mirror after every successful reconcile, and the HTTP
// handler populates it on a store read and invalidates it on updates. Reads
// are best-effort; a miss or a stale value is never an error condition for
// the caller beyond sentinel.ErrNotFound.
package cache

import (
	"context"

	"hustings/internal/profile/models"
)

// ProfileCache is the mirror port.
type ProfileCache interface {
	Get(ctx context.Context, identityID string) (*models.Profile, error)
	Put(ctx context.Context, p *models.Profile) error
	Invalidate(ctx context.Context, identityID string) error
}
