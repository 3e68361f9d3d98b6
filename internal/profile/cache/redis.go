package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hustings/internal/profile/models"
	"hustings/pkg/platform/sentinel"
)

const profileKeyPrefix = "profile:snapshot:"

// Redis mirrors profile snapshots as JSON values with a TTL. The TTL bounds
// staleness after a crash between submit and reconcile; normal operation
// overwrites on every reconcile anyway.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis constructs a redis-backed mirror.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, identityID string) (*models.Profile, error) {
	raw, err := r.client.Get(ctx, profileKeyPrefix+identityID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &p, nil
}

func (r *Redis) Put(ctx context.Context, p *models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile for cache: %w", err)
	}
	if err := r.client.Set(ctx, profileKeyPrefix+p.IdentityID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, identityID string) error {
	if err := r.client.Del(ctx, profileKeyPrefix+identityID).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
