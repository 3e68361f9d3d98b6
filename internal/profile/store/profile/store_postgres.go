package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hustings/internal/profile/models"
	"hustings/pkg/platform/sentinel"
)

// PostgresStore persists profile snapshots as JSONB rows keyed by identity.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Find(ctx context.Context, identityID string) (*models.Profile, error) {
	const q = `SELECT snapshot FROM profiles WHERE identity_id = $1`
	var raw []byte
	err := s.pool.QueryRow(ctx, q, identityID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile snapshot: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Save(ctx context.Context, p *models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile snapshot: %w", err)
	}
	const q = `
		INSERT INTO profiles (identity_id, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (identity_id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`
	if _, err := s.pool.Exec(ctx, q, p.IdentityID, raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, identityID string) error {
	const q = `DELETE FROM profiles WHERE identity_id = $1`
	if _, err := s.pool.Exec(ctx, q, identityID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
