package claim

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hustings/pkg/platform/sentinel"
)

// PostgresStore persists district claims in PostgreSQL. The primary key on
// district_key makes check-then-claim atomic without explicit locking.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed claim store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ClaimIfAvailable claims districtKey for identityID in a single statement.
// The no-op DO UPDATE makes RETURNING yield the surviving owner on conflict,
// so winner and loser are decided by the same atomic write.
func (s *PostgresStore) ClaimIfAvailable(ctx context.Context, districtKey, identityID string) error {
	const q = `
		INSERT INTO district_claims (district_key, owner_identity_id)
		VALUES ($1, $2)
		ON CONFLICT (district_key)
		DO UPDATE SET owner_identity_id = district_claims.owner_identity_id
		RETURNING owner_identity_id`

	var owner string
	if err := s.pool.QueryRow(ctx, q, districtKey, identityID).Scan(&owner); err != nil {
		return fmt.Errorf("claim district: %w", err)
	}
	if owner != identityID {
		return sentinel.ErrClaimed
	}
	return nil
}

// Release removes the claim when identityID owns it; otherwise a no-op.
func (s *PostgresStore) Release(ctx context.Context, districtKey, identityID string) error {
	const q = `DELETE FROM district_claims WHERE district_key = $1 AND owner_identity_id = $2`
	if _, err := s.pool.Exec(ctx, q, districtKey, identityID); err != nil {
		return fmt.Errorf("release district claim: %w", err)
	}
	return nil
}

// ReleaseAll removes every claim held by identityID.
func (s *PostgresStore) ReleaseAll(ctx context.Context, identityID string) error {
	const q = `DELETE FROM district_claims WHERE owner_identity_id = $1`
	if _, err := s.pool.Exec(ctx, q, identityID); err != nil {
		return fmt.Errorf("release district claims: %w", err)
	}
	return nil
}

// Owner returns the identity holding districtKey, or sentinel.ErrNotFound.
func (s *PostgresStore) Owner(ctx context.Context, districtKey string) (string, error) {
	const q = `SELECT owner_identity_id FROM district_claims WHERE district_key = $1`
	var owner string
	err := s.pool.QueryRow(ctx, q, districtKey).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find district claim: %w", err)
	}
	return owner, nil
}
