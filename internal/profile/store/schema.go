// Package store holds the shared PostgreSQL schema for the profile module.
// Stores live in per-entity subpackages; the DDL sits here so main and the
// integration tests apply the same migrations.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is idempotent DDL for the profile module's tables. Profiles are
// stored as one JSONB snapshot per identity; the aggregate is always read and
// written whole, so a column-per-field layout would only add mapping code.
const Schema = `
CREATE TABLE IF NOT EXISTS profiles (
	identity_id TEXT PRIMARY KEY,
	snapshot    JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS district_claims (
	district_key      TEXT PRIMARY KEY,
	owner_identity_id TEXT NOT NULL,
	claimed_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS district_claims_owner_idx
	ON district_claims (owner_identity_id);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply profile schema: %w", err)
	}
	return nil
}
