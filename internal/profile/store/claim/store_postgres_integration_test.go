//go:build integration

package claim_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"hustings/internal/profile/store/claim"
	"hustings/pkg/platform/sentinel"
	"hustings/pkg/testutil/containers"
)

type PostgresClaimSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *claim.PostgresStore
}

func TestPostgresClaimSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresClaimSuite))
}

func (s *PostgresClaimSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = claim.NewPostgres(s.postgres.Pool)
}

func (s *PostgresClaimSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "district_claims")
	s.Require().NoError(err)
}

func (s *PostgresClaimSuite) TestClaimRoundTrip() {
	ctx := context.Background()
	key := "national|서울특별시|강남구|강남구 갑"

	s.Require().NoError(s.store.ClaimIfAvailable(ctx, key, "id-1"))

	owner, err := s.store.Owner(ctx, key)
	s.Require().NoError(err)
	s.Equal("id-1", owner)

	s.Require().ErrorIs(s.store.ClaimIfAvailable(ctx, key, "id-2"), sentinel.ErrClaimed)
	s.Require().NoError(s.store.ClaimIfAvailable(ctx, key, "id-1"))

	s.Require().NoError(s.store.Release(ctx, key, "id-1"))
	_, err = s.store.Owner(ctx, key)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentClaimUniqueness verifies that concurrent claim attempts on the
// same district key result in exactly one success.
func (s *PostgresClaimSuite) TestConcurrentClaimUniqueness() {
	ctx := context.Background()
	key := "national|경기도|성남시|성남시 분당구 갑"
	const goroutines = 50

	var wg sync.WaitGroup
	var successCount atomic.Int32
	var conflictCount atomic.Int32
	var otherErrors atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.ClaimIfAvailable(ctx, key, uuid.NewString())
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrClaimed):
				conflictCount.Add(1)
			default:
				otherErrors.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
	s.Equal(int32(0), otherErrors.Load())
}

func (s *PostgresClaimSuite) TestReleaseAll() {
	ctx := context.Background()
	s.Require().NoError(s.store.ClaimIfAvailable(ctx, "key-a", "id-1"))
	s.Require().NoError(s.store.ClaimIfAvailable(ctx, "key-b", "id-1"))
	s.Require().NoError(s.store.ClaimIfAvailable(ctx, "key-c", "id-2"))

	s.Require().NoError(s.store.ReleaseAll(ctx, "id-1"))

	_, err := s.store.Owner(ctx, "key-a")
	s.ErrorIs(err, sentinel.ErrNotFound)
	owner, err := s.store.Owner(ctx, "key-c")
	s.Require().NoError(err)
	s.Equal("id-2", owner)
}
