//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"hustings/internal/profile/cache"
	"hustings/internal/profile/models"
	"hustings/pkg/platform/sentinel"
	"hustings/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.Redis
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.cache = cache.NewRedis(s.redis.Client, 5*time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestPutGetInvalidate() {
	ctx := context.Background()

	p := models.NewProfile(uuid.NewString(), time.Now().UTC().Truncate(time.Second))
	p.Position = models.PositionRegionExecutive
	p.Jurisdiction = models.JurisdictionPath{Region: "서울특별시"}
	p.DisplayTitle = "서울특별시장"

	_, err := s.cache.Get(ctx, p.IdentityID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.cache.Put(ctx, p))

	got, err := s.cache.Get(ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal(p.DisplayTitle, got.DisplayTitle)
	s.Equal(p.Jurisdiction, got.Jurisdiction)

	s.Require().NoError(s.cache.Invalidate(ctx, p.IdentityID))
	_, err = s.cache.Get(ctx, p.IdentityID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
