//go:build integration

package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"hustings/internal/profile/models"
	profilestore "hustings/internal/profile/store/profile"
	"hustings/pkg/platform/sentinel"
	"hustings/pkg/testutil/containers"
)

type PostgresProfileSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *profilestore.PostgresStore
}

func TestPostgresProfileSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresProfileSuite))
}

func (s *PostgresProfileSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = profilestore.NewPostgres(s.postgres.Pool)
}

func (s *PostgresProfileSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "profiles")
	s.Require().NoError(err)
}

func (s *PostgresProfileSuite) TestRoundTripFidelity() {
	ctx := context.Background()

	p := models.NewProfile(uuid.NewString(), time.Now().UTC().Truncate(time.Second))
	p.Position = models.PositionLocalExecutive
	p.Jurisdiction = models.JurisdictionPath{Region: "경기도", SubRegion: "성남시"}
	p.DisplayTitle = "성남시장"
	p.BioEntries = models.DefaultBioEntries("소개글입니다")
	p.Personalization = map[string]string{"accent": "green"}

	s.Require().NoError(s.store.Save(ctx, p))

	found, err := s.store.Find(ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal(p.Position, found.Position)
	s.Equal(p.Jurisdiction, found.Jurisdiction)
	s.Equal(p.DisplayTitle, found.DisplayTitle)
	s.Equal(p.BioEntries, found.BioEntries)
	s.Equal(p.Personalization, found.Personalization)
}

func (s *PostgresProfileSuite) TestUpsertAndDelete() {
	ctx := context.Background()

	p := models.NewProfile(uuid.NewString(), time.Now())
	s.Require().NoError(s.store.Save(ctx, p))

	p.DisplayTitle = "서울특별시장"
	s.Require().NoError(s.store.Save(ctx, p))

	found, err := s.store.Find(ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal("서울특별시장", found.DisplayTitle)

	s.Require().NoError(s.store.Delete(ctx, p.IdentityID))
	_, err = s.store.Find(ctx, p.IdentityID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
