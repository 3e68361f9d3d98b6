package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"hustings/internal/profile/models"
	"hustings/pkg/platform/sentinel"
)

type ProfileStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ProfileStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestProfileStoreSuite(t *testing.T) {
	suite.Run(t, new(ProfileStoreSuite))
}

func newTestProfile() *models.Profile {
	p := models.NewProfile(uuid.NewString(), time.Now())
	p.Position = models.PositionNationalAssembly
	p.Jurisdiction = models.JurisdictionPath{
		Region:    "서울특별시",
		SubRegion: "강남구",
		District:  "강남구 갑",
	}
	p.BioEntries = models.DefaultBioEntries("소개글")
	p.Personalization = map[string]string{"theme": "blue"}
	return p
}

func (s *ProfileStoreSuite) TestSaveAndFind() {
	p := newTestProfile()
	s.Require().NoError(s.store.Save(s.ctx, p))

	found, err := s.store.Find(s.ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal(p.Position, found.Position)
	s.Equal(p.Jurisdiction, found.Jurisdiction)
	s.Equal(p.BioEntries, found.BioEntries)
}

func (s *ProfileStoreSuite) TestFindUnknownIdentity() {
	_, err := s.store.Find(s.ctx, uuid.NewString())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ProfileStoreSuite) TestSaveIsUpsert() {
	p := newTestProfile()
	s.Require().NoError(s.store.Save(s.ctx, p))

	p.Jurisdiction.District = "강남구 을"
	s.Require().NoError(s.store.Save(s.ctx, p))

	found, err := s.store.Find(s.ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal("강남구 을", found.Jurisdiction.District)
}

func (s *ProfileStoreSuite) TestSnapshotsDoNotAlias() {
	p := newTestProfile()
	s.Require().NoError(s.store.Save(s.ctx, p))

	// Mutating the caller's copy after save must not leak into the store.
	p.BioEntries[0].Content = "변경된 내용"

	found, err := s.store.Find(s.ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal("소개글", found.BioEntries[0].Content)

	// Nor must mutating a returned snapshot.
	found.Personalization["theme"] = "red"
	again, err := s.store.Find(s.ctx, p.IdentityID)
	s.Require().NoError(err)
	s.Equal("blue", again.Personalization["theme"])
}

func (s *ProfileStoreSuite) TestDelete() {
	p := newTestProfile()
	s.Require().NoError(s.store.Save(s.ctx, p))
	s.Require().NoError(s.store.Delete(s.ctx, p.IdentityID))

	_, err := s.store.Find(s.ctx, p.IdentityID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.NoError(s.store.Delete(s.ctx, p.IdentityID))
}
