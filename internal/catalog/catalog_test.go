package catalog

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CatalogSuite struct {
	suite.Suite
	catalog *Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupSuite() {
	c, err := Load()
	s.Require().NoError(err)
	s.catalog = c
}

func (s *CatalogSuite) TestRegions() {
	regions := s.catalog.Regions()
	s.NotEmpty(regions)
	s.Contains(regions, "서울특별시")
	s.Contains(regions, "경기도")
}

func (s *CatalogSuite) TestSubRegions() {
	s.Run("known region lists children", func() {
		subs := s.catalog.SubRegions("경기도")
		s.Contains(subs, "성남시")
		s.Contains(subs, "양평군")
	})

	s.Run("unknown region yields empty slice", func() {
		s.Empty(s.catalog.SubRegions("없는지역"))
	})

	s.Run("empty input yields empty slice", func() {
		s.Empty(s.catalog.SubRegions(""))
	})
}

func (s *CatalogSuite) TestDistricts() {
	s.Run("per chamber district sets differ", func() {
		national := s.catalog.Districts("서울특별시", "강남구", ChamberNational)
		local := s.catalog.Districts("서울특별시", "강남구", ChamberLocal)
		s.Contains(national, "강남구 갑")
		s.Contains(local, "강남구 가선거구")
		s.NotEqual(national, local)
	})

	s.Run("sub-region outside its region yields empty slice", func() {
		s.Empty(s.catalog.Districts("서울특별시", "성남시", ChamberNational))
	})

	s.Run("missing inputs yield empty slice", func() {
		s.Empty(s.catalog.Districts("", "", ChamberNational))
		s.Empty(s.catalog.Districts("경기도", "", ChamberNational))
	})
}

func (s *CatalogSuite) TestMembership() {
	s.True(s.catalog.HasRegion("부산광역시"))
	s.False(s.catalog.HasRegion("서울"))

	s.True(s.catalog.HasSubRegion("경기도", "수원시"))
	s.False(s.catalog.HasSubRegion("서울특별시", "수원시"))

	s.True(s.catalog.HasDistrict("경기도", "성남시", ChamberNational, "성남시 분당구 갑"))
	s.False(s.catalog.HasDistrict("경기도", "성남시", ChamberLocal, "성남시 분당구 갑"))
}

func (s *CatalogSuite) TestParseRejectsEmptyDataset() {
	_, err := Parse([]byte(`{"regions":[]}`))
	s.Error(err)

	_, err = Parse([]byte(`not json`))
	s.Error(err)
}
