package cascade

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"hustings/internal/catalog"
	"hustings/internal/profile/models"
	dErrors "hustings/pkg/domain-errors"
)

type CascadeSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestCascadeSuite(t *testing.T) {
	suite.Run(t, new(CascadeSuite))
}

func (s *CascadeSuite) SetupSuite() {
	c, err := catalog.Load()
	s.Require().NoError(err)
	s.catalog = c
}

func (s *CascadeSuite) fullSelection() Selection {
	return Selection{
		Position:  models.PositionNationalAssembly,
		Region:    "서울특별시",
		SubRegion: "강남구",
		District:  "강남구 갑",
	}
}

func (s *CascadeSuite) TestApplyClearsDependentFields() {
	s.Run("position change clears the whole path", func() {
		for _, p := range models.Positions() {
			got := Apply(s.fullSelection(), FieldPosition, string(p))
			s.Equal(p, got.Position)
			s.Empty(got.Region)
			s.Empty(got.SubRegion)
			s.Empty(got.District)
		}
	})

	s.Run("region change clears sub-region and district", func() {
		got := Apply(s.fullSelection(), FieldRegion, "경기도")
		s.Equal("경기도", got.Region)
		s.Empty(got.SubRegion)
		s.Empty(got.District)
		s.Equal(models.PositionNationalAssembly, got.Position)
	})

	s.Run("sub-region change clears district only", func() {
		got := Apply(s.fullSelection(), FieldSubRegion, "마포구")
		s.Equal("마포구", got.SubRegion)
		s.Empty(got.District)
		s.Equal("서울특별시", got.Region)
	})

	s.Run("district change clears nothing", func() {
		got := Apply(s.fullSelection(), FieldDistrict, "강남구 을")
		s.Equal("강남구 을", got.District)
		s.Equal("강남구", got.SubRegion)
	})

	s.Run("unknown field is a no-op", func() {
		got := Apply(s.fullSelection(), Field("color"), "blue")
		s.Equal(s.fullSelection(), got)
	})
}

func (s *CascadeSuite) TestAvailableProjections() {
	s.Run("empty inputs yield empty sequences", func() {
		s.Empty(AvailableSubRegions(s.catalog, Selection{}))
		s.Empty(AvailableDistricts(s.catalog, Selection{}))
		s.Empty(AvailableDistricts(s.catalog, Selection{Region: "경기도"}))
	})

	s.Run("districts are keyed by the position's chamber", func() {
		sel := Selection{Position: models.PositionLocalCouncil, Region: "서울특별시", SubRegion: "강남구"}
		s.Contains(AvailableDistricts(s.catalog, sel), "강남구 가선거구")

		sel.Position = models.PositionNationalAssembly
		s.Contains(AvailableDistricts(s.catalog, sel), "강남구 갑")
	})

	s.Run("executives have no district choices", func() {
		sel := Selection{Position: models.PositionLocalExecutive, Region: "서울특별시", SubRegion: "강남구"}
		s.Empty(AvailableDistricts(s.catalog, sel))
	})
}

func (s *CascadeSuite) TestDeriveTitle() {
	cases := []struct {
		name      string
		position  models.Position
		region    string
		subRegion string
		want      string
	}{
		{"metro city mayor", models.PositionRegionExecutive, "서울특별시", "", "서울특별시장"},
		{"provincial governor", models.PositionRegionExecutive, "경기도", "", "경기도지사"},
		{"municipal mayor", models.PositionLocalExecutive, "경기도", "성남시", "성남시장"},
		{"borough chief", models.PositionLocalExecutive, "서울특별시", "강남구", "강남구청장"},
		{"county head", models.PositionLocalExecutive, "경기도", "양평군", "양평군수"},
		{"legislative has no derived title", models.PositionNationalAssembly, "서울특별시", "강남구", ""},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			got := DeriveTitle(Selection{Position: tc.position, Region: tc.region, SubRegion: tc.subRegion})
			s.Equal(tc.want, got)
		})
	}
}

func (s *CascadeSuite) TestValidate() {
	s.Run("full legislative path passes", func() {
		s.NoError(Validate(s.catalog, s.fullSelection()))
	})

	s.Run("region executive needs only a region", func() {
		sel := Selection{Position: models.PositionRegionExecutive, Region: "서울특별시"}
		s.NoError(Validate(s.catalog, sel))
	})

	s.Run("missing required fields fail", func() {
		cases := []Selection{
			{},
			{Position: models.PositionNationalAssembly},
			{Position: models.PositionNationalAssembly, Region: "서울특별시"},
			{Position: models.PositionNationalAssembly, Region: "서울특별시", SubRegion: "강남구"},
			{Position: models.PositionLocalExecutive, Region: "경기도"},
		}
		for _, sel := range cases {
			err := Validate(s.catalog, sel)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), "expected validation code for %+v", sel)
		}
	})

	s.Run("fields below the position depth must be empty", func() {
		sel := Selection{Position: models.PositionRegionExecutive, Region: "서울특별시", SubRegion: "강남구"}
		s.Error(Validate(s.catalog, sel))

		sel = Selection{Position: models.PositionLocalExecutive, Region: "서울특별시", SubRegion: "강남구", District: "강남구 갑"}
		s.Error(Validate(s.catalog, sel))
	})

	s.Run("catalog membership is enforced", func() {
		sel := s.fullSelection()
		sel.SubRegion = "성남시" // belongs to 경기도, not 서울특별시
		sel.District = ""
		s.Error(Validate(s.catalog, sel))

		sel = s.fullSelection()
		sel.District = "강남구 가선거구" // local council district, wrong chamber
		s.Error(Validate(s.catalog, sel))
	})
}
