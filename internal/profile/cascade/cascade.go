// Package cascade holds the pure state-transition logic for the dependent
// identity fields: position → region → sub-region → district. Changing a
// higher field invalidates everything below it. Keeping this free of UI and
// transport makes the reset and validation rules directly testable.
package cascade

import (
	"fmt"

	"hustings/internal/catalog"
	"hustings/internal/profile/models"
	dErrors "hustings/pkg/domain-errors"
)

// Field names the selectable identity fields.
type Field string

const (
	FieldPosition  Field = "position"
	FieldRegion    Field = "region"
	FieldSubRegion Field = "sub_region"
	FieldDistrict  Field = "district"
)

// Selection is the current value of the dependent field chain.
type Selection struct {
	Position  models.Position
	Region    string
	SubRegion string
	District  string
}

// SelectionFrom extracts the selection out of a profile snapshot.
func SelectionFrom(p *models.Profile) Selection {
	if p == nil {
		return Selection{}
	}
	return Selection{
		Position:  p.Position,
		Region:    p.Jurisdiction.Region,
		SubRegion: p.Jurisdiction.SubRegion,
		District:  p.Jurisdiction.District,
	}
}

// Path converts the selection back into a jurisdiction path.
func (s Selection) Path() models.JurisdictionPath {
	return models.JurisdictionPath{
		Region:    s.Region,
		SubRegion: s.SubRegion,
		District:  s.District,
	}
}

// Apply sets one field and clears every field that depends on it. Unknown
// fields leave the selection unchanged.
func Apply(s Selection, field Field, value string) Selection {
	switch field {
	case FieldPosition:
		s.Position = models.Position(value)
		s.Region = ""
		s.SubRegion = ""
		s.District = ""
	case FieldRegion:
		s.Region = value
		s.SubRegion = ""
		s.District = ""
	case FieldSubRegion:
		s.SubRegion = value
		s.District = ""
	case FieldDistrict:
		s.District = value
	}
	return s
}

// AvailableSubRegions projects the sub-region choices for the current region.
// Missing inputs yield an empty sequence, never an error.
func AvailableSubRegions(c *catalog.Catalog, s Selection) []string {
	if s.Region == "" {
		return []string{}
	}
	return c.SubRegions(s.Region)
}

// AvailableDistricts projects the district choices for the current region,
// sub-region, and position chamber. Missing inputs yield an empty sequence.
func AvailableDistricts(c *catalog.Catalog, s Selection) []string {
	if s.Region == "" || s.SubRegion == "" || !s.Position.RequiresDistrict() {
		return []string{}
	}
	return c.Districts(s.Region, s.SubRegion, s.Position.Chamber())
}

// DeriveTitle computes the executive office title from the jurisdiction name.
// The suffix depends on the administrative kind encoded in the name's last
// character. Legislative positions have no derived title; the user-entered
// title stands.
func DeriveTitle(s Selection) string {
	switch s.Position {
	case models.PositionRegionExecutive:
		return regionTitle(s.Region)
	case models.PositionLocalExecutive:
		return subRegionTitle(s.SubRegion)
	}
	return ""
}

func regionTitle(region string) string {
	if region == "" {
		return ""
	}
	switch lastRune(region) {
	case '시':
		return region + "장"
	case '도':
		return region + "지사"
	}
	return region
}

func subRegionTitle(subRegion string) string {
	if subRegion == "" {
		return ""
	}
	switch lastRune(subRegion) {
	case '시':
		return subRegion + "장"
	case '구':
		return subRegion + "청장"
	case '군':
		return subRegion + "수"
	}
	return subRegion
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// Validate checks requiredness and catalog membership for the selection.
// Position and region are always required; sub-region is required unless the
// position is a region-level executive; district only for legislative
// positions. Fields below the position's depth must be empty.
func Validate(c *catalog.Catalog, s Selection) error {
	if !s.Position.Valid() {
		return dErrors.New(dErrors.CodeValidation, "position is required")
	}
	if s.Region == "" {
		return dErrors.New(dErrors.CodeValidation, "region is required")
	}
	if !c.HasRegion(s.Region) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown region %q", s.Region))
	}

	if !s.Position.RequiresSubRegion() {
		if s.SubRegion != "" || s.District != "" {
			return dErrors.New(dErrors.CodeValidation, "position holds no sub-region or district")
		}
		return nil
	}

	if s.SubRegion == "" {
		return dErrors.New(dErrors.CodeValidation, "sub-region is required")
	}
	if !c.HasSubRegion(s.Region, s.SubRegion) {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("%q is not a sub-region of %q", s.SubRegion, s.Region))
	}

	if !s.Position.RequiresDistrict() {
		if s.District != "" {
			return dErrors.New(dErrors.CodeValidation, "position holds no district")
		}
		return nil
	}

	if s.District == "" {
		return dErrors.New(dErrors.CodeValidation, "district is required")
	}
	if !c.HasDistrict(s.Region, s.SubRegion, s.Position.Chamber(), s.District) {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("%q is not a district of %q %q", s.District, s.Region, s.SubRegion))
	}
	return nil
}
