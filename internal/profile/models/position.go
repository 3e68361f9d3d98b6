package models

import "hustings/internal/catalog"

// Position is the candidate's role category. It determines how much of the
// jurisdiction path is required:
//   - region executives stop at the region
//   - local executives need region + sub-region
//   - legislative positions need the full path including a district
type Position string

const (
	// PositionRegionExecutive covers metro mayors and provincial governors.
	PositionRegionExecutive Position = "region_executive"
	// PositionLocalExecutive covers municipal mayors, borough chiefs, and
	// county heads.
	PositionLocalExecutive Position = "local_executive"
	// PositionNationalAssembly is a National Assembly constituency seat.
	PositionNationalAssembly Position = "national_assembly"
	// PositionRegionCouncil is a metropolitan or provincial council seat.
	PositionRegionCouncil Position = "region_council"
	// PositionLocalCouncil is a municipal, borough, or county council seat.
	PositionLocalCouncil Position = "local_council"
)

// Positions lists all valid positions in presentation order.
func Positions() []Position {
	return []Position{
		PositionRegionExecutive,
		PositionLocalExecutive,
		PositionNationalAssembly,
		PositionRegionCouncil,
		PositionLocalCouncil,
	}
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case PositionRegionExecutive, PositionLocalExecutive,
		PositionNationalAssembly, PositionRegionCouncil, PositionLocalCouncil:
		return true
	}
	return false
}

// Legislative reports whether p contests a district seat.
func (p Position) Legislative() bool {
	switch p {
	case PositionNationalAssembly, PositionRegionCouncil, PositionLocalCouncil:
		return true
	}
	return false
}

// RequiresSubRegion reports whether the jurisdiction path must include a
// sub-region. Only region-level executives stop at the region.
func (p Position) RequiresSubRegion() bool {
	return p.Valid() && p != PositionRegionExecutive
}

// RequiresDistrict reports whether the jurisdiction path must include a
// district. Only legislative positions contest districts.
func (p Position) RequiresDistrict() bool {
	return p.Legislative()
}

// Chamber maps a legislative position to its district chamber in the catalog.
// Executive positions have no chamber and return "".
func (p Position) Chamber() catalog.Chamber {
	switch p {
	case PositionNationalAssembly:
		return catalog.ChamberNational
	case PositionRegionCouncil:
		return catalog.ChamberRegion
	case PositionLocalCouncil:
		return catalog.ChamberLocal
	}
	return ""
}
