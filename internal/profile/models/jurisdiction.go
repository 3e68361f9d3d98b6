package models

import "strings"

// JurisdictionPath is the region / sub-region / district hierarchy
// identifying where a candidate runs. Lower fields are only meaningful as
// children of the ones above; how much of the path is required depends on the
// Position.
type JurisdictionPath struct {
	Region    string `json:"region"`
	SubRegion string `json:"sub_region"`
	District  string `json:"district"`
}

// Empty reports whether no field of the path is set.
func (j JurisdictionPath) Empty() bool {
	return j.Region == "" && j.SubRegion == "" && j.District == ""
}

// DistrictKey builds the globally unique key a claim is registered under.
// The chamber is part of the key because the same district name can exist in
// more than one chamber. Returns "" when the position holds no district.
func (j JurisdictionPath) DistrictKey(position Position) string {
	if !position.RequiresDistrict() || j.District == "" {
		return ""
	}
	return strings.Join([]string{
		string(position.Chamber()), j.Region, j.SubRegion, j.District,
	}, "|")
}

// DistrictClaim records the assignment of a unique district to one identity.
// At most one claim may exist per DistrictKey across all profiles.
type DistrictClaim struct {
	DistrictKey     string `json:"district_key"`
	OwnerIdentityID string `json:"owner_identity_id"`
}
