package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileStatus tracks whether the identity channel has ever passed full
// validation.
type ProfileStatus string

const (
	ProfileStatusIncomplete ProfileStatus = "incomplete"
	ProfileStatusComplete   ProfileStatus = "complete"
)

// Profile is the aggregate root for one candidate's configuration.
//
// Invariants:
//   - BioEntries[0], when present, is the self-introduction: its type is
//     immutable and the entry is never removable
//   - len(BioEntries) never exceeds the configured maximum
//   - each entry's content length respects its type's maximum
//   - Jurisdiction.SubRegion is a child of Jurisdiction.Region, and
//     Jurisdiction.District a child of (Region, SubRegion, chamber)
//   - at most one profile holds a claim on any district key
//
// The aggregate is mutated through two independently submittable channels:
// identity (position + jurisdiction + title) and content (bio entries +
// personalization). Each is separately validated and persisted.
type Profile struct {
	IdentityID      string            `json:"identity_id"`
	Position        Position          `json:"position"`
	Jurisdiction    JurisdictionPath  `json:"jurisdiction"`
	DisplayTitle    string            `json:"display_title"`
	Status          ProfileStatus     `json:"status"`
	BioEntries      []BioEntry        `json:"bio_entries"`
	Personalization map[string]string `json:"personalization,omitempty"`

	// LegacyBio carries the single-field bio from before categorized
	// entries existed. Migrated into BioEntries on first load.
	LegacyBio string `json:"legacy_bio,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile returns the default empty aggregate created implicitly on first
// authenticated access.
func NewProfile(identityID string, now time.Time) *Profile {
	return &Profile{
		IdentityID: identityID,
		Status:     ProfileStatusIncomplete,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// DefaultBioEntries synthesizes the two-entry starter list used by the
// one-time legacy migration: a self-introduction seeded from the legacy bio
// and one empty performance entry.
func DefaultBioEntries(legacyBio string) []BioEntry {
	return []BioEntry{
		{
			ID:      uuid.NewString(),
			Type:    BioTypeSelfIntroduction,
			Content: BioTypeSelfIntroduction.ClampContent(legacyBio),
		},
		{
			ID:   uuid.NewString(),
			Type: DefaultBioType(BioCategoryPerformance),
		},
	}
}

// IntroductionLength is the rune length of the self-introduction entry, or of
// the legacy bio when no entries were persisted yet. This is the length the
// first-bio-completion detection compares against its threshold.
func (p *Profile) IntroductionLength() int {
	if p == nil {
		return 0
	}
	if len(p.BioEntries) > 0 {
		return p.BioEntries[0].ContentLength()
	}
	return BioEntry{Type: BioTypeSelfIntroduction, Content: p.LegacyBio}.ContentLength()
}

// DistrictKey is the claim key of the profile's current selection, or "".
func (p *Profile) DistrictKey() string {
	return p.Jurisdiction.DistrictKey(p.Position)
}

// Clone deep-copies the profile so optimistic local state and authoritative
// snapshots never alias each other.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	if p.BioEntries != nil {
		out.BioEntries = make([]BioEntry, len(p.BioEntries))
		for i, e := range p.BioEntries {
			out.BioEntries[i] = e
			if e.Tags != nil {
				out.BioEntries[i].Tags = append([]string(nil), e.Tags...)
			}
		}
	}
	if p.Personalization != nil {
		out.Personalization = make(map[string]string, len(p.Personalization))
		for k, v := range p.Personalization {
			out.Personalization[k] = v
		}
	}
	return &out
}

// IdentityUpdate is the jurisdiction channel payload.
type IdentityUpdate struct {
	Position     Position         `json:"position"`
	Jurisdiction JurisdictionPath `json:"jurisdiction"`
	// DisplayTitle overrides the derived title when non-empty.
	DisplayTitle string `json:"display_title,omitempty"`
}

// ContentUpdate is the bio + personalization channel payload.
type ContentUpdate struct {
	BioEntries      []BioEntry        `json:"bio_entries"`
	Personalization map[string]string `json:"personalization,omitempty"`
}

// UpdatePayload bundles what a single save submits. Either channel may be nil;
// the channels remain independently validated and persisted.
type UpdatePayload struct {
	Identity *IdentityUpdate `json:"identity,omitempty"`
	Content  *ContentUpdate  `json:"content,omitempty"`
}
