package models

import "unicode/utf8"

// BioCategory groups entry types into the two tabs the profile editor shows.
type BioCategory string

const (
	BioCategoryPersonal    BioCategory = "personal"
	BioCategoryPerformance BioCategory = "performance"
)

// Valid reports whether c is a known category.
func (c BioCategory) Valid() bool {
	return c == BioCategoryPersonal || c == BioCategoryPerformance
}

// BioEntryType is the fixed vocabulary of content entry kinds. Each type has
// a category, a maximum content length (in runes, the text is Korean), and an
// editor placeholder.
type BioEntryType string

const (
	BioTypeSelfIntroduction BioEntryType = "self_introduction"
	BioTypeValues           BioEntryType = "values"
	BioTypeBackground       BioEntryType = "background"
	BioTypeCareer           BioEntryType = "career"
	BioTypePledge           BioEntryType = "pledge"
	BioTypeAchievement      BioEntryType = "achievement"
)

// BioTypeSpec carries the per-type rules.
type BioTypeSpec struct {
	Category    BioCategory
	MaxLen      int
	Placeholder string
}

var bioTypeSpecs = map[BioEntryType]BioTypeSpec{
	BioTypeSelfIntroduction: {BioCategoryPersonal, 1200, "자신을 소개해 주세요"},
	BioTypeValues:           {BioCategoryPersonal, 600, "정치 철학과 가치관을 적어 주세요"},
	BioTypeBackground:       {BioCategoryPersonal, 600, "성장 배경을 적어 주세요"},
	BioTypeCareer:           {BioCategoryPerformance, 800, "주요 경력을 적어 주세요"},
	BioTypePledge:           {BioCategoryPerformance, 800, "핵심 공약을 적어 주세요"},
	BioTypeAchievement:      {BioCategoryPerformance, 800, "주요 성과를 적어 주세요"},
}

// Valid reports whether t is a known entry type.
func (t BioEntryType) Valid() bool {
	_, ok := bioTypeSpecs[t]
	return ok
}

// Spec returns the rules for t. Unknown types get a zero spec with MaxLen 0.
func (t BioEntryType) Spec() BioTypeSpec {
	return bioTypeSpecs[t]
}

// Category returns the category t belongs to.
func (t BioEntryType) Category() BioCategory {
	return bioTypeSpecs[t].Category
}

// DefaultBioType is the type a freshly added entry gets for a category.
func DefaultBioType(c BioCategory) BioEntryType {
	if c == BioCategoryPerformance {
		return BioTypeCareer
	}
	return BioTypeValues
}

// BioEntry is one free-text content entry. Entry 0 of a profile is always a
// protected self-introduction: its type never changes and it is never removed.
type BioEntry struct {
	ID      string       `json:"id"`
	Type    BioEntryType `json:"type"`
	Content string       `json:"content"`
	Tags    []string     `json:"tags,omitempty"`
	Weight  int          `json:"weight"`
}

// ContentLength is the rune count of the entry's content. Length rules use
// runes, not bytes; Korean text is three bytes per rune in UTF-8.
func (e BioEntry) ContentLength() int {
	return utf8.RuneCountInString(e.Content)
}

// Remaining is the characters left before the type's maximum. May go negative
// when content was set by a non-editor path; callers display, never panic.
func (e BioEntry) Remaining() int {
	return e.Type.Spec().MaxLen - e.ContentLength()
}

// ClampContent truncates s to the type's maximum rune count. Overflow is not
// an error; the limit is enforced at the input boundary.
func (t BioEntryType) ClampContent(s string) string {
	max := t.Spec().MaxLen
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
