// Package bio implements the bounded, categorized, ordered collection of
// free-text content entries. Entry 0 is the protected self-introduction: its
// type never changes and it cannot be removed.
package bio

import (
	"strings"

	"github.com/google/uuid"

	"hustings/internal/profile/models"
	dErrors "hustings/pkg/domain-errors"
)

// Typed failures of collection operations. Callers branch on these with
// errors.Is; both carry the validation code for transport mapping.
var (
	ErrCapacityExceeded = dErrors.New(dErrors.CodeValidation, "entry capacity exceeded")
	ErrProtectedEntry   = dErrors.New(dErrors.CodeValidation, "self-introduction entry is protected")
)

// Field names the mutable parts of an entry.
type Field string

const (
	FieldContent Field = "content"
	FieldType    Field = "type"
	FieldTags    Field = "tags"
)

// Collection wraps an ordered entry list with the per-category and capacity
// rules. It mutates in place; the reconciler owns the copy it hands in.
type Collection struct {
	entries    []models.BioEntry
	maxEntries int
}

// New wraps entries with the given capacity bound.
func New(entries []models.BioEntry, maxEntries int) *Collection {
	return &Collection{entries: entries, maxEntries: maxEntries}
}

// Entries returns the underlying ordered list.
func (c *Collection) Entries() []models.BioEntry {
	return c.entries
}

// Len is the current entry count.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Add appends an empty entry of the category's default type. Fails with
// ErrCapacityExceeded when the collection is full; the count is unchanged.
func (c *Collection) Add(category models.BioCategory) (models.BioEntry, error) {
	if !category.Valid() {
		return models.BioEntry{}, dErrors.New(dErrors.CodeValidation, "unknown bio category")
	}
	if len(c.entries) >= c.maxEntries {
		return models.BioEntry{}, ErrCapacityExceeded
	}
	entry := models.BioEntry{
		ID:     uuid.NewString(),
		Type:   models.DefaultBioType(category),
		Weight: len(c.entries),
	}
	c.entries = append(c.entries, entry)
	return entry, nil
}

// Update mutates one field of one entry. Content is clamped to the type's
// maximum length; overflow is not an error. The type of entry 0 is immutable.
func (c *Collection) Update(index int, field Field, value string) error {
	if index < 0 || index >= len(c.entries) {
		return dErrors.New(dErrors.CodeBadRequest, "entry index out of range")
	}
	entry := &c.entries[index]
	switch field {
	case FieldContent:
		entry.Content = entry.Type.ClampContent(value)
	case FieldType:
		if index == 0 {
			return ErrProtectedEntry
		}
		t := models.BioEntryType(value)
		if !t.Valid() {
			return dErrors.New(dErrors.CodeValidation, "unknown bio entry type")
		}
		entry.Type = t
		entry.Content = t.ClampContent(entry.Content)
	case FieldTags:
		entry.Tags = splitTags(value)
	default:
		return dErrors.New(dErrors.CodeBadRequest, "unknown entry field")
	}
	return nil
}

// Remove deletes the entry at index, preserving the relative order of the
// rest. Entry 0 is never removable.
func (c *Collection) Remove(index int) error {
	if index < 0 || index >= len(c.entries) {
		return dErrors.New(dErrors.CodeBadRequest, "entry index out of range")
	}
	if index == 0 {
		return ErrProtectedEntry
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// ByCategory filters entries whose type belongs to the category's type set.
func (c *Collection) ByCategory(category models.BioCategory) []models.BioEntry {
	out := []models.BioEntry{}
	for _, e := range c.entries {
		if e.Type.Category() == category {
			out = append(out, e)
		}
	}
	return out
}

func splitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Normalize prepares an inbound entry list for persistence: capacity and
// protected-entry invariants are hard failures, while over-length content is
// clamped, missing IDs are assigned, and weights are re-sequenced. Clamping
// rather than rejecting keeps the length rule at the input boundary.
func Normalize(entries []models.BioEntry, maxEntries int) ([]models.BioEntry, error) {
	if len(entries) > maxEntries {
		return nil, ErrCapacityExceeded
	}
	if len(entries) > 0 && entries[0].Type != models.BioTypeSelfIntroduction {
		return nil, ErrProtectedEntry
	}
	out := make([]models.BioEntry, len(entries))
	for i, e := range entries {
		if !e.Type.Valid() {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown bio entry type")
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.Content = e.Type.ClampContent(e.Content)
		e.Weight = i
		out[i] = e
	}
	return out, nil
}
