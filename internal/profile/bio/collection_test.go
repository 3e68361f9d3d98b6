package bio

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/suite"

	"hustings/internal/profile/models"
)

type CollectionSuite struct {
	suite.Suite
}

func TestCollectionSuite(t *testing.T) {
	suite.Run(t, new(CollectionSuite))
}

func starterEntries() []models.BioEntry {
	return models.DefaultBioEntries("기존 소개글")
}

func (s *CollectionSuite) TestAdd() {
	s.Run("appends a category default entry", func() {
		c := New(starterEntries(), 8)
		entry, err := c.Add(models.BioCategoryPerformance)
		s.Require().NoError(err)
		s.Equal(models.BioTypeCareer, entry.Type)
		s.Empty(entry.Content)
		s.Equal(3, c.Len())
	})

	s.Run("fails with capacity exceeded when full", func() {
		c := New(starterEntries(), 2)
		_, err := c.Add(models.BioCategoryPersonal)
		s.Require().ErrorIs(err, ErrCapacityExceeded)
		s.Equal(2, c.Len())
	})

	s.Run("rejects unknown category", func() {
		c := New(starterEntries(), 8)
		_, err := c.Add(models.BioCategory("hobby"))
		s.Error(err)
	})
}

func (s *CollectionSuite) TestUpdate() {
	s.Run("clamps content to the type maximum without error", func() {
		c := New(starterEntries(), 8)
		long := strings.Repeat("가", models.BioTypeSelfIntroduction.Spec().MaxLen+100)
		s.Require().NoError(c.Update(0, FieldContent, long))
		got := c.Entries()[0].Content
		s.Equal(models.BioTypeSelfIntroduction.Spec().MaxLen, utf8.RuneCountInString(got))
	})

	s.Run("entry 0 type is immutable", func() {
		c := New(starterEntries(), 8)
		err := c.Update(0, FieldType, string(models.BioTypePledge))
		s.Require().ErrorIs(err, ErrProtectedEntry)
		s.Equal(models.BioTypeSelfIntroduction, c.Entries()[0].Type)
	})

	s.Run("type change re-clamps existing content", func() {
		entries := starterEntries()
		entries[1].Content = strings.Repeat("나", models.BioTypeCareer.Spec().MaxLen)
		c := New(entries, 8)
		s.Require().NoError(c.Update(1, FieldType, string(models.BioTypeValues)))
		s.Equal(models.BioTypeValues.Spec().MaxLen, c.Entries()[1].ContentLength())
	})

	s.Run("tags split on commas", func() {
		c := New(starterEntries(), 8)
		s.Require().NoError(c.Update(1, FieldTags, "교육, 복지 ,, 환경"))
		s.Equal([]string{"교육", "복지", "환경"}, c.Entries()[1].Tags)
	})

	s.Run("out of range index fails", func() {
		c := New(starterEntries(), 8)
		s.Error(c.Update(5, FieldContent, "x"))
		s.Error(c.Update(-1, FieldContent, "x"))
	})
}

func (s *CollectionSuite) TestRemove() {
	s.Run("entry 0 is never removable", func() {
		for _, entries := range [][]models.BioEntry{
			starterEntries(),
			models.DefaultBioEntries(""),
		} {
			c := New(entries, 8)
			before := len(c.Entries())
			err := c.Remove(0)
			s.Require().ErrorIs(err, ErrProtectedEntry)
			s.Equal(before, c.Len())
		}
	})

	s.Run("preserves relative order of the rest", func() {
		entries := starterEntries()
		c := New(entries, 8)
		_, err := c.Add(models.BioCategoryPersonal)
		s.Require().NoError(err)
		_, err = c.Add(models.BioCategoryPerformance)
		s.Require().NoError(err)

		ids := []string{c.Entries()[0].ID, c.Entries()[2].ID, c.Entries()[3].ID}
		s.Require().NoError(c.Remove(1))
		s.Equal(3, c.Len())
		s.Equal(ids[0], c.Entries()[0].ID)
		s.Equal(ids[1], c.Entries()[1].ID)
		s.Equal(ids[2], c.Entries()[2].ID)
	})
}

func (s *CollectionSuite) TestByCategory() {
	c := New(starterEntries(), 8)
	_, err := c.Add(models.BioCategoryPersonal)
	s.Require().NoError(err)

	personal := c.ByCategory(models.BioCategoryPersonal)
	s.Len(personal, 2) // self-introduction + added values entry
	for _, e := range personal {
		s.Equal(models.BioCategoryPersonal, e.Type.Category())
	}

	performance := c.ByCategory(models.BioCategoryPerformance)
	s.Len(performance, 1)
}

func (s *CollectionSuite) TestRemainingCounter() {
	entry := models.BioEntry{Type: models.BioTypeValues, Content: "짧은 글"}
	s.Equal(models.BioTypeValues.Spec().MaxLen-3, entry.Remaining())

	// Content set by a non-editor path may exceed the limit; the counter goes
	// negative but never panics.
	entry.Content = strings.Repeat("다", models.BioTypeValues.Spec().MaxLen+5)
	s.Equal(-5, entry.Remaining())
}

func (s *CollectionSuite) TestNormalize() {
	s.Run("assigns ids, clamps, and re-sequences weights", func() {
		entries := starterEntries()
		entries[1].ID = ""
		entries[1].Content = strings.Repeat("라", models.BioTypeCareer.Spec().MaxLen+10)
		entries[1].Weight = 99

		out, err := Normalize(entries, 8)
		s.Require().NoError(err)
		s.NotEmpty(out[1].ID)
		s.Equal(models.BioTypeCareer.Spec().MaxLen, out[1].ContentLength())
		s.Equal(0, out[0].Weight)
		s.Equal(1, out[1].Weight)
	})

	s.Run("rejects over-capacity lists", func() {
		entries := starterEntries()
		for i := 0; i < 7; i++ {
			entries = append(entries, models.BioEntry{Type: models.BioTypePledge})
		}
		_, err := Normalize(entries, 8)
		s.ErrorIs(err, ErrCapacityExceeded)
	})

	s.Run("rejects a first entry that is not the self-introduction", func() {
		entries := []models.BioEntry{{Type: models.BioTypePledge}}
		_, err := Normalize(entries, 8)
		s.ErrorIs(err, ErrProtectedEntry)
	})

	s.Run("empty list is fine", func() {
		out, err := Normalize(nil, 8)
		s.Require().NoError(err)
		s.Empty(out)
	})
}
