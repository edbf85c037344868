package search

import (
	"github.com/bdbt/tipsearch/internal/models"
)

// PassesFilters reports whether tip satisfies every active filter.
// Absent filters are no constraint; all present filters must pass.
// A tip missing the data a filter needs (e.g. zero created_at against a
// date filter) does not pass that filter. Never panics.
func PassesFilters(tip *models.Tip, f *models.Filters) bool {
	if f.Empty() {
		return true
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, tip.Category) {
		return false
	}
	if len(f.Difficulties) > 0 && !containsDifficulty(f.Difficulties, tip.Difficulty) {
		return false
	}
	if len(f.Tags) > 0 && !tagsIntersect(tip.Tags, f.Tags) {
		return false
	}
	if f.CreatedAfter != nil {
		if tip.CreatedAt.IsZero() || tip.CreatedAt.Before(*f.CreatedAfter) {
			return false
		}
	}
	if f.CreatedBefore != nil {
		if tip.CreatedAt.IsZero() || tip.CreatedAt.After(*f.CreatedBefore) {
			return false
		}
	}
	if f.MinRating > 0 && tip.Rating < f.MinRating {
		return false
	}
	if f.MinReadTime > 0 && tip.ReadTimeMinutes() < f.MinReadTime {
		return false
	}
	if f.MaxReadTime > 0 && tip.ReadTimeMinutes() > f.MaxReadTime {
		return false
	}
	return true
}

func containsCategory(haystack []models.Category, needle models.Category) bool {
	for _, c := range haystack {
		if c == needle {
			return true
		}
	}
	return false
}

func containsDifficulty(haystack []models.Difficulty, needle models.Difficulty) bool {
	for _, d := range haystack {
		if d == needle {
			return true
		}
	}
	return false
}

func tagsIntersect(tipTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range tipTags {
			if t == w {
				return true
			}
		}
	}
	return false
}
