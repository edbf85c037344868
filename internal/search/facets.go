package search

import (
	"github.com/bdbt/tipsearch/internal/models"
)

// AggregateFacets tallies category, difficulty, and tag counts over the
// filtered candidate set (before pagination). A tip with N tags contributes
// to N tag buckets.
func AggregateFacets(tips []*models.Tip) models.Facets {
	facets := models.NewFacets()
	for _, tip := range tips {
		if tip.Category != "" {
			facets.Categories[string(tip.Category)]++
		}
		if tip.Difficulty != "" {
			facets.Difficulties[string(tip.Difficulty)]++
		}
		for _, tag := range tip.Tags {
			facets.Tags[tag]++
		}
	}
	return facets
}
