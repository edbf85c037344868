// Package cli provides output formatting for the tipsearch CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bdbt/tipsearch/internal/models"
	"github.com/bdbt/tipsearch/pkg/utils"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}
	writeSearchResultsText(w, response)
	return nil
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms for %q\n\n", response.Total, response.QueryTime, response.Query)
	for _, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.1f | #%d %s\n", result.Rank, result.Score, result.Tip.ID, result.Tip.Title)
		fmt.Fprintf(w, "Category: %s | Difficulty: %s", result.Tip.Category, result.Tip.Difficulty)
		if len(result.Tip.Tags) > 0 {
			fmt.Fprintf(w, " | Tags: %s", strings.Join(result.Tip.Tags, ", "))
		}
		fmt.Fprintln(w)
		if len(result.MatchedFields) > 0 {
			fmt.Fprintf(w, "Matched: %s\n", strings.Join(result.MatchedFields, ", "))
		}
		if result.Tip.Description != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(result.Tip.Description, 200))
		}
		fmt.Fprintln(w)
	}
	writeFacetsText(w, response.Facets)
}

func writeFacetsText(w io.Writer, facets models.Facets) {
	if len(facets.Categories) > 0 {
		fmt.Fprintf(w, "Categories: %s\n", formatFacet(facets.Categories))
	}
	if len(facets.Difficulties) > 0 {
		fmt.Fprintf(w, "Difficulties: %s\n", formatFacet(facets.Difficulties))
	}
}

// formatFacet renders a frequency table as "key (n), key (n)" with keys
// sorted for stable output.
func formatFacet(table map[string]int) string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s (%d)", k, table[k])
	}
	return strings.Join(parts, ", ")
}

// WriteSuggestions writes autocomplete suggestions to w.
func WriteSuggestions(w io.Writer, suggestions []string, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"suggestions": suggestions})
	}
	for _, s := range suggestions {
		fmt.Fprintln(w, s)
	}
	return nil
}
