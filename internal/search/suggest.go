package search

import (
	"strings"

	"github.com/bdbt/tipsearch/internal/index"
)

// minPartialLen is the shortest partial query that yields suggestions,
// matching the shortest indexed prefix.
const minPartialLen = 2

// defaultSuggestionLimit caps suggestions when the caller passes no limit.
const defaultSuggestionLimit = 10

// PopularProvider supplies the static or analytics-backed popular-search
// list merged into autocomplete suggestions.
type PopularProvider interface {
	Popular() []string
}

// StaticPopular is a fixed popular-search list.
type StaticPopular struct {
	queries []string
}

var defaultPopular = []string{
	"morning routine",
	"meditation",
	"budgeting",
	"saving money",
	"better sleep",
	"gratitude",
	"exercise habits",
	"investing",
}

// NewStaticPopular creates a provider from queries; nil uses the built-in list.
func NewStaticPopular(queries []string) *StaticPopular {
	if queries == nil {
		queries = defaultPopular
	}
	return &StaticPopular{queries: queries}
}

// Popular returns a copy of the configured list.
func (p *StaticPopular) Popular() []string {
	return append([]string(nil), p.queries...)
}

// Suggester produces autocomplete candidates from index terms plus the
// popular-search list.
type Suggester struct {
	idx     *index.Index
	popular PopularProvider
}

// NewSuggester creates a suggester. popular may be nil to skip the
// popular-search merge.
func NewSuggester(idx *index.Index, popular PopularProvider) *Suggester {
	return &Suggester{idx: idx, popular: popular}
}

// Suggest returns up to limit completions for partial. Partials shorter than
// two characters yield nothing. Index terms starting with the partial come
// first, ordered by posting-set size descending then lexicographically
// (capped at limit*2 candidates before truncation); popular searches
// containing the partial as a substring follow.
func (s *Suggester) Suggest(partial string, limit int) []string {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if len([]rune(partial)) < minPartialLen {
		return nil
	}
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	snap := s.idx.Snapshot()
	stats := snap.TermsWithPrefix(partial, limit*2)

	seen := make(map[string]struct{}, len(stats))
	suggestions := make([]string, 0, len(stats))
	for _, st := range stats {
		seen[st.Term] = struct{}{}
		suggestions = append(suggestions, st.Term)
	}

	if s.popular != nil {
		for _, q := range s.popular.Popular() {
			lq := strings.ToLower(q)
			if !strings.Contains(lq, partial) {
				continue
			}
			if _, dup := seen[lq]; dup {
				continue
			}
			seen[lq] = struct{}{}
			suggestions = append(suggestions, q)
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
