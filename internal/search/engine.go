// Package search provides the tip search engine: candidate generation over
// the inverted index, filtering, scoring, sorting, pagination, and facets.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bdbt/tipsearch/internal/analytics"
	"github.com/bdbt/tipsearch/internal/index"
	"github.com/bdbt/tipsearch/internal/models"
	"github.com/bdbt/tipsearch/internal/storage"
)

// IndexStats describes the current index build for status reporting.
type IndexStats struct {
	Tips    int       `json:"tips"`
	Terms   int       `json:"terms"`
	BuiltAt time.Time `json:"built_at"`
}

// Options configures an Engine. Zero values get sensible defaults.
type Options struct {
	Weights         *Weights
	DefaultLimit    int
	MaxLimit        int
	SuggestionLimit int
	Popular         PopularProvider
	Trending        TrendingProvider
	Recorder        analytics.Recorder
	Logger          *zap.Logger
}

// Engine runs search over the tip index. Engines are plain values wired by
// the caller; multiple independent engines and indices can coexist.
type Engine struct {
	idx             *index.Index
	store           storage.Storage
	scorer          *Scorer
	suggester       *Suggester
	trending        TrendingProvider
	recorder        analytics.Recorder
	logger          *zap.Logger
	defaultLimit    int
	maxLimit        int
	suggestionLimit int
}

// NewEngine creates a search engine over idx. store supplies the catalog on
// Reindex and may be nil for callers that build the index directly.
func NewEngine(idx *index.Index, store storage.Storage, opts Options) *Engine {
	weights := DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.Trending == nil {
		opts.Trending = NewStaticTrending(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		idx:             idx,
		store:           store,
		scorer:          NewScorer(weights),
		suggester:       NewSuggester(idx, opts.Popular),
		trending:        opts.Trending,
		recorder:        opts.Recorder,
		logger:          opts.Logger,
		defaultLimit:    opts.DefaultLimit,
		maxLimit:        opts.MaxLimit,
		suggestionLimit: opts.SuggestionLimit,
	}
}

// Reindex rebuilds the index from the full catalog in storage. The rebuild
// is an atomic swap; in-flight searches keep their snapshot.
func (e *Engine) Reindex(ctx context.Context) error {
	if e.store == nil {
		return fmt.Errorf("no storage configured")
	}
	tips, err := e.store.ListTips(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tips: %w", err)
	}
	e.idx.Build(tips)
	snap := e.idx.Snapshot()
	e.logger.Info("index rebuilt",
		zap.Int("tips", snap.DocCount()),
		zap.Int("terms", snap.TermCount()),
	)
	return nil
}

// Search runs a query and returns ranked, paginated results plus facets over
// the full filtered candidate set. A blank query is not an error: it returns
// an empty result set with empty facets.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()
	q.Normalize(e.defaultLimit, e.maxLimit)

	resp := &models.SearchResponse{
		Results: []*models.SearchResult{},
		Facets:  models.NewFacets(),
		Query:   q.Query,
	}

	trimmed := strings.TrimSpace(q.Query)
	terms := dedupe(e.idx.Tokenizer().Tokenize(trimmed))
	if len(terms) == 0 {
		resp.QueryTime = time.Since(start).Milliseconds()
		return resp, nil
	}

	snap := e.idx.Snapshot()

	// Candidate generation: union posting sets per query term, remembering
	// which terms matched each candidate.
	matchedTerms := make(map[uint32]map[string]struct{})
	for _, term := range terms {
		bm := snap.Lookup(term)
		if bm == nil {
			continue
		}
		it := bm.Iterator()
		for it.HasNext() {
			id := it.Next()
			set, ok := matchedTerms[id]
			if !ok {
				set = make(map[string]struct{}, len(terms))
				matchedTerms[id] = set
			}
			set[term] = struct{}{}
		}
	}

	// Filter and score. Ids that no longer resolve are skipped, guarding
	// against an index/snapshot desync.
	candidates := make([]*models.SearchResult, 0, len(matchedTerms))
	facetTips := make([]*models.Tip, 0, len(matchedTerms))
	for id, matched := range matchedTerms {
		tip := snap.Tip(id)
		if tip == nil {
			continue
		}
		if !PassesFilters(tip, q.Filters) {
			continue
		}
		score, fields := e.scorer.Score(tip, terms, matched, trimmed)
		candidates = append(candidates, &models.SearchResult{
			Tip:           tip.Clone(),
			Score:         score,
			MatchedFields: fields,
			Highlights:    buildHighlights(tip, fields, matched),
		})
		facetTips = append(facetTips, tip)
	}

	sortResults(candidates, q.SortBy, q.SortOrder)

	resp.Total = len(candidates)
	resp.Facets = AggregateFacets(facetTips)

	lo := q.Offset
	if lo > len(candidates) {
		lo = len(candidates)
	}
	hi := lo + q.Limit
	if hi > len(candidates) {
		hi = len(candidates)
	}
	for i, r := range candidates[lo:hi] {
		r.Rank = lo + i + 1
		resp.Results = append(resp.Results, r)
	}

	resp.QueryTime = time.Since(start).Milliseconds()

	if e.recorder != nil {
		go e.logSearch(q.Query, resp.Total)
	}
	return resp, nil
}

// Suggest returns autocomplete candidates for a partial query.
func (e *Engine) Suggest(partial string, limit int) []string {
	if limit <= 0 {
		limit = e.suggestionLimit
	}
	return e.suggester.Suggest(partial, limit)
}

// Trending returns the current trending-search list.
func (e *Engine) Trending() []string {
	return e.trending.Trending()
}

// RecordClick reports that the user clicked a result for query. Failures are
// logged, never returned.
func (e *Engine) RecordClick(query string, tipID int) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.LogSearch(context.Background(), query, 0, tipID); err != nil {
		e.logger.Warn("failed to record click", zap.Error(err))
	}
}

// Stats returns counts for the current index snapshot.
func (e *Engine) Stats() IndexStats {
	snap := e.idx.Snapshot()
	return IndexStats{Tips: snap.DocCount(), Terms: snap.TermCount(), BuiltAt: snap.BuiltAt()}
}

func (e *Engine) logSearch(query string, total int) {
	if err := e.recorder.LogSearch(context.Background(), query, total, 0); err != nil {
		e.logger.Warn("failed to log search", zap.Error(err))
	}
}

// buildHighlights produces a per-field snippet map for the fields that
// matched, using only the terms the index actually matched.
func buildHighlights(tip *models.Tip, fields []string, matched map[string]struct{}) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	terms := make([]string, 0, len(matched))
	for term := range matched {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	highlights := make(map[string]string, len(fields))
	for _, field := range fields {
		switch field {
		case FieldTitle:
			highlights[field] = Highlight(tip.Title, terms, 0)
		case FieldSubtitle:
			highlights[field] = Highlight(tip.Subtitle, terms, 0)
		case FieldDescription:
			highlights[field] = Highlight(tip.Description, terms, 0)
		case FieldTags:
			highlights[field] = Highlight(strings.Join(tip.Tags, ", "), terms, 0)
		case FieldBenefits:
			highlights[field] = Highlight(tip.Benefits(), terms, 0)
		}
	}
	return highlights
}

// sortResults orders candidates by the requested key. Ties fall back to
// score descending, then id ascending, so ordering is deterministic.
func sortResults(results []*models.SearchResult, by models.SortBy, order models.SortOrder) {
	asc := order == models.SortAsc
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		var less, eq bool
		switch by {
		case models.SortByDate:
			less = a.Tip.CreatedAt.Before(b.Tip.CreatedAt)
			eq = a.Tip.CreatedAt.Equal(b.Tip.CreatedAt)
		case models.SortByPopularity:
			less = a.Tip.ViewCount < b.Tip.ViewCount
			eq = a.Tip.ViewCount == b.Tip.ViewCount
		case models.SortByRating:
			less = a.Tip.Rating < b.Tip.Rating
			eq = a.Tip.Rating == b.Tip.Rating
		default:
			less = a.Score < b.Score
			eq = a.Score == b.Score
		}
		if !eq {
			if asc {
				return less
			}
			return !less
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Tip.ID < b.Tip.ID
	})
}

// dedupe removes repeated terms, preserving first-seen order.
func dedupe(terms []string) []string {
	if len(terms) < 2 {
		return terms
	}
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
