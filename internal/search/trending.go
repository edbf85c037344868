package search

import (
	"context"

	"go.uber.org/zap"
)

// TrendingProvider supplies the trending-search list. The default is static;
// an analytics-backed implementation can be swapped in without touching the
// engine.
type TrendingProvider interface {
	Trending() []string
}

// StaticTrending is a fixed trending-search list.
type StaticTrending struct {
	queries []string
}

var defaultTrending = []string{
	"cold shower benefits",
	"morning routine",
	"compound interest",
	"mindfulness",
	"habit stacking",
	"emergency fund",
}

// NewStaticTrending creates a provider from queries; nil uses the built-in list.
func NewStaticTrending(queries []string) *StaticTrending {
	if queries == nil {
		queries = defaultTrending
	}
	return &StaticTrending{queries: queries}
}

// Trending returns a copy of the configured list.
func (t *StaticTrending) Trending() []string {
	return append([]string(nil), t.queries...)
}

// QueryFrequencySource reports the most frequent logged queries, e.g. the
// analytics recorder.
type QueryFrequencySource interface {
	TopQueries(ctx context.Context, limit int) ([]string, error)
}

// AnalyticsTrending derives trending searches from logged query frequency,
// falling back to a static list while no data has accumulated.
type AnalyticsTrending struct {
	source   QueryFrequencySource
	fallback TrendingProvider
	limit    int
	logger   *zap.Logger
}

// NewAnalyticsTrending creates an analytics-backed trending provider.
// fallback may be nil, in which case the built-in static list is used.
func NewAnalyticsTrending(source QueryFrequencySource, fallback TrendingProvider, limit int, logger *zap.Logger) *AnalyticsTrending {
	if fallback == nil {
		fallback = NewStaticTrending(nil)
	}
	if limit <= 0 {
		limit = len(defaultTrending)
	}
	return &AnalyticsTrending{source: source, fallback: fallback, limit: limit, logger: logger}
}

// Trending returns the top logged queries, or the fallback list when the log
// is empty or unavailable.
func (t *AnalyticsTrending) Trending() []string {
	queries, err := t.source.TopQueries(context.Background(), t.limit)
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("trending query lookup failed", zap.Error(err))
		}
		return t.fallback.Trending()
	}
	if len(queries) == 0 {
		return t.fallback.Trending()
	}
	return queries
}
