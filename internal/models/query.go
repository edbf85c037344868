package models

import "time"

// SortBy selects the ranking key for search results.
type SortBy string

const (
	SortByRelevance  SortBy = "relevance"
	SortByDate       SortBy = "date"
	SortByPopularity SortBy = "popularity"
	SortByRating     SortBy = "rating"
)

// SortOrder selects ascending or descending order for the active sort key.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters narrows search candidates before scoring. Each field is optional;
// a zero value means no constraint. All present filters must pass (AND).
type Filters struct {
	Categories    []Category   `json:"categories,omitempty" yaml:"categories"`
	Difficulties  []Difficulty `json:"difficulties,omitempty" yaml:"difficulties"`
	Tags          []string     `json:"tags,omitempty" yaml:"tags"`
	CreatedAfter  *time.Time   `json:"created_after,omitempty" yaml:"created_after"`
	CreatedBefore *time.Time   `json:"created_before,omitempty" yaml:"created_before"`
	MinRating     float64      `json:"min_rating,omitempty" yaml:"min_rating"`
	MinReadTime   int          `json:"min_read_time,omitempty" yaml:"min_read_time"`
	MaxReadTime   int          `json:"max_read_time,omitempty" yaml:"max_read_time"`
}

// Empty reports whether no filter is active.
func (f *Filters) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Categories) == 0 && len(f.Difficulties) == 0 && len(f.Tags) == 0 &&
		f.CreatedAfter == nil && f.CreatedBefore == nil &&
		f.MinRating == 0 && f.MinReadTime == 0 && f.MaxReadTime == 0
}

// SearchQuery represents a search request with optional filters and paging.
type SearchQuery struct {
	Query     string    `json:"query"`
	Filters   *Filters  `json:"filters,omitempty"`
	SortBy    SortBy    `json:"sort_by,omitempty"`
	SortOrder SortOrder `json:"sort_order,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	Offset    int       `json:"offset,omitempty"`
}

// Normalize fills in defaults and clamps paging values.
// maxLimit <= 0 means no upper bound on Limit.
func (q *SearchQuery) Normalize(defaultLimit, maxLimit int) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	switch q.SortBy {
	case SortByRelevance, SortByDate, SortByPopularity, SortByRating:
	default:
		q.SortBy = SortByRelevance
	}
	switch q.SortOrder {
	case SortAsc, SortDesc:
	default:
		q.SortOrder = SortDesc
	}
}
