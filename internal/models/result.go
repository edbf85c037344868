package models

// SearchResult is a single search hit with its relevance breakdown.
type SearchResult struct {
	Tip           *Tip              `json:"tip"`
	Score         float64           `json:"score"`
	MatchedFields []string          `json:"matched_fields,omitempty"`
	Highlights    map[string]string `json:"highlights,omitempty"`
	Rank          int               `json:"rank"`
}

// Facets holds frequency tables over the full filtered candidate set,
// computed before pagination.
type Facets struct {
	Categories   map[string]int `json:"categories"`
	Difficulties map[string]int `json:"difficulties"`
	Tags         map[string]int `json:"tags"`
}

// NewFacets returns empty, non-nil facet tables.
func NewFacets() Facets {
	return Facets{
		Categories:   map[string]int{},
		Difficulties: map[string]int{},
		Tags:         map[string]int{},
	}
}

// SearchResponse is the response for a search request. Total counts all
// filtered candidates, not just the returned page.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	Facets    Facets          `json:"facets"`
	Query     string          `json:"query"`
	QueryTime int64           `json:"query_time_ms"`
}
