package models

import "testing"

func TestNormalize_Defaults(t *testing.T) {
	q := &SearchQuery{Query: "meditation"}
	q.Normalize(50, 200)
	if q.Limit != 50 || q.Offset != 0 {
		t.Errorf("limit/offset = %d/%d, want 50/0", q.Limit, q.Offset)
	}
	if q.SortBy != SortByRelevance || q.SortOrder != SortDesc {
		t.Errorf("sort = %s/%s, want relevance/desc", q.SortBy, q.SortOrder)
	}
}

func TestNormalize_Clamps(t *testing.T) {
	q := &SearchQuery{Query: "x", Limit: 10000, Offset: -3, SortBy: "bogus", SortOrder: "sideways"}
	q.Normalize(50, 200)
	if q.Limit != 200 {
		t.Errorf("limit = %d, want clamp to 200", q.Limit)
	}
	if q.Offset != 0 {
		t.Errorf("offset = %d, want 0", q.Offset)
	}
	if q.SortBy != SortByRelevance || q.SortOrder != SortDesc {
		t.Errorf("invalid sort values must fall back to defaults, got %s/%s", q.SortBy, q.SortOrder)
	}
}

func TestNormalize_KeepsValidValues(t *testing.T) {
	q := &SearchQuery{Query: "x", Limit: 5, Offset: 10, SortBy: SortByRating, SortOrder: SortAsc}
	q.Normalize(50, 200)
	if q.Limit != 5 || q.Offset != 10 || q.SortBy != SortByRating || q.SortOrder != SortAsc {
		t.Errorf("valid values must be preserved: %+v", q)
	}
}

func TestFilters_Empty(t *testing.T) {
	var f *Filters
	if !f.Empty() {
		t.Error("nil filters are empty")
	}
	if !(&Filters{}).Empty() {
		t.Error("zero filters are empty")
	}
	if (&Filters{MinRating: 3}).Empty() {
		t.Error("filters with a rating bound are not empty")
	}
}
