package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bdbt/tipsearch/internal/models"
)

func sampleResponse() *models.SearchResponse {
	facets := models.NewFacets()
	facets.Categories["happiness"] = 1
	return &models.SearchResponse{
		Results: []*models.SearchResult{{
			Tip: &models.Tip{
				ID:          1,
				Title:       "Morning Meditation",
				Description: "Ten minutes of quiet breathing",
				Category:    models.CategoryHappiness,
				Difficulty:  models.DifficultyEasy,
				Tags:        []string{"mindfulness"},
			},
			Score:         225,
			MatchedFields: []string{"title"},
			Rank:          1,
		}},
		Total:  1,
		Facets: facets,
		Query:  "meditation",
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Found 1 results", "Morning Meditation", "happiness", "Matched: title", "mindfulness"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output not parseable: %v", err)
	}
	if decoded.Total != 1 || decoded.Results[0].Tip.Title != "Morning Meditation" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteSuggestions(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSuggestions(&buf, []string{"meditation", "media"}, OutputText); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "meditation\nmedia\n" {
		t.Errorf("text suggestions = %q", got)
	}

	buf.Reset()
	if err := WriteSuggestions(&buf, []string{"meditation"}, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload["suggestions"]) != 1 {
		t.Errorf("json suggestions = %v", payload)
	}
}

func TestFormatFacet_Sorted(t *testing.T) {
	got := formatFacet(map[string]int{"wealth": 2, "health": 1})
	if got != "health (1), wealth (2)" {
		t.Errorf("formatFacet() = %q", got)
	}
}
