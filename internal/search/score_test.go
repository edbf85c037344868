package search

import (
	"testing"
	"time"

	"github.com/bdbt/tipsearch/internal/models"
)

func matchedSet(terms ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

func TestScore_TitleBeatsDescription(t *testing.T) {
	s := NewScorer(DefaultWeights())
	inTitle := &models.Tip{ID: 1, Title: "Morning Meditation", Description: "calm your mind"}
	inDescription := &models.Tip{ID: 2, Title: "Calm Mornings", Description: "try meditation daily"}

	terms := []string{"meditation"}
	matched := matchedSet("meditation")

	titleScore, titleFields := s.Score(inTitle, terms, matched, "meditation")
	descScore, descFields := s.Score(inDescription, terms, matched, "meditation")

	if titleScore <= descScore {
		t.Errorf("title match (%.0f) must outscore description match (%.0f)", titleScore, descScore)
	}
	if len(titleFields) == 0 || titleFields[0] != FieldTitle {
		t.Errorf("expected title in matched fields, got %v", titleFields)
	}
	if len(descFields) != 1 || descFields[0] != FieldDescription {
		t.Errorf("expected only description matched, got %v", descFields)
	}
}

func TestScore_Coverage(t *testing.T) {
	s := NewScorer(DefaultWeights())
	tip := &models.Tip{ID: 1, Title: "unrelated"}

	full, _ := s.Score(tip, []string{"alpha", "beta"}, matchedSet("alpha", "beta"), "alpha beta")
	half, _ := s.Score(tip, []string{"alpha", "beta"}, matchedSet("alpha"), "alpha beta")

	// No field contains the terms, so only coverage contributes.
	if full != 100 {
		t.Errorf("full coverage score = %.1f, want 100", full)
	}
	if half != 50 {
		t.Errorf("half coverage score = %.1f, want 50", half)
	}
}

func TestScore_ExactPhraseBonus(t *testing.T) {
	w := DefaultWeights()
	s := NewScorer(w)
	tip := &models.Tip{ID: 1, Title: "Morning Meditation Routine"}

	terms := []string{"morning", "meditation"}
	matched := matchedSet("morning", "meditation")

	phrase, _ := s.Score(tip, terms, matched, "morning meditation")
	scattered, _ := s.Score(tip, terms, matched, "meditation morning")

	if phrase-scattered != w.ExactPhrase {
		t.Errorf("exact phrase delta = %.1f, want %.1f", phrase-scattered, w.ExactPhrase)
	}
}

func TestScore_QualitySignals(t *testing.T) {
	w := DefaultWeights()
	s := NewScorer(w)
	terms := []string{"zz"}
	matched := matchedSet("zz")

	base, _ := s.Score(&models.Tip{ID: 1}, terms, matched, "zz")
	popular, _ := s.Score(&models.Tip{ID: 1, ViewCount: 1001}, terms, matched, "zz")
	rated, _ := s.Score(&models.Tip{ID: 1, Rating: 4.5}, terms, matched, "zz")
	featured, _ := s.Score(&models.Tip{ID: 1, IsFeatured: true}, terms, matched, "zz")

	if popular-base != w.PopularViews {
		t.Errorf("popular views bonus = %.1f, want %.1f", popular-base, w.PopularViews)
	}
	if rated-base != w.HighRating {
		t.Errorf("high rating bonus = %.1f, want %.1f", rated-base, w.HighRating)
	}
	if featured-base != w.Featured {
		t.Errorf("featured bonus = %.1f, want %.1f", featured-base, w.Featured)
	}

	// Thresholds are strict.
	atThreshold, _ := s.Score(&models.Tip{ID: 1, ViewCount: 1000, Rating: 4.0}, terms, matched, "zz")
	if atThreshold != base {
		t.Errorf("at-threshold score = %.1f, want %.1f", atThreshold, base)
	}
}

func TestScore_RecencyBonus(t *testing.T) {
	w := DefaultWeights()
	s := NewScorer(w)
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	terms := []string{"zz"}
	matched := matchedSet("zz")

	fresh, _ := s.Score(&models.Tip{ID: 1, CreatedAt: now.Add(-10 * 24 * time.Hour)}, terms, matched, "zz")
	stale, _ := s.Score(&models.Tip{ID: 1, CreatedAt: now.Add(-45 * 24 * time.Hour)}, terms, matched, "zz")
	unknown, _ := s.Score(&models.Tip{ID: 1}, terms, matched, "zz")

	if fresh-stale != w.Recency {
		t.Errorf("recency delta = %.1f, want %.1f", fresh-stale, w.Recency)
	}
	if unknown != stale {
		t.Error("zero created_at must not earn the recency bonus")
	}
}

func TestScore_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Title = 500
	s := NewScorer(w)
	tip := &models.Tip{ID: 1, Title: "meditation"}

	got, _ := s.Score(tip, []string{"meditation"}, matchedSet("meditation"), "meditation")
	// coverage 100 + title 500 + exact phrase 75
	if got != 675 {
		t.Errorf("score with boosted title weight = %.1f, want 675", got)
	}
}

func TestScore_NoTerms(t *testing.T) {
	s := NewScorer(DefaultWeights())
	score, fields := s.Score(&models.Tip{ID: 1, Title: "anything"}, nil, nil, "")
	if score != 0 || fields != nil {
		t.Errorf("expected zero score for no terms, got %.1f %v", score, fields)
	}
}
