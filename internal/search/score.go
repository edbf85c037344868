package search

import (
	"strings"
	"time"

	"github.com/bdbt/tipsearch/internal/models"
)

// Quality-signal thresholds. A tip over these marks is considered popular /
// highly rated / fresh for scoring purposes.
const (
	popularViewThreshold = 1000
	highRatingThreshold  = 4.0
	recencyWindow        = 30 * 24 * time.Hour
)

// Weights holds the additive relevance scoring constants. The defaults are
// deliberately simple, explainable point values rather than a probabilistic
// model; override individual fields via config to tune ranking.
type Weights struct {
	// Coverage scales the fraction of query terms that matched.
	Coverage float64 `yaml:"coverage"`
	// Per matching query term found in the field.
	Title       float64 `yaml:"title"`
	Subtitle    float64 `yaml:"subtitle"`
	Tag         float64 `yaml:"tag"`
	Description float64 `yaml:"description"`
	Benefit     float64 `yaml:"benefit"`
	// Once per result.
	ExactPhrase  float64 `yaml:"exact_phrase"`
	PopularViews float64 `yaml:"popular_views"`
	HighRating   float64 `yaml:"high_rating"`
	Featured     float64 `yaml:"featured"`
	Recency      float64 `yaml:"recency"`
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Coverage:     100,
		Title:        50,
		Subtitle:     30,
		Tag:          40,
		Description:  10,
		Benefit:      20,
		ExactPhrase:  75,
		PopularViews: 10,
		HighRating:   15,
		Featured:     25,
		Recency:      5,
	}
}

// Scorer computes relevance scores for filtered candidates.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

// NewScorer creates a scorer with the given weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights, now: time.Now}
}

// Matched-field names reported in search results.
const (
	FieldTitle       = "title"
	FieldSubtitle    = "subtitle"
	FieldTags        = "tags"
	FieldDescription = "description"
	FieldBenefits    = "benefits"
)

// Score computes the additive relevance score for tip against the query.
// queryTerms is the deduplicated token list of the query, matched the subset
// of those terms the index matched for this tip, and rawQuery the trimmed
// original query string (for the exact-phrase bonus). Returns the score and
// the fields that contained a match, in a fixed field order.
func (s *Scorer) Score(tip *models.Tip, queryTerms []string, matched map[string]struct{}, rawQuery string) (float64, []string) {
	if len(queryTerms) == 0 {
		return 0, nil
	}

	title := strings.ToLower(tip.Title)
	subtitle := strings.ToLower(tip.Subtitle)
	description := strings.ToLower(tip.Description)
	benefits := strings.ToLower(tip.Benefits())
	tags := make([]string, len(tip.Tags))
	for i, tag := range tip.Tags {
		tags[i] = strings.ToLower(tag)
	}

	score := float64(len(matched)) / float64(len(queryTerms)) * s.weights.Coverage

	var inTitle, inSubtitle, inTags, inDescription, inBenefits bool
	for _, term := range queryTerms {
		if _, ok := matched[term]; !ok {
			continue
		}
		if strings.Contains(title, term) {
			score += s.weights.Title
			inTitle = true
		}
		if subtitle != "" && strings.Contains(subtitle, term) {
			score += s.weights.Subtitle
			inSubtitle = true
		}
		for _, tag := range tags {
			if strings.Contains(tag, term) {
				score += s.weights.Tag
				inTags = true
				break
			}
		}
		if strings.Contains(description, term) {
			score += s.weights.Description
			inDescription = true
		}
		if benefits != "" && strings.Contains(benefits, term) {
			score += s.weights.Benefit
			inBenefits = true
		}
	}

	phrase := strings.ToLower(rawQuery)
	if phrase != "" && strings.Contains(title+" "+subtitle+" "+description, phrase) {
		score += s.weights.ExactPhrase
	}

	if tip.ViewCount > popularViewThreshold {
		score += s.weights.PopularViews
	}
	if tip.Rating > highRatingThreshold {
		score += s.weights.HighRating
	}
	if tip.IsFeatured {
		score += s.weights.Featured
	}
	if !tip.CreatedAt.IsZero() && s.now().Sub(tip.CreatedAt) < recencyWindow {
		score += s.weights.Recency
	}

	var fields []string
	if inTitle {
		fields = append(fields, FieldTitle)
	}
	if inSubtitle {
		fields = append(fields, FieldSubtitle)
	}
	if inTags {
		fields = append(fields, FieldTags)
	}
	if inDescription {
		fields = append(fields, FieldDescription)
	}
	if inBenefits {
		fields = append(fields, FieldBenefits)
	}
	return score, fields
}
