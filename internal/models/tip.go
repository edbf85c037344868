// Package models defines core data structures for tips, queries, and search results.
package models

import (
	"strings"
	"time"
)

// Category is the content pillar a tip belongs to.
type Category string

const (
	CategoryHealth    Category = "health"
	CategoryWealth    Category = "wealth"
	CategoryHappiness Category = "happiness"
)

// Difficulty grades how hard a tip is to put into practice.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyAdvanced Difficulty = "Advanced"
)

// descriptionCharsPerMinute is the word-count proxy used to estimate read time.
const descriptionCharsPerMinute = 200

// Tip represents a single content item in the catalog.
type Tip struct {
	ID               int        `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Subtitle         string     `json:"subtitle,omitempty" db:"subtitle"`
	Description      string     `json:"description" db:"description"`
	PrimaryBenefit   string     `json:"primary_benefit,omitempty" db:"primary_benefit"`
	SecondaryBenefit string     `json:"secondary_benefit,omitempty" db:"secondary_benefit"`
	TertiaryBenefit  string     `json:"tertiary_benefit,omitempty" db:"tertiary_benefit"`
	Tags             []string   `json:"tags,omitempty" db:"tags"`
	Category         Category   `json:"category" db:"category"`
	Difficulty       Difficulty `json:"difficulty" db:"difficulty"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	ViewCount        int        `json:"view_count" db:"view_count"`
	Rating           float64    `json:"rating" db:"rating"`
	IsFeatured       bool       `json:"is_featured" db:"is_featured"`
}

// SearchText returns the composite text the index is built from:
// title, subtitle, description, and tags joined with spaces.
func (t *Tip) SearchText() string {
	parts := make([]string, 0, 4+len(t.Tags))
	parts = append(parts, t.Title, t.Subtitle, t.Description)
	parts = append(parts, t.Tags...)
	return strings.Join(parts, " ")
}

// Benefits returns the three benefit fields joined with spaces.
func (t *Tip) Benefits() string {
	return strings.TrimSpace(strings.Join([]string{
		t.PrimaryBenefit, t.SecondaryBenefit, t.TertiaryBenefit,
	}, " "))
}

// ReadTimeMinutes estimates reading time from the description length.
// Always at least 1 for a non-empty description.
func (t *Tip) ReadTimeMinutes() int {
	n := len(t.Description)
	if n == 0 {
		return 0
	}
	return (n + descriptionCharsPerMinute - 1) / descriptionCharsPerMinute
}

// Clone returns a deep copy so callers never share the tag slice with the index.
func (t *Tip) Clone() *Tip {
	c := *t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return &c
}
