// Package analysis provides text tokenization for indexing and querying.
package analysis

import (
	"strings"
	"unicode"
)

// DefaultStopWords are common English function words excluded from the index.
var DefaultStopWords = []string{
	"the", "is", "at", "which", "on", "and", "a", "an", "as", "are",
	"was", "were", "been", "be", "have", "has", "had", "do", "does",
	"did", "will", "would", "could", "should", "may", "might", "must",
	"shall", "to", "of", "in", "for", "with",
}

// Tokenizer splits free text into normalized, stop-word-filtered terms.
type Tokenizer struct {
	stopWords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the given stop words.
// A nil slice uses DefaultStopWords; an empty slice disables stop-word filtering.
func NewTokenizer(stopWords []string) *Tokenizer {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopWords: set}
}

// Tokenize lowercases text, replaces every character that is not a letter,
// digit, or underscore with a space, splits on whitespace, and drops tokens
// of length <= 1 and stop words. Empty input yields an empty slice.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	normalized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(normalized)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) <= 1 {
			continue
		}
		if _, stop := t.stopWords[f]; stop {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}
