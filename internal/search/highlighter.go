package search

import (
	"sort"
	"strings"
)

// defaultSnippetLen bounds highlighted snippets so result payloads stay small.
const defaultSnippetLen = 160

// Highlight returns a snippet of text with occurrences of terms wrapped in
// <mark> tags. The snippet is a window of up to maxLen characters around the
// first match; text without any match is truncated from the start.
// Matching is case-insensitive; the original casing is preserved.
func Highlight(text string, terms []string, maxLen int) string {
	if text == "" {
		return ""
	}
	if maxLen <= 0 {
		maxLen = defaultSnippetLen
	}

	lower := strings.ToLower(text)
	first := -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		if idx := strings.Index(lower, term); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}

	start, end := 0, len(text)
	prefix, suffix := "", ""
	if end-start > maxLen {
		if first > maxLen/4 {
			start = first - maxLen/4
			prefix = "..."
		}
		if start+maxLen < end {
			end = start + maxLen
			suffix = "..."
		}
	}
	window := text[start:end]
	return prefix + markTerms(window, terms) + suffix
}

// markTerms wraps every case-insensitive occurrence of each term in <mark>
// tags. All matches are located against the original text and overlapping
// ranges merged before wrapping, so inserted tags are never matched again.
func markTerms(text string, terms []string) string {
	lower := strings.ToLower(text)
	type span struct{ start, end int }
	var spans []span
	for _, term := range terms {
		if term == "" {
			continue
		}
		pos := 0
		for {
			idx := strings.Index(lower[pos:], term)
			if idx < 0 {
				break
			}
			idx += pos
			spans = append(spans, span{idx, idx + len(term)})
			pos = idx + len(term)
		}
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	var b strings.Builder
	pos := 0
	for _, s := range merged {
		b.WriteString(text[pos:s.start])
		b.WriteString("<mark>")
		b.WriteString(text[s.start:s.end])
		b.WriteString("</mark>")
		pos = s.end
	}
	b.WriteString(text[pos:])
	return b.String()
}
