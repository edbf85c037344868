// Package index provides the in-memory inverted index over the tip catalog.
package index

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring"

	"github.com/bdbt/tipsearch/internal/analysis"
	"github.com/bdbt/tipsearch/internal/models"
)

// minPrefixLen is the shortest indexed prefix. Every prefix of every term
// from this length up to the full term is indexed, which is what makes
// type-ahead partial queries match without a separate trie.
const minPrefixLen = 2

// Index is a rebuildable inverted index mapping terms (and their prefixes)
// to posting bitmaps of tip ids. Build replaces the whole index and the tip
// snapshot together, so queries always see a consistent pair.
type Index struct {
	tokenizer *analysis.Tokenizer

	buildMu sync.Mutex   // serializes concurrent builds
	mu      sync.RWMutex // guards snapshot swap
	current *Snapshot
}

// Snapshot is an immutable view of the index at one build. Its maps are
// never mutated after publication, so it is safe to share across queries.
type Snapshot struct {
	postings map[string]*roaring.Bitmap
	tips     map[uint32]*models.Tip
	builtAt  time.Time
}

// TermStat pairs an index term with the size of its posting set.
type TermStat struct {
	Term  string
	Count uint64
}

// New creates an empty index using the given tokenizer.
func New(tokenizer *analysis.Tokenizer) *Index {
	return &Index{
		tokenizer: tokenizer,
		current: &Snapshot{
			postings: map[string]*roaring.Bitmap{},
			tips:     map[uint32]*models.Tip{},
		},
	}
}

// Build constructs a fresh index from tips and atomically replaces the
// previous one. Tips without a positive id are skipped. Safe to call
// repeatedly; concurrent builds are serialized.
func (ix *Index) Build(tips []*models.Tip) {
	ix.buildMu.Lock()
	defer ix.buildMu.Unlock()

	snap := &Snapshot{
		postings: make(map[string]*roaring.Bitmap),
		tips:     make(map[uint32]*models.Tip, len(tips)),
		builtAt:  time.Now(),
	}

	for _, tip := range tips {
		if tip == nil || tip.ID <= 0 {
			continue
		}
		id := uint32(tip.ID)
		snap.tips[id] = tip.Clone()
		for _, term := range ix.tokenizer.Tokenize(tip.SearchText()) {
			addWithPrefixes(snap.postings, term, id)
		}
	}

	ix.mu.Lock()
	ix.current = snap
	ix.mu.Unlock()
}

// addWithPrefixes adds id to the posting set of term and of every prefix of
// term with length >= minPrefixLen. Prefixes are taken over runes so
// multi-byte terms index cleanly.
func addWithPrefixes(postings map[string]*roaring.Bitmap, term string, id uint32) {
	runes := []rune(term)
	for end := minPrefixLen; end <= len(runes); end++ {
		key := string(runes[:end])
		bm, ok := postings[key]
		if !ok {
			bm = roaring.New()
			postings[key] = bm
		}
		bm.Add(id)
	}
}

// Snapshot returns the current immutable index view. Queries should grab
// one snapshot and use it for the whole request.
func (ix *Index) Snapshot() *Snapshot {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.current
}

// Tokenizer returns the tokenizer the index was built with, so queries are
// analyzed identically to documents.
func (ix *Index) Tokenizer() *analysis.Tokenizer { return ix.tokenizer }

// Lookup returns the posting bitmap for a term, or nil if absent.
// Callers must not mutate the returned bitmap.
func (s *Snapshot) Lookup(term string) *roaring.Bitmap {
	return s.postings[term]
}

// Tip resolves a tip by id, or nil if the id is not in this snapshot.
func (s *Snapshot) Tip(id uint32) *models.Tip {
	return s.tips[id]
}

// Tips returns all tips in the snapshot in unspecified order.
func (s *Snapshot) Tips() []*models.Tip {
	out := make([]*models.Tip, 0, len(s.tips))
	for _, t := range s.tips {
		out = append(out, t)
	}
	return out
}

// DocCount returns the number of indexed tips.
func (s *Snapshot) DocCount() int { return len(s.tips) }

// TermCount returns the number of distinct index keys, prefixes included.
func (s *Snapshot) TermCount() int { return len(s.postings) }

// BuiltAt returns when this snapshot was built; zero for the empty index.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// TermsWithPrefix returns index keys starting with prefix (the exact prefix
// key itself excluded), ordered by posting-set size descending, then
// lexicographically, truncated to max. Map iteration order never leaks into
// the result.
func (s *Snapshot) TermsWithPrefix(prefix string, max int) []TermStat {
	if max <= 0 {
		return nil
	}
	var stats []TermStat
	for term, bm := range s.postings {
		if term == prefix || !strings.HasPrefix(term, prefix) {
			continue
		}
		stats = append(stats, TermStat{Term: term, Count: bm.GetCardinality()})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Term < stats[j].Term
	})
	if len(stats) > max {
		stats = stats[:max]
	}
	return stats
}
