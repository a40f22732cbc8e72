package consolidate

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
)

// Matching thresholds. A fuzzy candidate needs more than half its word set
// in common with a variant; a near-complete substring containment counts as
// a 0.9-confidence match.
const (
	acceptThreshold  = 0.5
	substringScore   = 0.9
	substringRatio   = 0.7
	minSubstringLen  = 3
	defaultCacheSize = 4096
)

// Resolution is the outcome of resolving one raw category.
type Resolution struct {
	Canonical string
	Matched   bool // false when the raw label became its own bucket
}

// Matcher resolves raw category labels against a frozen Lookup. Distinct raw
// labels repeat heavily in real tables, so resolutions are memoized in an
// LRU keyed by the category normal form. Matcher is safe for concurrent use.
type Matcher struct {
	lookup *Lookup
	cache  *lru.Cache[string, Resolution]
}

// NewMatcher creates a matcher over the given frozen lookup. cacheSize <= 0
// selects the default.
func NewMatcher(lookup *Lookup, cacheSize int) *Matcher {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New[string, Resolution](cacheSize)
	return &Matcher{lookup: lookup, cache: cache}
}

// Resolve maps one raw category to its canonical form. When neither the
// exact nor the similarity stage finds a candidate, the raw label itself is
// returned with Matched == false: unmatched categories become their own
// one-member bucket rather than disappearing.
func (m *Matcher) Resolve(raw string) Resolution {
	normalized := normalize.Category(raw)

	if cached, ok := m.cache.Get(normalized); ok {
		// Unmatched labels resolve to themselves, which the normal form
		// cannot represent; only cache hits for real matches are reusable.
		if cached.Matched {
			return cached
		}
		return Resolution{Canonical: raw, Matched: false}
	}

	res := m.resolve(raw, normalized)
	m.cache.Add(normalized, res)
	if !res.Matched {
		res.Canonical = raw
	}
	return res
}

func (m *Matcher) resolve(raw, normalized string) Resolution {
	if canonical, ok := m.lookup.Canonical(normalized); ok {
		return Resolution{Canonical: canonical, Matched: true}
	}

	words := wordSet(normalized)

	var best string
	var maxOverlap float64
	for _, entry := range m.lookup.ordered {
		overlap := jaccard(words, wordSet(entry.variant))

		if len(entry.variant) >= minSubstringLen && len(normalized) >= minSubstringLen {
			if containsWithRatio(normalized, entry.variant) || containsWithRatio(entry.variant, normalized) {
				if overlap < substringScore {
					overlap = substringScore
				}
			}
		}

		// Strictly-greater keeps the first-seen highest candidate; the
		// ordered entry list makes the tie-break reproducible.
		if overlap > maxOverlap && overlap > acceptThreshold {
			maxOverlap = overlap
			best = entry.canonical
		}
	}

	if best != "" {
		return Resolution{Canonical: best, Matched: true}
	}
	return Resolution{Canonical: raw, Matched: false}
}

// containsWithRatio reports whether needle occurs inside haystack and covers
// more than substringRatio of its length.
func containsWithRatio(haystack, needle string) bool {
	return strings.Contains(haystack, needle) &&
		float64(len(needle))/float64(len(haystack)) > substringRatio
}

// jaccard computes word-set intersection over union. Empty sets, or sets
// with no shared word, contribute zero.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	common := 0
	for w := range small {
		if _, ok := large[w]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
