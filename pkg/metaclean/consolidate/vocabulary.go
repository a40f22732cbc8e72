// Package consolidate merges an open-ended set of raw category labels into a
// small controlled vocabulary.
//
// Matching runs in two stages: an exact lookup on the category normal form,
// then a similarity scan over every known variant. The vocabulary is built
// once from external configuration and frozen before any matching happens;
// the frozen lookup is safe to share across workers. Per-run provenance
// (which raw labels fed each canonical bucket, and how many rows) accumulates
// in a Mapping that merges associatively, so a table can be consolidated by
// parallel workers and reduced at the end.
package consolidate

import (
	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
)

// Unclassified is the sink label for categories that were demoted or could
// not be recovered. Tag augmentation never fires for it.
const Unclassified = "unclassified"

// variantEntry pairs one normalized variant with its canonical category.
type variantEntry struct {
	variant   string // category normal form
	canonical string
}

// Lookup is the frozen reverse vocabulary: normalized variant → canonical
// category. It is immutable after Build and safe for concurrent readers.
// The ordered entry list fixes the similarity scan order, which in turn fixes
// tie-breaking: the first entry to reach the running-maximum score wins.
type Lookup struct {
	exact      map[string]string
	ordered    []variantEntry
	canonicals map[string]struct{}
}

// Builder accumulates the external vocabulary configuration before freezing
// it into a Lookup. Insertion order of variants is preserved.
type Builder struct {
	entries    []variantEntry
	seen       map[string]struct{}
	canonicals map[string]struct{}
}

// NewBuilder creates an empty vocabulary builder.
func NewBuilder() *Builder {
	return &Builder{
		seen:       make(map[string]struct{}),
		canonicals: make(map[string]struct{}),
	}
}

// Add registers variants for a canonical category. Variants are stored in
// their category normal form; duplicate normal forms keep their first
// canonical assignment. The canonical name itself also counts as a variant,
// so an already-consolidated label resolves exactly.
func (b *Builder) Add(canonical string, variants ...string) {
	b.canonicals[canonical] = struct{}{}
	b.add(canonical, canonical)
	for _, v := range variants {
		b.add(canonical, v)
	}
}

func (b *Builder) add(canonical, variant string) {
	norm := normalize.Category(variant)
	if norm == "" {
		return
	}
	if _, dup := b.seen[norm]; dup {
		return
	}
	b.seen[norm] = struct{}{}
	b.entries = append(b.entries, variantEntry{variant: norm, canonical: canonical})
}

// Build freezes the builder into an immutable Lookup.
func (b *Builder) Build() *Lookup {
	exact := make(map[string]string, len(b.entries))
	for _, e := range b.entries {
		exact[e.variant] = e.canonical
	}
	canonicals := make(map[string]struct{}, len(b.canonicals))
	for c := range b.canonicals {
		canonicals[c] = struct{}{}
	}
	return &Lookup{
		exact:      exact,
		ordered:    append([]variantEntry(nil), b.entries...),
		canonicals: canonicals,
	}
}

// Canonical returns the canonical category for an exactly matching
// normalized variant.
func (l *Lookup) Canonical(normalized string) (string, bool) {
	c, ok := l.exact[normalized]
	return c, ok
}

// IsCanonical reports whether name is one of the vocabulary's canonical
// categories.
func (l *Lookup) IsCanonical(name string) bool {
	_, ok := l.canonicals[name]
	return ok
}

// Size returns the number of known variants.
func (l *Lookup) Size() int {
	return len(l.ordered)
}
