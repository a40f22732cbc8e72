package consolidate

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

// Column names the consolidation pass operates on.
const (
	ColCategory = "category"
	ColTags     = "tags"
)

// Result bundles the per-run consolidation outputs: provenance per canonical
// bucket and the labels nothing matched.
type Result struct {
	Mapping   *Mapping
	Unmatched *UnmatchedList
}

// Consolidator rewrites a table's category column to canonical form. The
// underlying Matcher is read-only and shared; accumulator state lives in the
// Result of each run.
type Consolidator struct {
	matcher *Matcher
}

// NewConsolidator creates a consolidator over a frozen vocabulary lookup.
func NewConsolidator(lookup *Lookup, cacheSize int) *Consolidator {
	return &Consolidator{matcher: NewMatcher(lookup, cacheSize)}
}

// Run consolidates the table sequentially. The category column is required;
// tags are updated only when present.
func (c *Consolidator) Run(t *table.Table) (*Result, error) {
	if _, err := t.RequireColumn(ColCategory); err != nil {
		return nil, err
	}
	_, hasTags := t.Col(ColTags)

	res := &Result{Mapping: NewMapping(), Unmatched: NewUnmatchedList()}
	for i := 0; i < t.Len(); i++ {
		c.processRow(t, i, hasTags, res)
	}
	return res, nil
}

// RunParallel consolidates with up to workers goroutines. Each worker owns a
// row range and a private accumulator; the frozen lookup and the memoizing
// matcher are shared read-mostly state. Partial results merge in chunk order,
// so the output is independent of scheduling.
func (c *Consolidator) RunParallel(ctx context.Context, t *table.Table, workers int) (*Result, error) {
	if _, err := t.RequireColumn(ColCategory); err != nil {
		return nil, err
	}
	if workers <= 1 || t.Len() < 2 {
		return c.Run(t)
	}
	if workers > t.Len() {
		workers = t.Len()
	}
	_, hasTags := t.Col(ColTags)

	partials := make([]*Result, workers)
	chunk := (t.Len() + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > t.Len() {
			end = t.Len()
		}
		part := &Result{Mapping: NewMapping(), Unmatched: NewUnmatchedList()}
		partials[w] = part

		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				c.processRow(t, i, hasTags, part)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Result{Mapping: NewMapping(), Unmatched: NewUnmatchedList()}
	for _, part := range partials {
		merged.Mapping.Merge(part.Mapping)
		merged.Unmatched.Merge(part.Unmatched)
	}
	return merged, nil
}

// processRow resolves one row's category and applies tag augmentation.
// Rows with no category pass through untouched.
func (c *Consolidator) processRow(t *table.Table, row int, hasTags bool, res *Result) {
	raw := t.Get(row, ColCategory)
	if strings.TrimSpace(raw) == "" {
		return
	}

	resolution := c.matcher.Resolve(raw)
	consolidated := resolution.Canonical
	if !resolution.Matched {
		res.Unmatched.Add(raw)
	}
	res.Mapping.Record(consolidated, raw)
	t.Set(row, ColCategory, consolidated)

	if !hasTags {
		return
	}
	// Keep the pre-consolidation label as a tag, but only when the rewrite
	// is real: a casing-only change or an unclassified sink gains nothing.
	if consolidated == Unclassified {
		return
	}
	if normalize.Category(consolidated) == normalize.Category(raw) {
		return
	}
	t.Set(row, ColTags, appendTag(t.Get(row, ColTags), normalize.Tag(raw)))
}

// appendTag adds tag to a comma-separated list unless already present.
func appendTag(csv, tag string) string {
	if tag == "" {
		return csv
	}
	existing := splitTags(csv)
	for _, e := range existing {
		if e == tag {
			return csv
		}
	}
	existing = append(existing, tag)
	return strings.Join(existing, ", ")
}

// splitTags parses a comma-separated tag cell, dropping blanks.
func splitTags(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
