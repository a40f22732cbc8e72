// Package report exports consolidation results for downstream review: a CSV
// or XLSX summary of every canonical bucket with its provenance, the
// unmatched label list, and a word-frequency profile of the raw categories
// that helps when extending the vocabulary.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/glyphlab/metaclean/pkg/metaclean/consolidate"
	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
)

// Report is a flattened view of one consolidation run.
type Report struct {
	Buckets   []BucketRow
	Unmatched []string
}

// BucketRow is one canonical bucket with its provenance.
type BucketRow struct {
	Canonical string
	Count     int
	Originals []string
}

// New flattens a consolidation result into a report, preserving bucket and
// label order.
func New(res *consolidate.Result) *Report {
	r := &Report{Unmatched: res.Unmatched.Values()}
	for _, canonical := range res.Mapping.Canonicals() {
		b, _ := res.Mapping.Bucket(canonical)
		r.Buckets = append(r.Buckets, BucketRow{
			Canonical: canonical,
			Count:     b.Count,
			Originals: append([]string(nil), b.Originals...),
		})
	}
	return r
}

// WriteCSV writes the bucket summary as CSV. Original labels join with "; "
// inside a single cell.
func (r *Report) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"canonical", "count", "original_categories"}); err != nil {
		return err
	}
	for _, b := range r.Buckets {
		row := []string{b.Canonical, strconv.Itoa(b.Count), strings.Join(b.Originals, "; ")}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteUnmatchedCSV writes the unmatched labels, one per row.
func (r *Report) WriteUnmatchedCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"category"}); err != nil {
		return err
	}
	for _, label := range r.Unmatched {
		if err := w.Write([]string{label}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WordCount is one normalized word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// WordFrequency profiles the raw category labels: every word of the category
// normal form longer than two characters, counted and ranked descending.
// Ties order alphabetically so the output is stable.
func WordFrequency(categories []string) []WordCount {
	counts := make(map[string]int)
	for _, cat := range categories {
		for _, word := range strings.Fields(normalize.Category(cat)) {
			if len(word) > 2 {
				counts[word]++
			}
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}
