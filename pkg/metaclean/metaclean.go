// Package metaclean is the cleanup engine facade: it decomposes raw metadata
// text into structured fields, consolidates the resulting categories into a
// controlled vocabulary, derives top-level groups, and optionally persists
// the finished run.
package metaclean

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glyphlab/metaclean/pkg/metaclean/config"
	"github.com/glyphlab/metaclean/pkg/metaclean/consolidate"
	"github.com/glyphlab/metaclean/pkg/metaclean/group"
	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
	"github.com/glyphlab/metaclean/pkg/metaclean/parse"
	"github.com/glyphlab/metaclean/pkg/metaclean/store"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

// Column names the pipeline reads and writes beyond the consolidation pair.
const (
	ColCompany     = "company"
	ColDescription = "description"
	ColLogoPath    = "logo_path"
)

// Engine is the main cleanup facade.
type Engine struct {
	lookup *consolidate.Lookup
	store  store.Store
	opts   config.Options
}

// Options configures an Engine instance. Lookup is required; Store is
// optional and enables run persistence.
type Options struct {
	Lookup *consolidate.Lookup
	Store  store.Store
	Config config.Options
}

// New creates an Engine with the given dependencies.
func New(opts Options) (*Engine, error) {
	if opts.Lookup == nil {
		return nil, internalerr.ErrNoVocabulary
	}
	cfg := opts.Config
	if cfg == (config.Options{}) {
		cfg = config.DefaultOptions()
	}
	return &Engine{
		lookup: opts.Lookup,
		store:  opts.Store,
		opts:   cfg,
	}, nil
}

// Close cleanly shuts down the engine.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// ParseTable decomposes the raw text column of every row into the company,
// description, category and tags columns, stripping embedded markup first.
func (e *Engine) ParseTable(t *table.Table) error {
	if err := t.SanitizeColumn(e.opts.RawColumn); err != nil {
		return err
	}

	t.AddColumn(ColCompany)
	t.AddColumn(ColDescription)
	t.AddColumn(consolidate.ColCategory)
	t.AddColumn(consolidate.ColTags)

	for i := 0; i < t.Len(); i++ {
		f := parse.Parse(t.Get(i, e.opts.RawColumn))
		t.Set(i, ColCompany, f.Company)
		t.Set(i, ColDescription, f.Description)
		t.Set(i, consolidate.ColCategory, f.Category)
		t.Set(i, consolidate.ColTags, joinTags(f.Tags))
	}
	return nil
}

// NormalizeTags rewrites the tags column into tag normal form.
func (e *Engine) NormalizeTags(t *table.Table) error {
	if _, err := t.RequireColumn(consolidate.ColTags); err != nil {
		return err
	}
	for i := 0; i < t.Len(); i++ {
		t.Set(i, consolidate.ColTags, normalize.TagList(t.Get(i, consolidate.ColTags)))
	}
	return nil
}

// ConsolidateTable rewrites the category column to canonical form, fanning
// out across workers when configured.
func (e *Engine) ConsolidateTable(ctx context.Context, t *table.Table) (*consolidate.Result, error) {
	c := consolidate.NewConsolidator(e.lookup, e.opts.MatchCacheSize)
	return c.RunParallel(ctx, t, e.opts.Workers)
}

// GroupTable derives the top-level group column from the category column.
func (e *Engine) GroupTable(t *table.Table) error {
	return group.AddTopLevel(t, consolidate.ColCategory, group.DefaultTargetColumn)
}

// Summary describes one finished cleanup run.
type Summary struct {
	RunID     string
	Rows      int
	Buckets   int
	Unmatched int
	Demoted   int
	Result    *consolidate.Result
}

// CleanupRun executes the full cleanup sequence on a table, in the pipeline
// order: decompose raw text (when the raw column is present), normalize
// tags, consolidate categories, recover unclassified rows from tags, demote
// rare categories, restrict to the vocabulary, derive top-level groups, and
// persist when a store is configured.
func (e *Engine) CleanupRun(ctx context.Context, t *table.Table, source string) (Summary, error) {
	if _, ok := t.Col(e.opts.RawColumn); ok {
		if err := e.ParseTable(t); err != nil {
			return Summary{}, fmt.Errorf("parse: %w", err)
		}
	}
	if _, ok := t.Col(consolidate.ColTags); ok {
		if err := e.NormalizeTags(t); err != nil {
			return Summary{}, fmt.Errorf("normalize tags: %w", err)
		}
	}

	res, err := e.ConsolidateTable(ctx, t)
	if err != nil {
		return Summary{}, fmt.Errorf("consolidate: %w", err)
	}

	demoted := 0
	if _, ok := t.Col(consolidate.ColTags); ok {
		if _, err := consolidate.AssignTagCategory(t, e.lookup); err != nil {
			return Summary{}, err
		}
	}
	rare, err := consolidate.FilterRare(t, e.opts.MinCategoryCount)
	if err != nil {
		return Summary{}, err
	}
	demoted += len(rare)
	restricted, err := consolidate.RestrictToVocabulary(t, e.lookup, e.opts.TagThreshold)
	if err != nil {
		return Summary{}, err
	}
	demoted += len(restricted)

	if err := e.GroupTable(t); err != nil {
		return Summary{}, fmt.Errorf("group: %w", err)
	}

	sum := Summary{
		RunID:     store.NewRunID(),
		Rows:      t.Len(),
		Buckets:   res.Mapping.Len(),
		Unmatched: res.Unmatched.Len(),
		Demoted:   demoted,
		Result:    res,
	}

	if e.store != nil {
		if err := e.persist(ctx, t, source, sum); err != nil {
			return Summary{}, fmt.Errorf("persist run: %w", err)
		}
	}
	return sum, nil
}

func (e *Engine) persist(ctx context.Context, t *table.Table, source string, sum Summary) error {
	run := store.Run{
		ID:        sum.RunID,
		Source:    source,
		StartedAt: time.Now().UTC(),
		Rows:      t.Len(),
	}
	if err := e.store.CreateRun(ctx, run); err != nil {
		return err
	}

	recs := make([]store.Record, t.Len())
	for i := 0; i < t.Len(); i++ {
		recs[i] = store.Record{
			Company:      t.Get(i, ColCompany),
			Description:  t.Get(i, ColDescription),
			Category:     t.Get(i, consolidate.ColCategory),
			CategoryMain: t.Get(i, group.DefaultTargetColumn),
			Tags:         t.Get(i, consolidate.ColTags),
			LogoPath:     t.Get(i, ColLogoPath),
		}
	}
	if err := e.store.InsertRecords(ctx, sum.RunID, recs); err != nil {
		return err
	}

	prov := make([]store.Provenance, 0, sum.Result.Mapping.Len())
	for _, canonical := range sum.Result.Mapping.Canonicals() {
		b, _ := sum.Result.Mapping.Bucket(canonical)
		prov = append(prov, store.Provenance{
			Canonical: canonical,
			Count:     b.Count,
			Originals: b.Originals,
		})
	}
	if err := e.store.InsertProvenance(ctx, sum.RunID, prov); err != nil {
		return err
	}

	return e.store.InsertUnmatched(ctx, sum.RunID, sum.Result.Unmatched.Values())
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
