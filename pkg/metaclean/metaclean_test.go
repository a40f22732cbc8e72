package metaclean

import (
	"context"
	"errors"
	"testing"

	"github.com/glyphlab/metaclean/pkg/metaclean/config"
	"github.com/glyphlab/metaclean/pkg/metaclean/consolidate"
	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
	"github.com/glyphlab/metaclean/pkg/metaclean/store/memstore"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

func testLookup() *consolidate.Lookup {
	b := consolidate.NewBuilder()
	b.Add("finance", "banking", "fintech")
	b.Add(consolidate.Unclassified)
	return b.Build()
}

func testConfig() config.Options {
	return config.Options{
		Workers:          1,
		MatchCacheSize:   16,
		MinCategoryCount: 1,
		TagThreshold:     1,
		RawColumn:        "text",
	}
}

func TestNewRequiresLookup(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, internalerr.ErrNoVocabulary) {
		t.Errorf("err = %v, want ErrNoVocabulary", err)
	}
}

func TestParseTable(t *testing.T) {
	e, err := New(Options{Lookup: testLookup(), Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}

	tab := table.FromRows([]string{"text"}, [][]string{
		{"Acme Bank, Modern finance logo, Fintech, modern, minimal"},
	})
	if err := e.ParseTable(tab); err != nil {
		t.Fatal(err)
	}

	if got := tab.Get(0, ColCompany); got != "Acme Bank" {
		t.Errorf("company = %q", got)
	}
	if got := tab.Get(0, ColDescription); got != "Modern finance logo" {
		t.Errorf("description = %q", got)
	}
	if got := tab.Get(0, consolidate.ColCategory); got != "Fintech" {
		t.Errorf("category = %q", got)
	}
	if got := tab.Get(0, consolidate.ColTags); got != "modern, minimal" {
		t.Errorf("tags = %q", got)
	}
}

func TestParseTableMissingRawColumn(t *testing.T) {
	e, err := New(Options{Lookup: testLookup(), Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}

	tab := table.FromRows([]string{"other"}, [][]string{{"x"}})
	if err := e.ParseTable(tab); !errors.Is(err, internalerr.ErrMissingColumn) {
		t.Errorf("err = %v, want ErrMissingColumn", err)
	}
}

func TestNormalizeTags(t *testing.T) {
	e, err := New(Options{Lookup: testLookup(), Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}

	tab := table.FromRows([]string{consolidate.ColTags}, [][]string{
		{"Bold Colors, Fin-Tech,  , Simple"},
	})
	if err := e.NormalizeTags(tab); err != nil {
		t.Fatal(err)
	}
	if got := tab.Get(0, consolidate.ColTags); got != "bold_colors,fintech,simple" {
		t.Errorf("tags = %q", got)
	}
}

func TestCleanupRunEndToEnd(t *testing.T) {
	mem := memstore.New()
	e, err := New(Options{Lookup: testLookup(), Store: mem, Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	tab := table.FromRows([]string{"text"}, [][]string{
		{"Acme Bank, Modern finance logo, Fintech, modern, minimal"},
		{"Beta Co, Something else entirely, Quantum Weaving"},
	})

	ctx := context.Background()
	sum, err := e.CleanupRun(ctx, tab, "logos.csv")
	if err != nil {
		t.Fatal(err)
	}

	if sum.Rows != 2 || sum.Buckets != 2 || sum.Unmatched != 1 || sum.Demoted != 1 {
		t.Errorf("summary = %+v, want 2 rows, 2 buckets, 1 unmatched, 1 demoted", sum)
	}

	if got := tab.Get(0, consolidate.ColCategory); got != "finance" {
		t.Errorf("row 0 category = %q, want finance", got)
	}
	// The pre-consolidation label survives as a tag.
	if got := tab.Get(0, consolidate.ColTags); got != "modern, minimal, fintech" {
		t.Errorf("row 0 tags = %q", got)
	}
	if got := tab.Get(1, consolidate.ColCategory); got != consolidate.Unclassified {
		t.Errorf("row 1 category = %q, want %q", got, consolidate.Unclassified)
	}
	if got := tab.Get(0, "category_main"); got != "professional_financial_legal" {
		t.Errorf("row 0 category_main = %q", got)
	}
	if got := tab.Get(1, "category_main"); got != "other" {
		t.Errorf("row 1 category_main = %q", got)
	}

	// Persisted run matches the in-memory outcome.
	run, err := mem.GetRun(ctx, sum.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Source != "logos.csv" || run.Rows != 2 {
		t.Errorf("run = %+v", run)
	}

	recs, err := mem.GetRecords(ctx, sum.RunID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].Company != "Acme Bank" || recs[0].Category != "finance" {
		t.Errorf("record 0 = %+v", recs[0])
	}
	if recs[1].Category != consolidate.Unclassified || recs[1].CategoryMain != "other" {
		t.Errorf("record 1 = %+v", recs[1])
	}

	prov, err := mem.GetProvenance(ctx, sum.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(prov) != 2 || prov[0].Canonical != "finance" || prov[0].Count != 1 {
		t.Errorf("provenance = %+v", prov)
	}

	unmatched, err := mem.GetUnmatched(ctx, sum.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(unmatched) != 1 || unmatched[0] != "Quantum Weaving" {
		t.Errorf("unmatched = %v", unmatched)
	}
}

func TestCleanupRunWithoutStore(t *testing.T) {
	e, err := New(Options{Lookup: testLookup(), Config: testConfig()})
	if err != nil {
		t.Fatal(err)
	}

	tab := table.FromRows([]string{consolidate.ColCategory}, [][]string{
		{"Fintech"},
	})
	sum, err := e.CleanupRun(context.Background(), tab, "inline")
	if err != nil {
		t.Fatal(err)
	}
	if sum.RunID == "" {
		t.Error("summary should carry a run ID even without a store")
	}
	if got := tab.Get(0, consolidate.ColCategory); got != "finance" {
		t.Errorf("category = %q, want finance", got)
	}
}
