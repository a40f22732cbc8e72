package table

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
)

func TestFromRowsPadsShortRows(t *testing.T) {
	tab := FromRows([]string{"a", "b", "c"}, [][]string{
		{"1"},
		{"1", "2", "3", "4"},
	})

	if want := []string{"1", "", ""}; !reflect.DeepEqual(tab.Rows[0], want) {
		t.Errorf("row 0 = %v, want %v", tab.Rows[0], want)
	}
	if want := []string{"1", "2", "3"}; !reflect.DeepEqual(tab.Rows[1], want) {
		t.Errorf("row 1 = %v, want %v", tab.Rows[1], want)
	}
}

func TestRequireColumn(t *testing.T) {
	tab := New([]string{"a", "b"})

	if i, err := tab.RequireColumn("b"); err != nil || i != 1 {
		t.Errorf("RequireColumn(b) = %d, %v; want 1, nil", i, err)
	}
	if _, err := tab.RequireColumn("missing"); !errors.Is(err, internalerr.ErrMissingColumn) {
		t.Errorf("err = %v, want ErrMissingColumn", err)
	}
}

func TestAddColumn(t *testing.T) {
	tab := FromRows([]string{"a"}, [][]string{{"1"}, {"2"}})

	idx := tab.AddColumn("b")
	if idx != 1 {
		t.Errorf("AddColumn index = %d, want 1", idx)
	}
	if got := tab.Get(0, "b"); got != "" {
		t.Errorf("new column cell = %q, want empty", got)
	}
	tab.Set(0, "b", "x")
	if got := tab.Get(0, "b"); got != "x" {
		t.Errorf("cell = %q, want x", got)
	}

	// Adding again is idempotent and keeps existing data.
	if again := tab.AddColumn("b"); again != idx {
		t.Errorf("second AddColumn = %d, want %d", again, idx)
	}
	if got := tab.Get(0, "b"); got != "x" {
		t.Errorf("cell after re-add = %q, want x", got)
	}
}

func TestGetSetUnknownColumn(t *testing.T) {
	tab := FromRows([]string{"a"}, [][]string{{"1"}})

	if got := tab.Get(0, "nope"); got != "" {
		t.Errorf("Get(unknown) = %q, want empty", got)
	}
	tab.Set(0, "nope", "x") // must not panic
	if want := []string{"1"}; !reflect.DeepEqual(tab.Rows[0], want) {
		t.Errorf("row = %v, want untouched", tab.Rows[0])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tab := FromRows([]string{"company", "category"}, [][]string{
		{"Acme", "finance"},
		{"with, comma", `with "quotes"`},
	})

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := tab.SaveCSV(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded.Header, tab.Header) {
		t.Errorf("header = %v, want %v", loaded.Header, tab.Header)
	}
	if !reflect.DeepEqual(loaded.Rows, tab.Rows) {
		t.Errorf("rows = %v, want %v", loaded.Rows, tab.Rows)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<a href=\"x\">Acme Corp</a>", "Acme Corp"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, c := range cases {
		if got := StripHTML(c.in); got != c.want {
			t.Errorf("StripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeColumn(t *testing.T) {
	tab := FromRows([]string{"text", "other"}, [][]string{
		{"<b>Acme</b>, design, finance", "<i>kept</i>"},
	})

	if err := tab.SanitizeColumn("text"); err != nil {
		t.Fatal(err)
	}
	if got := tab.Get(0, "text"); got != "Acme, design, finance" {
		t.Errorf("text = %q, want markup stripped", got)
	}
	if got := tab.Get(0, "other"); got != "<i>kept</i>" {
		t.Errorf("other = %q, want untouched", got)
	}

	if err := tab.SanitizeColumn("missing"); !errors.Is(err, internalerr.ErrMissingColumn) {
		t.Errorf("err = %v, want ErrMissingColumn", err)
	}
}
