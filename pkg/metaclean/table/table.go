// Package table holds the in-memory tabular model the cleanup passes operate
// on: a header row plus string cells, addressed by column name. It is a thin
// CSV-shaped structure, not a dataframe — passes mutate cells in place and
// add columns, nothing more.
package table

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
)

// Table is a column-addressed grid of strings. Rows all have len(Header)
// cells; missing trailing cells are padded on load.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// New creates an empty table with the given header.
func New(header []string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

// FromRows creates a table from a header and pre-built rows. Short rows are
// padded with empty cells so every row matches the header width.
func FromRows(header []string, rows [][]string) *Table {
	t := New(header)
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		t.index[name] = i
	}
}

// Append adds one row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	r := make([]string, len(t.Header))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Col returns the index of the named column.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// RequireColumn returns the index of the named column or a configuration
// error if it is absent. Callers pass tables with known shapes, so a missing
// column is a contract violation, not a data-quality issue.
func (t *Table) RequireColumn(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("column %q: %w", name, internalerr.ErrMissingColumn)
	}
	return i, nil
}

// AddColumn appends a new empty column and returns its index. Adding an
// existing column returns the existing index unchanged.
func (t *Table) AddColumn(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	t.Header = append(t.Header, name)
	idx := len(t.Header) - 1
	t.index[name] = idx
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return idx
}

// Get returns the cell at (row, named column); empty string if the column
// does not exist.
func (t *Table) Get(row int, name string) string {
	i, ok := t.index[name]
	if !ok {
		return ""
	}
	return t.Rows[row][i]
}

// Set writes the cell at (row, named column); no-op if the column does not
// exist.
func (t *Table) Set(row int, name, value string) {
	if i, ok := t.index[name]; ok {
		t.Rows[row][i] = value
	}
}

// LoadCSV reads a CSV file into a table. The first record is the header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w: empty file", path, internalerr.ErrInvalidInput)
	}

	t := New(records[0])
	for _, rec := range records[1:] {
		t.Append(rec)
	}
	return t, nil
}

// SaveCSV writes the table to a CSV file, header first.
func (t *Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
