package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the workbook export.
const (
	sheetBuckets   = "Consolidation"
	sheetUnmatched = "Unmatched"
)

// WriteXLSX writes the full report as a two-sheet workbook: the bucket
// summary and the unmatched list.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetBuckets); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []string{"canonical", "count", "original_categories"}
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetBuckets, cell, name); err != nil {
			return err
		}
	}
	for i, b := range r.Buckets {
		values := []interface{}{b.Canonical, b.Count, strings.Join(b.Originals, "; ")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetBuckets, cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(sheetUnmatched); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := f.SetCellValue(sheetUnmatched, "A1", "category"); err != nil {
		return err
	}
	for i, label := range r.Unmatched {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetUnmatched, cell, label); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
