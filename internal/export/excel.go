package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter implements SheetWriter by writing an .xlsx file to disk. Every
// run replaces the file wholesale.
type ExcelWriter struct {
	path string
}

// NewExcelWriter creates an ExcelWriter that saves to path.
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Write renders the grid into a single-sheet workbook and saves it.
func (w *ExcelWriter) Write(ctx context.Context, grid [][]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for i, row := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}
