// Package workbook adapts excelize files to the importer's cell grids.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"oraex/internal/importer"
)

// Workbook wraps an open spreadsheet file.
type Workbook struct {
	file *excelize.File
}

// Open loads a workbook from disk. Callers must Close it.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether a sheet exists by exact name.
func (w *Workbook) HasSheet(name string) bool {
	for _, sheet := range w.file.GetSheetList() {
		if sheet == name {
			return true
		}
	}
	return false
}

// Grid materializes a sheet as a cell grid. The second return is false when
// the sheet does not exist; a missing sheet is a tolerated condition for
// every source, not an error. Cells arrive as excelize's formatted strings;
// date-styled cells are canonicalized downstream by the normalizer.
func (w *Workbook) Grid(name string) (importer.Grid, bool, error) {
	if !w.HasSheet(name) {
		return importer.Grid{}, false, nil
	}
	rows, err := w.file.GetRows(name)
	if err != nil {
		return importer.Grid{}, false, fmt.Errorf("read sheet %q: %w", name, err)
	}
	grid := importer.Grid{Name: name, Rows: make([][]any, len(rows))}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, value := range row {
			cells[j] = value
		}
		grid.Rows[i] = cells
	}
	return grid, true, nil
}
