// Package importer turns worksheet cell grids into canonical records. Each
// extractor is a stateless row→record mapping over fixed column positions;
// the positions are a contract with the upstream spreadsheet maintainers
// and live in columns.go as named constants.
package importer

import "oraex/internal/normalize"

// Grid is a worksheet's cell matrix. Rows[0] is the header row; data starts
// at Rows[1]. Cells hold whatever scalar the workbook reader produced
// (string, time.Time, number, nil).
type Grid struct {
	Name string
	Rows [][]any
}

// DataRows returns the rows after the header, or nil for an empty sheet.
func (g Grid) DataRows() [][]any {
	if len(g.Rows) < 2 {
		return nil
	}
	return g.Rows[1:]
}

// cell returns the value at idx, nil when the row is shorter.
func cell(row []any, idx int) any {
	if idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return nil
}

// str and date are the normalizer shorthands every extractor uses.
func str(row []any, idx int) string  { return normalize.String(cell(row, idx)) }
func date(row []any, idx int) string { return normalize.DateTime(cell(row, idx)) }

// rowOccupied reports whether any of the first probe cells holds a value.
// Hand-maintained sheets carry formatting-only rows below the data; this is
// the guard that drops them.
func rowOccupied(row []any, probe int) bool {
	for i := 0; i < probe && i < len(row); i++ {
		if normalize.String(row[i]) != "" {
			return true
		}
	}
	return false
}
