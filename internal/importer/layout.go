package importer

import "oraex/internal/normalize"

// Layout identifies which of the two known monthly-sheet column layouts a
// GMUD row uses.
type Layout int

const (
	// LayoutClassic carries a single vulnerability field (11) and an
	// opened-by field (12).
	LayoutClassic Layout = iota
	// LayoutExtended carries before/after vulnerability counters (11, 12),
	// a closing code (13), a replan flag (14) and new-date/new-ticket
	// fields (15-17).
	LayoutExtended
)

// DetectLayout classifies a single GMUD row. The sheets evolved without
// backward migration and both layouts have been observed mixed within one
// sheet, so the decision is per row: more than 13 columns present AND
// anything populated in the extended range 13-17 means extended.
func DetectLayout(row []any) Layout {
	if len(row) <= 13 {
		return LayoutClassic
	}
	for i := 13; i < 18 && i < len(row); i++ {
		if normalize.String(row[i]) != "" {
			return LayoutExtended
		}
	}
	return LayoutClassic
}
