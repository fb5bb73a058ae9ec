package importer

import (
	"oraex/internal/models"
	"oraex/internal/normalize"
)

// ExtractGmuds maps one monthly ticket sheet to Gmud records tagged with
// the sheet's (year, month). The probe is wider here (first 10 columns)
// because early monthly sheets left the leading client/type columns blank
// on continuation rows while still carrying a ticket number or title.
//
// Layout detection happens per row: both layouts have been found mixed
// within a single sheet.
func ExtractGmuds(g Grid, year, month int) []models.Gmud {
	var out []models.Gmud
	for _, row := range g.DataRows() {
		if !rowOccupied(row, 10) {
			continue
		}

		gmud := models.Gmud{
			Year:         year,
			Month:        month,
			Client:       str(row, colGmudClient),
			DBType:       str(row, colGmudDBType),
			Environment:  str(row, colGmudEnvironment),
			Status:       normalize.GmudStatus(str(row, colGmudStatus)),
			DayOfWeek:    str(row, colGmudDay),
			StartDate:    date(row, colGmudStart),
			EndDate:      date(row, colGmudEnd),
			ChangeNumber: str(row, colGmudNumber),
			Title:        str(row, colGmudTitle),
			AssignedTo:   str(row, colGmudAssignee),
			Observation:  str(row, colGmudObservation),
		}

		switch DetectLayout(row) {
		case LayoutExtended:
			gmud.VulnerabilityBefore = str(row, colGmudVulnBefore)
			gmud.VulnerabilityAfter = str(row, colGmudVulnAfter)
			gmud.ClosingCode = str(row, colGmudClosingCode)
			gmud.NeedsReplan = str(row, colGmudNeedsReplan)
			gmud.NewStartDate = date(row, colGmudNewStart)
			gmud.NewEndDate = date(row, colGmudNewEnd)
			gmud.NewGmud = str(row, colGmudNewNumber)
		default:
			gmud.Vulnerability = str(row, colGmudVulnerability)
			gmud.OpenedBy = str(row, colGmudOpenedBy)
		}

		out = append(out, gmud)
	}
	return out
}
