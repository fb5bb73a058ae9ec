package importer

import "oraex/internal/models"

// ExtractPlanning maps the maintenance-window template sheet.
func ExtractPlanning(g Grid) []models.PlanningRecord {
	var out []models.PlanningRecord
	for _, row := range g.DataRows() {
		if !rowOccupied(row, occupiedProbeWidth) {
			continue
		}
		out = append(out, models.PlanningRecord{
			Hostname:          str(row, colPlanHostname),
			ContingencyName:   str(row, colPlanContingency),
			ApplicationDay:    str(row, colPlanDay),
			WeekMonth:         str(row, colPlanWeekMonth),
			StartTime:         str(row, colPlanStart),
			EndTime:           str(row, colPlanEnd),
			PrimaryContact:    str(row, colPlanContact),
			DBVersion:         str(row, colPlanDBVersion),
			BankVersion:       str(row, colPlanBankVersion),
			System:            str(row, colPlanSystem),
			SystemProduct:     str(row, colPlanProduct),
			OS:                str(row, colPlanOS),
			Function:          str(row, colPlanFunction),
			Description:       str(row, colPlanDescription),
			ResponsibleTeam:   str(row, colPlanTeam),
			ValidationContact: str(row, colPlanValidation),
		})
	}
	return out
}
