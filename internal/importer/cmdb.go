package importer

import "oraex/internal/models"

// ExtractCmdb maps the legacy CMDB sheet to CmdbRecord rows. The sheet is a
// straight 24-column block; no normalization beyond cell coercion applies
// here (the legacy sheet predates the status vocabulary cleanup).
func ExtractCmdb(g Grid) []models.CmdbRecord {
	var out []models.CmdbRecord
	for _, row := range g.DataRows() {
		if !rowOccupied(row, occupiedProbeWidth) {
			continue
		}
		out = append(out, models.CmdbRecord{
			Environment:       str(row, colCmdbEnvironment),
			Name:              str(row, colCmdbName),
			ContingencyName:   str(row, colCmdbContingency),
			DBType:            str(row, colCmdbDBType),
			DBVersion:         str(row, colCmdbDBVersion),
			DBVersionDetail:   str(row, colCmdbVersionDet),
			Status:            str(row, colCmdbStatus),
			ApplicationDay:    str(row, colCmdbDay),
			WeekMonth:         str(row, colCmdbWeekMonth),
			StartTime:         str(row, colCmdbStart),
			EndTime:           str(row, colCmdbEnd),
			System:            str(row, colCmdbSystem),
			SystemProduct:     str(row, colCmdbProduct),
			Type:              str(row, colCmdbType),
			OS:                str(row, colCmdbOS),
			PrimaryContact:    str(row, colCmdbContact),
			Function:          str(row, colCmdbFunction),
			Description:       str(row, colCmdbDescription),
			OSType:            str(row, colCmdbOSType),
			ResponsibleTeam:   str(row, colCmdbTeam),
			Manager:           str(row, colCmdbManager),
			TeamEmail:         str(row, colCmdbTeamEmail),
			ValidationContact: str(row, colCmdbValidation),
			IPAddress:         str(row, colCmdbIP),
		})
	}
	return out
}
