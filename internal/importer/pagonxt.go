package importer

import "oraex/internal/models"

// ExtractPagonxt maps the partner business-unit inventory sheet.
func ExtractPagonxt(g Grid) []models.PagonxtDatabase {
	var out []models.PagonxtDatabase
	for _, row := range g.DataRows() {
		if !rowOccupied(row, occupiedProbeWidth) {
			continue
		}
		out = append(out, models.PagonxtDatabase{
			Environment: str(row, colPagoEnvironment),
			Name:        str(row, colPagoName),
			Contingent:  str(row, colPagoContingent),
			PSUVersion:  str(row, colPagoPSUVersion),
			Contact:     str(row, colPagoContact),
			Zone:        str(row, colPagoZone),
			Product:     str(row, colPagoProduct),
			Description: str(row, colPagoDescription),
			Channel:     str(row, colPagoChannel),
			Service:     str(row, colPagoService),
			Observation: str(row, colPagoObservation),
			IP:          str(row, colPagoIP),
			Instance:    str(row, colPagoInstance),
			Status:      str(row, colPagoStatus),
			OS:          str(row, colPagoOS),
		})
	}
	return out
}
