package importer

import (
	"strings"

	"oraex/internal/models"
)

// ggsMarker flags hosts running Golden Gate replication; the maintainers
// tag those hostnames with a literal "(G)".
const ggsMarker = "(G)"

// standbyPlaceholders are values in the standby column that mean "no
// standby exists" rather than naming a machine.
var standbyPlaceholders = map[string]struct{}{"": {}, "N/A": {}, "None": {}}

// ExtractServers maps the legacy inventory sheet to Server records. A row
// with a real standby hostname describes two machines; hosts carrying the
// "(G)" marker run Golden Gate; and a version cell holding the literal
// status word "Descontinuado" is a known data-entry slip and is blanked.
func ExtractServers(g Grid) []models.Server {
	var out []models.Server
	for _, row := range g.DataRows() {
		if !rowOccupied(row, occupiedProbeWidth) {
			continue
		}

		primary := str(row, colServerPrimary)
		standby := str(row, colServerStandby)

		_, placeholder := standbyPlaceholders[standby]
		hasStandby := !placeholder
		totalServers := 1
		if hasStandby {
			totalServers = 2
		}

		hasGGS := strings.Contains(primary, ggsMarker) || strings.Contains(standby, ggsMarker)

		psuVersion := str(row, colServerPSUVersion)
		if strings.EqualFold(psuVersion, "descontinuado") {
			psuVersion = ""
		}

		out = append(out, models.Server{
			Environment:     str(row, colServerEnvironment),
			PrimaryHostname: primary,
			StandbyHostname: standby,
			PSUVersion:      psuVersion,
			EmailSent:       str(row, colServerEmailSent),
			Alignment:       str(row, colServerAlignment),
			GGSVersion:      str(row, colServerGGSVersion),
			PrimaryContact:  str(row, colServerContact),
			ResponsibleTeam: str(row, colServerTeam),
			SystemProduct:   str(row, colServerProduct),
			ApplicationDay:  str(row, colServerDay),
			StartTime:       str(row, colServerStart),
			EndTime:         str(row, colServerEnd),
			Observation:     str(row, colServerObservation),
			TotalServers:    totalServers,
			HasStandby:      hasStandby,
			HasGGS:          hasGGS,
		})
	}
	return out
}

// TotalMachines sums the per-row machine counts, standby included.
func TotalMachines(servers []models.Server) int {
	total := 0
	for _, s := range servers {
		total += s.TotalServers
	}
	return total
}
