package importer

import (
	"oraex/internal/models"
	"oraex/internal/normalize"
)

// cmdbFullOffsets holds the per-sheet column positions of the CMDB-full
// field block. The two business-unit sheets share the probe and the leading
// hostname/version columns but diverge after column 17, where the LATAM
// sheet inserts a zone/country pair.
type cmdbFullOffsets struct {
	status, serverType, env, os           int
	team, manager, contact, product       int
	function, desc, validation, teamEmail int
	shutdown, affinity, weekMonth, day    int
	start, end, importance, critical      int
	scopePCI, scopeSOX, scopePago         int
	ipService, ipBackup, ipBranca         int
	zone, country                         int // -1 when the sheet has none
}

var getnetOffsets = cmdbFullOffsets{
	status: colFullGetStatus, serverType: colFullGetServerType, env: colFullGetEnv, os: colFullGetOS,
	team: colFullGetTeam, manager: colFullGetManager, contact: colFullGetContact, product: colFullGetProduct,
	function: colFullGetFunction, desc: colFullGetDesc, validation: colFullGetValidation, teamEmail: colFullGetTeamEmail,
	shutdown: colFullGetShutdown, affinity: colFullGetAffinity, weekMonth: colFullGetWeekMonth, day: colFullGetDay,
	start: colFullGetStart, end: colFullGetEnd, importance: colFullGetImportance, critical: colFullGetCritical,
	scopePCI: colFullGetScopePCI, scopeSOX: colFullGetScopeSOX, scopePago: colFullGetScopePago,
	ipService: colFullGetIPService, ipBackup: colFullGetIPBackup, ipBranca: colFullGetIPBranca,
	zone: -1, country: -1,
}

var latamOffsets = cmdbFullOffsets{
	status: colFullLatStatus, serverType: colFullLatServerType, env: colFullLatEnv, os: colFullLatOS,
	team: colFullLatTeam, manager: colFullLatManager, contact: colFullLatContact, product: colFullLatProduct,
	function: colFullLatFunction, desc: colFullLatDesc, validation: colFullLatValidation, teamEmail: colFullLatTeamEmail,
	shutdown: colFullLatShutdown, affinity: colFullLatAffinity, weekMonth: colFullLatWeekMonth, day: colFullLatDay,
	start: colFullLatStart, end: colFullLatEnd, importance: colFullLatImportance, critical: colFullLatCritical,
	scopePCI: colFullLatScopePCI, scopeSOX: colFullLatScopeSOX, scopePago: colFullLatScopePago,
	ipService: colFullLatIPService, ipBackup: colFullLatIPBackup, ipBranca: colFullLatIPBranca,
	zone: colFullLatZone, country: colFullLatCountry,
}

// ExtractCmdbFullGetnet maps the GetNet business-unit sheet. Only rows with
// a recognizable database product survive.
func ExtractCmdbFullGetnet(g Grid) []models.CmdbFullRecord {
	return extractCmdbFull(g, "GetNet", SheetCmdbFullGetnet, getnetOffsets)
}

// ExtractCmdbFullLatam maps the LATAM sheet, tagged to the PagoNxt client
// and carrying the extra zone/country columns.
func ExtractCmdbFullLatam(g Grid) []models.CmdbFullRecord {
	return extractCmdbFull(g, "PagoNxt", SheetCmdbFullLatam, latamOffsets)
}

func extractCmdbFull(g Grid, client, sourceSheet string, off cmdbFullOffsets) []models.CmdbFullRecord {
	var out []models.CmdbFullRecord
	for _, row := range g.DataRows() {
		// The probe here is the database-type column itself: the general
		// CMDB lists every asset kind, and only database rows matter.
		dbType := normalize.DBType(str(row, colFullDBType))
		if dbType == "" {
			continue
		}

		rec := models.CmdbFullRecord{
			Client:            client,
			Hostname:          str(row, colFullHostname),
			Contingency:       str(row, colFullConting),
			DBType:            dbType,
			DBVersion:         str(row, colFullVersion),
			Status:            normalize.CmdbStatus(str(row, off.status)),
			ServerType:        str(row, off.serverType),
			Environment:       str(row, off.env),
			OS:                str(row, off.os),
			ResponsibleTeam:   str(row, off.team),
			Manager:           str(row, off.manager),
			PrimaryContact:    str(row, off.contact),
			SystemProduct:     str(row, off.product),
			Function:          str(row, off.function),
			Description:       str(row, off.desc),
			ValidationContact: str(row, off.validation),
			TeamEmail:         str(row, off.teamEmail),
			ShutdownProcedure: str(row, off.shutdown),
			Affinity:          str(row, off.affinity),
			WeekMonth:         str(row, off.weekMonth),
			ApplicationDay:    str(row, off.day),
			StartTime:         str(row, off.start),
			EndTime:           str(row, off.end),
			ImportanceLevel:   str(row, off.importance),
			Criticality:       str(row, off.critical),
			ScopePCI:          str(row, off.scopePCI),
			ScopeSOX:          str(row, off.scopeSOX),
			ScopePagonxt:      str(row, off.scopePago),
			IPService:         str(row, off.ipService),
			IPBackup:          str(row, off.ipBackup),
			IPBranca:          str(row, off.ipBranca),
			SourceSheet:       sourceSheet,
		}
		if off.zone >= 0 {
			rec.Zone = str(row, off.zone)
			rec.Country = str(row, off.country)
		}
		out = append(out, rec)
	}
	return out
}
