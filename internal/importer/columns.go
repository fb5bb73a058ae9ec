package importer

// Sheet names of the consolidation workbook. Absence of a sheet is not an
// error; the source simply contributes zero records.
const (
	SheetServers  = "GetNet - Oracle Databases"
	SheetCmdb     = "GetNet CMDB - Databases"
	SheetPlanning = "Planejamento oracle"
	SheetPagonxt  = "PagoNxt - Databases"
)

// CMDB-full workbook sheets, one per business unit.
const (
	SheetCmdbFullGetnet = "CMDB Geral GETNET Brasil"
	SheetCmdbFullLatam  = "CMDB Geral LATAM"
)

// Vulnerability scan result sheets.
const (
	SheetQualysPagonxt = "DEMANDAS PM"
	SheetQualysGetnet  = "PROCV"
)

// Server inventory columns.
const (
	colServerEnvironment = 0
	colServerPrimary     = 1
	colServerStandby     = 2
	colServerPSUVersion  = 3
	colServerEmailSent   = 4
	colServerAlignment   = 5
	colServerGGSVersion  = 6
	colServerContact     = 7
	colServerTeam        = 8
	colServerProduct     = 9
	colServerDay         = 10
	colServerStart       = 11
	colServerEnd         = 12
	colServerObservation = 13
)

// Legacy CMDB sheet columns (24 consecutive fields).
const (
	colCmdbEnvironment = 0
	colCmdbName        = 1
	colCmdbContingency = 2
	colCmdbDBType      = 3
	colCmdbDBVersion   = 4
	colCmdbVersionDet  = 5
	colCmdbStatus      = 6
	colCmdbDay         = 7
	colCmdbWeekMonth   = 8
	colCmdbStart       = 9
	colCmdbEnd         = 10
	colCmdbSystem      = 11
	colCmdbProduct     = 12
	colCmdbType        = 13
	colCmdbOS          = 14
	colCmdbContact     = 15
	colCmdbFunction    = 16
	colCmdbDescription = 17
	colCmdbOSType      = 18
	colCmdbTeam        = 19
	colCmdbManager     = 20
	colCmdbTeamEmail   = 21
	colCmdbValidation  = 22
	colCmdbIP          = 23
)

// Monthly GMUD sheet columns. 0-10 are shared by both layouts; 11+ differ
// by layout (see layout.go).
const (
	colGmudClient      = 0
	colGmudDBType      = 1
	colGmudEnvironment = 2
	colGmudStatus      = 3
	colGmudDay         = 4
	colGmudStart       = 5
	colGmudEnd         = 6
	colGmudNumber      = 7
	colGmudTitle       = 8
	colGmudAssignee    = 9
	colGmudObservation = 10

	// classic layout
	colGmudVulnerability = 11
	colGmudOpenedBy      = 12

	// extended layout
	colGmudVulnBefore  = 11
	colGmudVulnAfter   = 12
	colGmudClosingCode = 13
	colGmudNeedsReplan = 14
	colGmudNewStart    = 15
	colGmudNewEnd      = 16
	colGmudNewNumber   = 17
)

// Planning sheet columns.
const (
	colPlanHostname    = 0
	colPlanContingency = 1
	colPlanDay         = 2
	colPlanWeekMonth   = 3
	colPlanStart       = 4
	colPlanEnd         = 5
	colPlanContact     = 6
	colPlanDBVersion   = 7
	colPlanBankVersion = 8
	colPlanSystem      = 9
	colPlanProduct     = 10
	colPlanOS          = 11
	colPlanFunction    = 12
	colPlanDescription = 13
	colPlanTeam        = 14
	colPlanValidation  = 15
)

// PagoNxt partner inventory columns.
const (
	colPagoEnvironment = 0
	colPagoName        = 1
	colPagoContingent  = 2
	colPagoPSUVersion  = 3
	colPagoContact     = 4
	colPagoZone        = 5
	colPagoProduct     = 6
	colPagoDescription = 7
	colPagoChannel     = 8
	colPagoService     = 9
	colPagoObservation = 10
	colPagoIP          = 11
	colPagoInstance    = 12
	colPagoStatus      = 13
	colPagoOS          = 14
)

// CMDB-full columns. Both business-unit sheets probe the database-type
// column at index 11; the remaining fields sit at different offsets because
// the LATAM sheet squeezes zone/country columns in ahead of the status
// block.
const (
	colFullDBType   = 11
	colFullHostname = 8
	colFullConting  = 9
	colFullVersion  = 12

	// GetNet sheet offsets.
	colFullGetStatus     = 18
	colFullGetServerType = 19
	colFullGetEnv        = 20
	colFullGetOS         = 21
	colFullGetTeam       = 22
	colFullGetManager    = 23
	colFullGetContact    = 24
	colFullGetProduct    = 25
	colFullGetFunction   = 26
	colFullGetDesc       = 27
	colFullGetValidation = 28
	colFullGetTeamEmail  = 29
	colFullGetShutdown   = 30
	colFullGetAffinity   = 32
	colFullGetWeekMonth  = 33
	colFullGetDay        = 34
	colFullGetStart      = 35
	colFullGetEnd        = 36
	colFullGetImportance = 37
	colFullGetCritical   = 38
	colFullGetScopePCI   = 39
	colFullGetScopeSOX   = 40
	colFullGetScopePago  = 41
	colFullGetIPService  = 53
	colFullGetIPBackup   = 54
	colFullGetIPBranca   = 55

	// LATAM sheet offsets (shifted by the zone/country pair at 18-19).
	colFullLatZone       = 18
	colFullLatCountry    = 19
	colFullLatStatus     = 20
	colFullLatServerType = 21
	colFullLatEnv        = 22
	colFullLatOS         = 23
	colFullLatTeam       = 24
	colFullLatManager    = 25
	colFullLatContact    = 26
	colFullLatProduct    = 27
	colFullLatFunction   = 28
	colFullLatDesc       = 29
	colFullLatValidation = 30
	colFullLatTeamEmail  = 31
	colFullLatShutdown   = 32
	colFullLatAffinity   = 34
	colFullLatWeekMonth  = 35
	colFullLatDay        = 36
	colFullLatStart      = 37
	colFullLatEnd        = 38
	colFullLatImportance = 39
	colFullLatCritical   = 40
	colFullLatScopePCI   = 41
	colFullLatScopeSOX   = 42
	colFullLatScopePago  = 43
	colFullLatIPService  = 55
	colFullLatIPBackup   = 56
	colFullLatIPBranca   = 57
)

// Qualys scan columns. The GetNet export carries a leading lookup column,
// shifting every field right by one; it also leaks the lookup's "#N/D"
// error marker into the asset-name column.
const (
	colQPagoAsset    = 0
	colQPagoTitle    = 1
	colQPagoResults  = 2
	colQPagoAge      = 3
	colQPagoFirst    = 4
	colQPagoEnv      = 6
	colQPagoOS       = 7
	colQPagoOSVer    = 8
	colQPagoSeverity = 12
	colQPagoLast     = 13
	colQPagoIP       = 14
	colQPagoSolution = 15
	colQPagoQID      = 16
	colQPagoOverdue  = 17

	colQGetAsset    = 1
	colQGetTitle    = 2
	colQGetResults  = 3
	colQGetAge      = 4
	colQGetFirst    = 5
	colQGetEnv      = 8
	colQGetOS       = 9
	colQGetOSVer    = 10
	colQGetSeverity = 14
	colQGetLast     = 15
	colQGetIP       = 16
	colQGetSolution = 17
	colQGetQID      = 18
	colQGetOverdue  = 19
)

// occupiedProbeWidth is the default "is this row real data" prefix width.
const occupiedProbeWidth = 5
