package models

import "time"

// Server is one row of the legacy inventory sheet. A row describes one or
// two physical machines: the primary and, when present, its standby.
type Server struct {
	ID              int64  `json:"id"`
	Environment     string `json:"environment"`
	PrimaryHostname string `json:"primary_hostname"`
	StandbyHostname string `json:"standby_hostname"`
	PSUVersion      string `json:"psu_version"`
	EmailSent       string `json:"email_sent"`
	Alignment       string `json:"alignment"`
	GGSVersion      string `json:"ggs_version"`
	PrimaryContact  string `json:"primary_contact"`
	ResponsibleTeam string `json:"responsible_team"`
	SystemProduct   string `json:"system_product"`
	ApplicationDay  string `json:"application_day"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Observation     string `json:"observation"`
	TotalServers    int    `json:"total_servers"`
	HasStandby      bool   `json:"has_standby"`
	HasGGS          bool   `json:"has_ggs"`
}

// CmdbRecord is one entry of the legacy CMDB sheet.
type CmdbRecord struct {
	ID                int64  `json:"id"`
	Environment       string `json:"environment"`
	Name              string `json:"name"`
	ContingencyName   string `json:"contingency_name"`
	DBType            string `json:"db_type"`
	DBVersion         string `json:"db_version"`
	DBVersionDetail   string `json:"db_version_detail"`
	Status            string `json:"status"`
	ApplicationDay    string `json:"application_day"`
	WeekMonth         string `json:"week_month"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	System            string `json:"system"`
	SystemProduct     string `json:"system_product"`
	Type              string `json:"type"`
	OS                string `json:"os"`
	PrimaryContact    string `json:"primary_contact"`
	Function          string `json:"function"`
	Description       string `json:"description"`
	OSType            string `json:"os_type"`
	ResponsibleTeam   string `json:"responsible_team"`
	Manager           string `json:"manager"`
	TeamEmail         string `json:"team_email"`
	ValidationContact string `json:"validation_contact"`
	IPAddress         string `json:"ip_address"`
}

// Gmud is one scheduled database change ticket, scoped to a (year, month)
// sheet. The vulnerability/opened-by fields belong to the classic sheet
// layout; the before/after counters and replan fields to the extended one.
// A record carries whichever set its source row had.
type Gmud struct {
	ID                  int64  `json:"id"`
	Year                int    `json:"year"`
	Month               int    `json:"month"`
	Client              string `json:"client"`
	DBType              string `json:"db_type"`
	Environment         string `json:"environment"`
	Status              string `json:"status"`
	DayOfWeek           string `json:"day_of_week"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	ChangeNumber        string `json:"change_number"`
	Title               string `json:"title"`
	AssignedTo          string `json:"assigned_to"`
	Observation         string `json:"observation"`
	Vulnerability       string `json:"vulnerability"`
	OpenedBy            string `json:"opened_by"`
	VulnerabilityBefore string `json:"vulnerability_before"`
	VulnerabilityAfter  string `json:"vulnerability_after"`
	ClosingCode         string `json:"closing_code"`
	NeedsReplan         string `json:"needs_replan"`
	NewStartDate        string `json:"new_start_date"`
	NewEndDate          string `json:"new_end_date"`
	NewGmud             string `json:"new_gmud"`
}

// PlanningRecord is one recurring maintenance-window template entry.
type PlanningRecord struct {
	ID                int64  `json:"id"`
	Hostname          string `json:"hostname"`
	ContingencyName   string `json:"contingency_name"`
	ApplicationDay    string `json:"application_day"`
	WeekMonth         string `json:"week_month"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	PrimaryContact    string `json:"primary_contact"`
	DBVersion         string `json:"db_version"`
	BankVersion       string `json:"bank_version"`
	System            string `json:"system"`
	SystemProduct     string `json:"system_product"`
	OS                string `json:"os"`
	Function          string `json:"function"`
	Description       string `json:"description"`
	ResponsibleTeam   string `json:"responsible_team"`
	ValidationContact string `json:"validation_contact"`
}

// PagonxtDatabase is one partner business-unit inventory entry, kept in its
// own table separate from CmdbFullRecord.
type PagonxtDatabase struct {
	ID          int64  `json:"id"`
	Environment string `json:"environment"`
	Name        string `json:"name"`
	Contingent  string `json:"contingent"`
	PSUVersion  string `json:"psu_version"`
	Contact     string `json:"contact"`
	Zone        string `json:"zone"`
	Product     string `json:"product"`
	Description string `json:"description"`
	Channel     string `json:"channel"`
	Service     string `json:"service"`
	Observation string `json:"observation"`
	IP          string `json:"ip"`
	Instance    string `json:"instance"`
	Status      string `json:"status"`
	OS          string `json:"os"`
}

// CmdbFullRecord is one entry of the business-unit-segmented CMDB workbook,
// restricted at import time to rows with a recognizable database product.
type CmdbFullRecord struct {
	ID                int64  `json:"id"`
	Client            string `json:"client"`
	Hostname          string `json:"hostname"`
	Contingency       string `json:"contingency"`
	DBType            string `json:"db_type"`
	DBVersion         string `json:"db_version"`
	Status            string `json:"status"`
	ServerType        string `json:"server_type"`
	Environment       string `json:"environment"`
	OS                string `json:"os"`
	ResponsibleTeam   string `json:"responsible_team"`
	Manager           string `json:"manager"`
	PrimaryContact    string `json:"primary_contact"`
	SystemProduct     string `json:"system_product"`
	Function          string `json:"function"`
	Description       string `json:"description"`
	ValidationContact string `json:"validation_contact"`
	TeamEmail         string `json:"team_email"`
	ShutdownProcedure string `json:"shutdown_procedure"`
	Affinity          string `json:"affinity"`
	WeekMonth         string `json:"week_month"`
	ApplicationDay    string `json:"application_day"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	ImportanceLevel   string `json:"importance_level"`
	Criticality       string `json:"criticality"`
	ScopePCI          string `json:"scope_pci"`
	ScopeSOX          string `json:"scope_sox"`
	ScopePagonxt      string `json:"scope_pagonxt"`
	IPService         string `json:"ip_service"`
	IPBackup          string `json:"ip_backup"`
	IPBranca          string `json:"ip_branca"`
	Zone              string `json:"zone"`
	Country           string `json:"country"`
	SourceSheet       string `json:"source_sheet"`
}

// EnrichedCmdbFull is a CmdbFullRecord with the legacy inventory fields
// attached when a (hostname, environment) match exists. The join happens at
// read time and is never persisted.
type EnrichedCmdbFull struct {
	CmdbFullRecord
	OraclePSU         string `json:"oracle_psu"`
	OracleStart       string `json:"oracle_start"`
	OracleEnd         string `json:"oracle_end"`
	OracleObservation string `json:"oracle_observation"`
	OracleContact     string `json:"oracle_contact"`
}

// Vulnerability is one scanner finding definition, keyed by its QID.
// First writer wins: rows are never overwritten on reimport.
type Vulnerability struct {
	QID      int64  `json:"qid"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
	Threat   string `json:"threat"`
	Solution string `json:"solution"`
	Category string `json:"category"`
}

// Detection is one (finding, asset) observation from a scan run. Detections
// accumulate across imports; there is no dedup against earlier runs.
type Detection struct {
	ID            int64  `json:"id"`
	QID           int64  `json:"qid"`
	AssetName     string `json:"asset_name"`
	AssetIP       string `json:"asset_ip"`
	Environment   string `json:"environment"`
	OS            string `json:"os"`
	OSVersion     string `json:"os_version"`
	Status        string `json:"status"`
	FirstDetected string `json:"first_detected"`
	LastDetected  string `json:"last_detected"`
	DetectionAge  int    `json:"detection_age"`
	Results       string `json:"results"`
	Overdue       string `json:"overdue"`
	Source        string `json:"source"`
}

// EnrichedDetection is a Detection matched to a confirmed database server
// in cmdb_full, with the derived responsibility classification.
type EnrichedDetection struct {
	Detection
	Title          string `json:"title"`
	Severity       string `json:"severity"`
	Hostname       string `json:"hostname"`
	Client         string `json:"client"`
	DBType         string `json:"db_type"`
	Classification string `json:"classification"`
}

// ImportRun is the audit record of one ingestion run.
type ImportRun struct {
	ID             int64     `json:"id"`
	ImportedAt     time.Time `json:"imported_at"`
	SourceFile     string    `json:"source_file"`
	SheetsImported string    `json:"sheets_imported"`
	TotalRecords   int       `json:"total_records"`
	Status         string    `json:"status"`
	Message        string    `json:"message"`
}

// User is an authenticated operator.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	Role         string `json:"role"`
	IsActive     bool   `json:"is_active"`
}
