package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"oraex/internal/models"
)

const cmdbFullColumns = `f.id, f.client, f.hostname, f.contingency, f.db_type, f.db_version,
	f.status, f.server_type, f.environment, f.os, f.responsible_team, f.manager,
	f.primary_contact, f.system_product, f.function, f.description, f.validation_contact,
	f.team_email, f.shutdown_procedure, f.affinity, f.week_month, f.application_day,
	f.start_time, f.end_time, f.importance_level, f.criticality, f.scope_pci, f.scope_sox,
	f.scope_pagonxt, f.ip_service, f.ip_backup, f.ip_branca, f.zone, f.country, f.source_sheet`

func scanCmdbFull(rows *sql.Rows, r *models.CmdbFullRecord, extra ...any) error {
	dest := []any{&r.ID, &r.Client, &r.Hostname, &r.Contingency, &r.DBType, &r.DBVersion,
		&r.Status, &r.ServerType, &r.Environment, &r.OS, &r.ResponsibleTeam, &r.Manager,
		&r.PrimaryContact, &r.SystemProduct, &r.Function, &r.Description, &r.ValidationContact,
		&r.TeamEmail, &r.ShutdownProcedure, &r.Affinity, &r.WeekMonth, &r.ApplicationDay,
		&r.StartTime, &r.EndTime, &r.ImportanceLevel, &r.Criticality, &r.ScopePCI, &r.ScopeSOX,
		&r.ScopePagonxt, &r.IPService, &r.IPBackup, &r.IPBranca, &r.Zone, &r.Country, &r.SourceSheet}
	return rows.Scan(append(dest, extra...)...)
}

// CmdbFullFilter narrows ListCmdbFull.
type CmdbFullFilter struct {
	Client      string
	Environment string
	DBType      string
	Status      string
	Zone        string
	Country     string
	ListOptions
}

func (f CmdbFullFilter) build() filterBuilder {
	var fb filterBuilder
	if f.Client != "" {
		fb.add("f.client = ?", f.Client)
	}
	if f.Environment != "" {
		fb.add("f.environment = ?", f.Environment)
	}
	if f.DBType != "" {
		fb.add("f.db_type = ?", f.DBType)
	}
	if f.Status != "" {
		fb.add("f.status = ?", f.Status)
	}
	if f.Zone != "" {
		fb.add("f.zone = ?", f.Zone)
	}
	if f.Country != "" {
		fb.add("f.country = ?", f.Country)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		fb.add("(f.hostname LIKE ? OR f.contingency LIKE ? OR f.system_product LIKE ? OR f.ip_service LIKE ?)",
			like, like, like, like)
	}
	return fb
}

// ListCmdbFull returns consolidated inventory rows with the legacy window
// fields attached when the same host appears in the servers table for the
// same environment. The join is computed per request; nothing is persisted.
func (s *Store) ListCmdbFull(ctx context.Context, f CmdbFullFilter) ([]models.EnrichedCmdbFull, int, error) {
	fb := f.build()
	total, err := s.count(ctx, "SELECT COUNT(*) FROM cmdb_full f"+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	query := fmt.Sprintf(`SELECT %s,
		COALESCE(sv.psu_version, ''), COALESCE(sv.start_time, ''), COALESCE(sv.end_time, ''),
		COALESCE(sv.observation, ''), COALESCE(sv.primary_contact, '')
		FROM cmdb_full f
		LEFT JOIN servers sv
		  ON lower(sv.primary_hostname) = lower(f.hostname) AND sv.environment = f.environment
		%s ORDER BY f.client, f.hostname LIMIT ? OFFSET ?`, cmdbFullColumns, fb.where())
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(query), append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.EnrichedCmdbFull
	for rows.Next() {
		var r models.EnrichedCmdbFull
		if err := scanCmdbFull(rows, &r.CmdbFullRecord,
			&r.OraclePSU, &r.OracleStart, &r.OracleEnd, &r.OracleObservation, &r.OracleContact); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// CmdbFullStats summarizes the consolidated inventory for the dashboard.
type CmdbFullStats struct {
	Total             int                       `json:"total"`
	ByClient          map[string]int            `json:"by_client"`
	ByEnvironment     map[string]int            `json:"by_environment"`
	ByDBType          map[string]int            `json:"by_db_type"`
	ByStatus          map[string]int            `json:"by_status"`
	ByCountry         map[string]int            `json:"by_country"`
	TypeByEnvironment map[string]map[string]int `json:"type_by_environment"`
	ClientByType      map[string]map[string]int `json:"client_by_type"`
}

func (s *Store) GetCmdbFullStats(ctx context.Context) (CmdbFullStats, error) {
	stats := CmdbFullStats{
		ByClient:      map[string]int{},
		ByEnvironment: map[string]int{},
		ByDBType:      map[string]int{},
		ByStatus:      map[string]int{},
		ByCountry:     map[string]int{},
	}
	var err error
	if stats.Total, err = s.count(ctx, "SELECT COUNT(*) FROM cmdb_full"); err != nil {
		return stats, err
	}
	groups := []struct {
		column string
		into   map[string]int
	}{
		{"client", stats.ByClient},
		{"environment", stats.ByEnvironment},
		{"db_type", stats.ByDBType},
		{"status", stats.ByStatus},
		{"country", stats.ByCountry},
	}
	for _, g := range groups {
		if err := s.groupCount(ctx, "cmdb_full", g.column, g.into); err != nil {
			return stats, err
		}
	}
	if stats.TypeByEnvironment, err = s.crossTab(ctx, "db_type", "environment"); err != nil {
		return stats, err
	}
	if stats.ClientByType, err = s.crossTab(ctx, "client", "db_type"); err != nil {
		return stats, err
	}
	return stats, nil
}

// crossTab counts cmdb_full rows per (outer, inner) column pair.
func (s *Store) crossTab(ctx context.Context, outer, inner string) (map[string]map[string]int, error) {
	rows, err := s.DB.SQL.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s, %s, COUNT(*) FROM cmdb_full GROUP BY %s, %s", outer, inner, outer, inner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]map[string]int{}
	for rows.Next() {
		var a, b string
		var n int
		if err := rows.Scan(&a, &b, &n); err != nil {
			return nil, err
		}
		if a == "" {
			a = "(sem valor)"
		}
		if b == "" {
			b = "(sem valor)"
		}
		if out[a] == nil {
			out[a] = map[string]int{}
		}
		out[a][b] = n
	}
	return out, rows.Err()
}

func (s *Store) groupCount(ctx context.Context, table, column string, into map[string]int) error {
	rows, err := s.DB.SQL.QueryContext(ctx,
		fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", column, table, column))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		if key == "" {
			key = "(sem valor)"
		}
		into[key] = n
	}
	return rows.Err()
}

// CmdbFullFilterOptions lists the distinct values the UI offers as filters.
type CmdbFullFilterOptions struct {
	Clients      []string `json:"clients"`
	Environments []string `json:"environments"`
	DBTypes      []string `json:"db_types"`
	Statuses     []string `json:"statuses"`
	Zones        []string `json:"zones"`
	Countries    []string `json:"countries"`
}

func (s *Store) GetCmdbFullFilterOptions(ctx context.Context) (CmdbFullFilterOptions, error) {
	var opts CmdbFullFilterOptions
	targets := []struct {
		column string
		into   *[]string
	}{
		{"client", &opts.Clients},
		{"environment", &opts.Environments},
		{"db_type", &opts.DBTypes},
		{"status", &opts.Statuses},
		{"zone", &opts.Zones},
		{"country", &opts.Countries},
	}
	for _, t := range targets {
		vals, err := distinctValues(ctx, s,
			fmt.Sprintf("SELECT DISTINCT %s FROM cmdb_full ORDER BY %s", t.column, t.column))
		if err != nil {
			return opts, err
		}
		*t.into = vals
	}
	return opts, nil
}

// SearchHostnames returns hostnames matching prefix across the consolidated
// inventory, for autocomplete.
func (s *Store) SearchHostnames(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 15
	}
	return distinctValuesArgs(ctx, s, s.DB.Rebind(`SELECT DISTINCT hostname FROM cmdb_full
		WHERE hostname LIKE ? AND hostname <> '' ORDER BY hostname LIMIT ?`), prefix+"%", limit)
}

func distinctValuesArgs(ctx context.Context, s *Store, query string, args ...any) ([]string, error) {
	rows, err := s.DB.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ServerDetail bundles everything known about one hostname.
type ServerDetail struct {
	Hostname      string                     `json:"hostname"`
	InventoryOnly bool                       `json:"inventory_only"`
	Records       []models.EnrichedCmdbFull  `json:"records"`
	Planning      []models.PlanningRecord    `json:"planning"`
	Gmuds         []models.Gmud              `json:"gmuds"`
	Detections    []models.EnrichedDetection `json:"detections"`
}

// GetServerDetail looks a hostname up across the consolidated inventory,
// the planning table, the ticket history and the detection log. A host
// found only in the legacy
// inventory sheet is reported with InventoryOnly set and a synthesized
// record, so the caller always gets something renderable back.
func (s *Store) GetServerDetail(ctx context.Context, hostname string) (ServerDetail, error) {
	detail := ServerDetail{Hostname: hostname}

	records, _, err := s.ListCmdbFull(ctx, CmdbFullFilter{
		ListOptions: ListOptions{Search: hostname, PageSize: 100},
	})
	if err != nil {
		return detail, err
	}
	for _, r := range records {
		if strings.EqualFold(r.Hostname, hostname) || strings.EqualFold(r.Contingency, hostname) {
			detail.Records = append(detail.Records, r)
		}
	}

	if len(detail.Records) == 0 {
		row := s.DB.SQL.QueryRowContext(ctx, s.DB.Rebind(`SELECT environment, primary_hostname,
			psu_version, start_time, end_time, observation, primary_contact
			FROM servers WHERE lower(primary_hostname) = lower(?) OR lower(standby_hostname) = lower(?)`),
			hostname, hostname)
		var r models.EnrichedCmdbFull
		err := row.Scan(&r.Environment, &r.Hostname, &r.OraclePSU, &r.OracleStart, &r.OracleEnd,
			&r.OracleObservation, &r.OracleContact)
		switch {
		case err == sql.ErrNoRows:
			return detail, ErrNotFound
		case err != nil:
			return detail, err
		}
		r.DBType = "Oracle"
		r.SourceSheet = "Inventory Only"
		detail.InventoryOnly = true
		detail.Records = append(detail.Records, r)
	}

	planning, _, err := s.ListPlanning(ctx, ListOptions{Search: hostname, PageSize: 50})
	if err != nil {
		return detail, err
	}
	detail.Planning = planning

	gmuds, err := s.GmudsForHost(ctx, hostname, 100)
	if err != nil {
		return detail, err
	}
	detail.Gmuds = gmuds

	detections, _, err := s.ListDetections(ctx, DetectionFilter{
		Asset:       hostname,
		ListOptions: ListOptions{PageSize: 200},
	})
	if err != nil {
		return detail, err
	}
	detail.Detections = detections
	return detail, nil
}
