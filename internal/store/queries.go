package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"oraex/internal/models"
)

// ErrNotFound is returned by single-row lookups when nothing matched.
var ErrNotFound = errors.New("not found")

const serverColumns = `id, environment, primary_hostname, standby_hostname, psu_version,
	email_sent, alignment, ggs_version, primary_contact, responsible_team, system_product,
	application_day, start_time, end_time, observation, total_servers, has_standby, has_ggs`

func scanServer(rows *sql.Rows) (models.Server, error) {
	var r models.Server
	var standby, ggs int
	err := rows.Scan(&r.ID, &r.Environment, &r.PrimaryHostname, &r.StandbyHostname, &r.PSUVersion,
		&r.EmailSent, &r.Alignment, &r.GGSVersion, &r.PrimaryContact, &r.ResponsibleTeam, &r.SystemProduct,
		&r.ApplicationDay, &r.StartTime, &r.EndTime, &r.Observation, &r.TotalServers, &standby, &ggs)
	r.HasStandby = standby != 0
	r.HasGGS = ggs != 0
	return r, err
}

// ServerFilter narrows ListServers.
type ServerFilter struct {
	Environment string
	PSUVersion  string
	ListOptions
}

func (s *Store) ListServers(ctx context.Context, f ServerFilter) ([]models.Server, int, error) {
	var fb filterBuilder
	if f.Environment != "" {
		fb.add("environment = ?", f.Environment)
	}
	if f.PSUVersion != "" {
		fb.add("psu_version = ?", f.PSUVersion)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		fb.add("(primary_hostname LIKE ? OR standby_hostname LIKE ? OR system_product LIKE ?)", like, like, like)
	}
	total, err := s.count(ctx, "SELECT COUNT(*) FROM servers"+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	query := fmt.Sprintf("SELECT %s FROM servers%s ORDER BY environment, primary_hostname LIMIT ? OFFSET ?",
		serverColumns, fb.where())
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(query), append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Server
	for rows.Next() {
		r, err := scanServer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

const gmudColumns = `id, year, month, client, db_type, environment, status, day_of_week,
	start_date, end_date, change_number, title, assigned_to, observation, vulnerability,
	opened_by, vulnerability_before, vulnerability_after, closing_code, needs_replan,
	new_start_date, new_end_date, new_gmud`

func scanGmud(rows interface{ Scan(...any) error }) (models.Gmud, error) {
	var r models.Gmud
	err := rows.Scan(&r.ID, &r.Year, &r.Month, &r.Client, &r.DBType, &r.Environment, &r.Status,
		&r.DayOfWeek, &r.StartDate, &r.EndDate, &r.ChangeNumber, &r.Title, &r.AssignedTo,
		&r.Observation, &r.Vulnerability, &r.OpenedBy, &r.VulnerabilityBefore, &r.VulnerabilityAfter,
		&r.ClosingCode, &r.NeedsReplan, &r.NewStartDate, &r.NewEndDate, &r.NewGmud)
	return r, err
}

// GmudFilter narrows ListGmuds. Zero values mean "no constraint".
type GmudFilter struct {
	Year        int
	Month       int
	Status      string
	Environment string
	Client      string
	AssignedTo  string
	ListOptions
}

func (s *Store) ListGmuds(ctx context.Context, f GmudFilter) ([]models.Gmud, int, error) {
	var fb filterBuilder
	if f.Year != 0 {
		fb.add("year = ?", f.Year)
	}
	if f.Month != 0 {
		fb.add("month = ?", f.Month)
	}
	if f.Status != "" {
		fb.add("status = ?", f.Status)
	}
	if f.Environment != "" {
		fb.add("environment = ?", f.Environment)
	}
	if f.Client != "" {
		fb.add("client = ?", f.Client)
	}
	if f.AssignedTo != "" {
		fb.add("assigned_to LIKE ?", "%"+f.AssignedTo+"%")
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		fb.add("(change_number LIKE ? OR title LIKE ? OR assigned_to LIKE ?)", like, like, like)
	}
	total, err := s.count(ctx, "SELECT COUNT(*) FROM gmuds"+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	query := fmt.Sprintf("SELECT %s FROM gmuds%s ORDER BY year DESC, month DESC, start_date, id LIMIT ? OFFSET ?",
		gmudColumns, fb.where())
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(query), append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.Gmud
	for rows.Next() {
		r, err := scanGmud(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// GmudsForHost returns tickets whose title or observation mentions the
// hostname, newest first. Host references live in free text on the sheet,
// so a substring match is the best available link.
func (s *Store) GmudsForHost(ctx context.Context, hostname string, limit int) ([]models.Gmud, error) {
	if limit <= 0 {
		limit = 100
	}
	like := "%" + hostname + "%"
	query := fmt.Sprintf(`SELECT %s FROM gmuds WHERE title LIKE ? OR observation LIKE ?
		ORDER BY year DESC, month DESC, start_date DESC, id DESC LIMIT ?`, gmudColumns)
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(query), like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Gmud
	for rows.Next() {
		r, err := scanGmud(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetGmud(ctx context.Context, id int64) (models.Gmud, error) {
	row := s.DB.SQL.QueryRowContext(ctx,
		s.DB.Rebind(fmt.Sprintf("SELECT %s FROM gmuds WHERE id = ?", gmudColumns)), id)
	r, err := scanGmud(row)
	if errors.Is(err, sql.ErrNoRows) {
		return r, ErrNotFound
	}
	return r, err
}

// UpdateGmudStatus patches the mutable ticket fields.
func (s *Store) UpdateGmudStatus(ctx context.Context, id int64, status, observation string) error {
	res, err := s.DB.SQL.ExecContext(ctx,
		s.DB.Rebind("UPDATE gmuds SET status = ?, observation = ? WHERE id = ?"),
		status, observation, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteGmud(ctx context.Context, id int64) error {
	res, err := s.DB.SQL.ExecContext(ctx, s.DB.Rebind("DELETE FROM gmuds WHERE id = ?"), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

const cmdbColumns = `id, environment, name, contingency_name, db_type, db_version,
	db_version_detail, status, application_day, week_month, start_time, end_time,
	system, system_product, type, os, primary_contact, function, description, os_type,
	responsible_team, manager, team_email, validation_contact, ip_address`

// CmdbFilter narrows ListCmdb.
type CmdbFilter struct {
	Environment string
	DBType      string
	Status      string
	ListOptions
}

func (s *Store) ListCmdb(ctx context.Context, f CmdbFilter) ([]models.CmdbRecord, int, error) {
	var fb filterBuilder
	if f.Environment != "" {
		fb.add("environment = ?", f.Environment)
	}
	if f.DBType != "" {
		fb.add("db_type = ?", f.DBType)
	}
	if f.Status != "" {
		fb.add("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		fb.add("(name LIKE ? OR contingency_name LIKE ? OR system_product LIKE ?)", like, like, like)
	}
	total, err := s.count(ctx, "SELECT COUNT(*) FROM cmdb_databases"+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	query := fmt.Sprintf("SELECT %s FROM cmdb_databases%s ORDER BY name LIMIT ? OFFSET ?", cmdbColumns, fb.where())
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(query), append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.CmdbRecord
	for rows.Next() {
		var r models.CmdbRecord
		if err := rows.Scan(&r.ID, &r.Environment, &r.Name, &r.ContingencyName, &r.DBType, &r.DBVersion,
			&r.DBVersionDetail, &r.Status, &r.ApplicationDay, &r.WeekMonth, &r.StartTime, &r.EndTime,
			&r.System, &r.SystemProduct, &r.Type, &r.OS, &r.PrimaryContact, &r.Function, &r.Description,
			&r.OSType, &r.ResponsibleTeam, &r.Manager, &r.TeamEmail, &r.ValidationContact, &r.IPAddress); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

func (s *Store) ListPlanning(ctx context.Context, o ListOptions) ([]models.PlanningRecord, int, error) {
	var fb filterBuilder
	if o.Search != "" {
		like := "%" + o.Search + "%"
		fb.add("(hostname LIKE ? OR system_product LIKE ?)", like, like)
	}
	total, err := s.count(ctx, "SELECT COUNT(*) FROM planning"+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := o.limitOffset()
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(`SELECT id, hostname, contingency_name,
		application_day, week_month, start_time, end_time, primary_contact, db_version, bank_version,
		system, system_product, os, function, description, responsible_team, validation_contact
		FROM planning`+fb.where()+" ORDER BY hostname LIMIT ? OFFSET ?"), append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.PlanningRecord
	for rows.Next() {
		var r models.PlanningRecord
		if err := rows.Scan(&r.ID, &r.Hostname, &r.ContingencyName, &r.ApplicationDay, &r.WeekMonth,
			&r.StartTime, &r.EndTime, &r.PrimaryContact, &r.DBVersion, &r.BankVersion, &r.System,
			&r.SystemProduct, &r.OS, &r.Function, &r.Description, &r.ResponsibleTeam, &r.ValidationContact); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// PagonxtFilter narrows ListPagonxt.
type PagonxtFilter struct {
	Environment string
	Zone        string
	ListOptions
}

func (s *Store) ListPagonxt(ctx context.Context, f PagonxtFilter) ([]models.PagonxtDatabase, int, error) {
	var fb filterBuilder
	if f.Environment != "" {
		fb.add("environment = ?", f.Environment)
	}
	if f.Zone != "" {
		fb.add("zone = ?", f.Zone)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		fb.add("(name LIKE ? OR contingent LIKE ? OR product LIKE ?)", like, like, like)
	}
	total, err := s.count(ctx, "SELECT COUNT(*) FROM pagonxt_databases"+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(`SELECT id, environment, name, contingent,
		psu_version, contact, zone, product, description, channel, service, observation, ip,
		instance, status, os FROM pagonxt_databases`+fb.where()+" ORDER BY name LIMIT ? OFFSET ?"),
		append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.PagonxtDatabase
	for rows.Next() {
		var r models.PagonxtDatabase
		if err := rows.Scan(&r.ID, &r.Environment, &r.Name, &r.Contingent, &r.PSUVersion, &r.Contact,
			&r.Zone, &r.Product, &r.Description, &r.Channel, &r.Service, &r.Observation, &r.IP,
			&r.Instance, &r.Status, &r.OS); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}
