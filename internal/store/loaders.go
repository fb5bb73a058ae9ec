package store

import (
	"context"
	"database/sql"
	"time"

	"oraex/internal/models"
)

// ReplaceServers swaps the servers table for rows.
func (s *Store) ReplaceServers(ctx context.Context, rows []models.Server) error {
	return s.replaceAll(ctx, "servers", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`INSERT INTO servers
			(environment, primary_hostname, standby_hostname, psu_version, email_sent,
			 alignment, ggs_version, primary_contact, responsible_team, system_product,
			 application_day, start_time, end_time, observation, total_servers, has_standby, has_ggs)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Environment, r.PrimaryHostname, r.StandbyHostname, r.PSUVersion, r.EmailSent,
				r.Alignment, r.GGSVersion, r.PrimaryContact, r.ResponsibleTeam, r.SystemProduct,
				r.ApplicationDay, r.StartTime, r.EndTime, r.Observation,
				r.TotalServers, boolInt(r.HasStandby), boolInt(r.HasGGS)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceCmdb swaps the cmdb_databases table for rows.
func (s *Store) ReplaceCmdb(ctx context.Context, rows []models.CmdbRecord) error {
	return s.replaceAll(ctx, "cmdb_databases", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`INSERT INTO cmdb_databases
			(environment, name, contingency_name, db_type, db_version, db_version_detail,
			 status, application_day, week_month, start_time, end_time, system, system_product,
			 type, os, primary_contact, function, description, os_type, responsible_team,
			 manager, team_email, validation_contact, ip_address)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Environment, r.Name, r.ContingencyName, r.DBType, r.DBVersion, r.DBVersionDetail,
				r.Status, r.ApplicationDay, r.WeekMonth, r.StartTime, r.EndTime, r.System, r.SystemProduct,
				r.Type, r.OS, r.PrimaryContact, r.Function, r.Description, r.OSType, r.ResponsibleTeam,
				r.Manager, r.TeamEmail, r.ValidationContact, r.IPAddress); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceGmuds swaps the gmuds table for rows. All change tickets live in
// one table regardless of which month sheet they came from; the (year,
// month) columns keep them apart.
func (s *Store) ReplaceGmuds(ctx context.Context, rows []models.Gmud) error {
	return s.replaceAll(ctx, "gmuds", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(insertGmudSQL))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, gmudArgs(r)...); err != nil {
				return err
			}
		}
		return nil
	})
}

const insertGmudSQL = `INSERT INTO gmuds
	(year, month, client, db_type, environment, status, day_of_week, start_date, end_date,
	 change_number, title, assigned_to, observation, vulnerability, opened_by,
	 vulnerability_before, vulnerability_after, closing_code, needs_replan,
	 new_start_date, new_end_date, new_gmud)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

func gmudArgs(r models.Gmud) []any {
	return []any{
		r.Year, r.Month, r.Client, r.DBType, r.Environment, r.Status, r.DayOfWeek,
		r.StartDate, r.EndDate, r.ChangeNumber, r.Title, r.AssignedTo, r.Observation,
		r.Vulnerability, r.OpenedBy, r.VulnerabilityBefore, r.VulnerabilityAfter,
		r.ClosingCode, r.NeedsReplan, r.NewStartDate, r.NewEndDate, r.NewGmud,
	}
}

// ReplacePlanning swaps the planning table for rows.
func (s *Store) ReplacePlanning(ctx context.Context, rows []models.PlanningRecord) error {
	return s.replaceAll(ctx, "planning", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`INSERT INTO planning
			(hostname, contingency_name, application_day, week_month, start_time, end_time,
			 primary_contact, db_version, bank_version, system, system_product, os,
			 function, description, responsible_team, validation_contact)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Hostname, r.ContingencyName, r.ApplicationDay, r.WeekMonth, r.StartTime, r.EndTime,
				r.PrimaryContact, r.DBVersion, r.BankVersion, r.System, r.SystemProduct, r.OS,
				r.Function, r.Description, r.ResponsibleTeam, r.ValidationContact); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplacePagonxt swaps the pagonxt_databases table for rows.
func (s *Store) ReplacePagonxt(ctx context.Context, rows []models.PagonxtDatabase) error {
	return s.replaceAll(ctx, "pagonxt_databases", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`INSERT INTO pagonxt_databases
			(environment, name, contingent, psu_version, contact, zone, product, description,
			 channel, service, observation, ip, instance, status, os)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Environment, r.Name, r.Contingent, r.PSUVersion, r.Contact, r.Zone, r.Product,
				r.Description, r.Channel, r.Service, r.Observation, r.IP, r.Instance, r.Status, r.OS); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceCmdbFull swaps the cmdb_full table for rows.
func (s *Store) ReplaceCmdbFull(ctx context.Context, rows []models.CmdbFullRecord) error {
	return s.replaceAll(ctx, "cmdb_full", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`INSERT INTO cmdb_full
			(client, hostname, contingency, db_type, db_version, status, server_type,
			 environment, os, responsible_team, manager, primary_contact, system_product,
			 function, description, validation_contact, team_email, shutdown_procedure,
			 affinity, week_month, application_day, start_time, end_time, importance_level,
			 criticality, scope_pci, scope_sox, scope_pagonxt, ip_service, ip_backup,
			 ip_branca, zone, country, source_sheet)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx,
				r.Client, r.Hostname, r.Contingency, r.DBType, r.DBVersion, r.Status, r.ServerType,
				r.Environment, r.OS, r.ResponsibleTeam, r.Manager, r.PrimaryContact, r.SystemProduct,
				r.Function, r.Description, r.ValidationContact, r.TeamEmail, r.ShutdownProcedure,
				r.Affinity, r.WeekMonth, r.ApplicationDay, r.StartTime, r.EndTime, r.ImportanceLevel,
				r.Criticality, r.ScopePCI, r.ScopeSOX, r.ScopePagonxt, r.IPService, r.IPBackup,
				r.IPBranca, r.Zone, r.Country, r.SourceSheet); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertVulnerabilities inserts finding definitions that are not yet known.
// An existing QID keeps the text it was first imported with; later scans
// never overwrite it.
func (s *Store) UpsertVulnerabilities(ctx context.Context, rows []models.Vulnerability) (int, error) {
	query := s.DB.Rebind(`INSERT INTO vulnerabilities (qid, title, severity, threat, solution, category)
		VALUES (?,?,?,?,?,?) ON CONFLICT (qid) DO NOTHING`)
	if s.DB.Driver == "sqlite" {
		query = `INSERT OR IGNORE INTO vulnerabilities (qid, title, severity, threat, solution, category)
		VALUES (?,?,?,?,?,?)`
	}
	tx, err := s.DB.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	inserted := 0
	for _, r := range rows {
		res, err := stmt.ExecContext(ctx, r.QID, r.Title, r.Severity, r.Threat, r.Solution, r.Category)
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, tx.Commit()
}

// InsertDetections appends scan observations. Detections from earlier runs
// stay in place.
func (s *Store) InsertDetections(ctx context.Context, rows []models.Detection) error {
	tx, err := s.DB.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, s.DB.Rebind(`INSERT INTO vulnerability_detections
		(qid, asset_name, asset_ip, environment, os, os_version, status,
		 first_detected, last_detected, detection_age, results, overdue, source)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.QID, r.AssetName, r.AssetIP, r.Environment, r.OS, r.OSVersion, r.Status,
			r.FirstDetected, r.LastDetected, r.DetectionAge, r.Results, r.Overdue, r.Source); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LogImport appends one audit row for a finished ingestion run.
func (s *Store) LogImport(ctx context.Context, run models.ImportRun) error {
	_, err := s.DB.SQL.ExecContext(ctx, s.DB.Rebind(`INSERT INTO import_log
		(imported_at, source_file, sheets_imported, total_records, status, message)
		VALUES (?,?,?,?,?,?)`),
		run.ImportedAt.UTC().Format("2006-01-02 15:04:05"),
		run.SourceFile, run.SheetsImported, run.TotalRecords, run.Status, run.Message)
	return err
}

// RecentImports returns the newest audit rows, most recent first.
func (s *Store) RecentImports(ctx context.Context, limit int) ([]models.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(`SELECT id, imported_at, source_file,
		sheets_imported, total_records, status, message
		FROM import_log ORDER BY id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.ImportRun
	for rows.Next() {
		var r models.ImportRun
		var at string
		if err := rows.Scan(&r.ID, &at, &r.SourceFile, &r.SheetsImported, &r.TotalRecords, &r.Status, &r.Message); err != nil {
			return nil, err
		}
		if t, err := time.Parse("2006-01-02 15:04:05", at); err == nil {
			r.ImportedAt = t
		} else if t, err := time.Parse(time.RFC3339, at); err == nil {
			r.ImportedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
