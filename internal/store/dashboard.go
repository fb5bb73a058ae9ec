package store

import (
	"context"
	"fmt"
)

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalServers      int            `json:"total_servers"`
	TotalMachines     int            `json:"total_machines"`
	ServersByEnv      map[string]int `json:"servers_by_env"`
	ServersByPSU      map[string]int `json:"servers_by_psu"`
	TotalCmdb         int            `json:"total_cmdb"`
	TotalCmdbFull     int            `json:"total_cmdb_full"`
	TotalPagonxt      int            `json:"total_pagonxt"`
	TotalGmuds        int            `json:"total_gmuds"`
	GmudsByStatus     map[string]int `json:"gmuds_by_status"`
	GmudsByMonth      map[string]int `json:"gmuds_by_month"`
	GmudsByPerson     map[string]int `json:"gmuds_by_person"`
	OpenVulnerability int            `json:"open_vulnerabilities"`
}

func (s *Store) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	stats := DashboardStats{
		ServersByEnv:  map[string]int{},
		ServersByPSU:  map[string]int{},
		GmudsByStatus: map[string]int{},
		GmudsByMonth:  map[string]int{},
		GmudsByPerson: map[string]int{},
	}
	counts := []struct {
		query string
		into  *int
	}{
		{"SELECT COUNT(*) FROM servers", &stats.TotalServers},
		{"SELECT COALESCE(SUM(total_servers), 0) FROM servers", &stats.TotalMachines},
		{"SELECT COUNT(*) FROM cmdb_databases", &stats.TotalCmdb},
		{"SELECT COUNT(*) FROM cmdb_full", &stats.TotalCmdbFull},
		{"SELECT COUNT(*) FROM pagonxt_databases", &stats.TotalPagonxt},
		{"SELECT COUNT(*) FROM gmuds", &stats.TotalGmuds},
		{"SELECT COUNT(*) " + detectionJoin + " WHERE d.status NOT IN ('Fixed', 'FIXED')", &stats.OpenVulnerability},
	}
	for _, c := range counts {
		n, err := s.count(ctx, c.query)
		if err != nil {
			return stats, err
		}
		*c.into = n
	}
	if err := s.groupCount(ctx, "servers", "environment", stats.ServersByEnv); err != nil {
		return stats, err
	}
	if err := s.groupCount(ctx, "servers", "psu_version", stats.ServersByPSU); err != nil {
		return stats, err
	}
	if err := s.groupCount(ctx, "gmuds", "status", stats.GmudsByStatus); err != nil {
		return stats, err
	}
	if err := s.groupCount(ctx, "gmuds", "assigned_to", stats.GmudsByPerson); err != nil {
		return stats, err
	}

	// The month key is assembled in Go so both dialects run the same SQL.
	rows, err := s.DB.SQL.QueryContext(ctx,
		"SELECT year, month, COUNT(*) FROM gmuds GROUP BY year, month")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var year, month, n int
		if err := rows.Scan(&year, &month, &n); err != nil {
			return stats, err
		}
		stats.GmudsByMonth[fmt.Sprintf("%04d-%02d", year, month)] = n
	}
	return stats, rows.Err()
}

// GmudPeriod is one (year, month) that has tickets.
type GmudPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// FilterOptions lists the distinct values available for the main listing
// filters. Status values come straight out of the data: the vocabulary is
// open, so the set grows with whatever the sheets contain.
type FilterOptions struct {
	GmudPeriods        []GmudPeriod `json:"gmud_periods"`
	GmudStatuses       []string     `json:"gmud_statuses"`
	GmudEnvironments   []string     `json:"gmud_environments"`
	GmudClients        []string     `json:"gmud_clients"`
	CmdbEnvironments   []string     `json:"cmdb_environments"`
	CmdbDBTypes        []string     `json:"cmdb_db_types"`
	CmdbStatuses       []string     `json:"cmdb_statuses"`
	ServerEnvironments []string     `json:"server_environments"`
}

func (s *Store) GetFilterOptions(ctx context.Context) (FilterOptions, error) {
	var opts FilterOptions

	rows, err := s.DB.SQL.QueryContext(ctx,
		"SELECT DISTINCT year, month FROM gmuds ORDER BY year DESC, month DESC")
	if err != nil {
		return opts, err
	}
	defer rows.Close()
	for rows.Next() {
		var p GmudPeriod
		if err := rows.Scan(&p.Year, &p.Month); err != nil {
			return opts, err
		}
		opts.GmudPeriods = append(opts.GmudPeriods, p)
	}
	if err := rows.Err(); err != nil {
		return opts, err
	}

	targets := []struct {
		table, column string
		into          *[]string
	}{
		{"gmuds", "status", &opts.GmudStatuses},
		{"gmuds", "environment", &opts.GmudEnvironments},
		{"gmuds", "client", &opts.GmudClients},
		{"cmdb_databases", "environment", &opts.CmdbEnvironments},
		{"cmdb_databases", "db_type", &opts.CmdbDBTypes},
		{"cmdb_databases", "status", &opts.CmdbStatuses},
		{"servers", "environment", &opts.ServerEnvironments},
	}
	for _, t := range targets {
		vals, err := distinctValues(ctx, s,
			fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", t.column, t.table, t.column))
		if err != nil {
			return opts, err
		}
		*t.into = vals
	}
	return opts, nil
}
