package store

import (
	"context"
	"database/sql"
	"errors"

	"oraex/internal/models"
	"oraex/internal/normalize"
)

// Detections are only interesting when the scanned asset is a database
// server, so listings join against the consolidated inventory. One
// inventory row is picked per hostname; the table holds a row per
// (hostname, business unit) and the client/db_type values agree.
const detectionJoin = `FROM vulnerability_detections d
	LEFT JOIN vulnerabilities v ON v.qid = d.qid
	JOIN (SELECT lower(hostname) AS h, MIN(hostname) AS hostname, MIN(client) AS client,
	             MIN(db_type) AS db_type
	      FROM cmdb_full WHERE hostname <> '' GROUP BY lower(hostname)) f
	  ON lower(d.asset_name) = f.h`

// DetectionFilter narrows ListDetections.
type DetectionFilter struct {
	Asset    string
	Severity string
	Status   string
	Source   string
	QID      int64
	ListOptions
}

func (f DetectionFilter) build() filterBuilder {
	var fb filterBuilder
	if f.Asset != "" {
		fb.add("lower(d.asset_name) = lower(?)", f.Asset)
	}
	if f.Severity != "" {
		fb.add("v.severity = ?", f.Severity)
	}
	if f.Status != "" {
		fb.add("d.status = ?", f.Status)
	}
	if f.Source != "" {
		fb.add("d.source = ?", f.Source)
	}
	if f.QID != 0 {
		fb.add("d.qid = ?", f.QID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		fb.add("(d.asset_name LIKE ? OR v.title LIKE ?)", like, like)
	}
	return fb
}

// ListDetections returns scan observations on known database servers,
// enriched with the finding text and the responsibility classification.
func (s *Store) ListDetections(ctx context.Context, f DetectionFilter) ([]models.EnrichedDetection, int, error) {
	fb := f.build()
	total, err := s.count(ctx, "SELECT COUNT(*) "+detectionJoin+fb.where(), fb.args...)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	query := `SELECT d.id, d.qid, d.asset_name, d.asset_ip, d.environment, d.os, d.os_version,
		d.status, d.first_detected, d.last_detected, d.detection_age, d.results, d.overdue, d.source,
		COALESCE(v.title, ''), COALESCE(v.severity, ''),
		f.hostname, f.client, f.db_type ` + detectionJoin + fb.where() +
		" ORDER BY d.detection_age DESC, d.id LIMIT ? OFFSET ?"
	rows, err := s.DB.SQL.QueryContext(ctx, s.DB.Rebind(query), append(fb.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []models.EnrichedDetection
	for rows.Next() {
		var r models.EnrichedDetection
		if err := rows.Scan(&r.ID, &r.QID, &r.AssetName, &r.AssetIP, &r.Environment, &r.OS, &r.OSVersion,
			&r.Status, &r.FirstDetected, &r.LastDetected, &r.DetectionAge, &r.Results, &r.Overdue, &r.Source,
			&r.Title, &r.Severity, &r.Hostname, &r.Client, &r.DBType); err != nil {
			return nil, 0, err
		}
		r.Classification = normalize.ClassifyFinding(r.Title)
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// GetVulnerability returns a finding definition by QID.
func (s *Store) GetVulnerability(ctx context.Context, qid int64) (models.Vulnerability, error) {
	var v models.Vulnerability
	err := s.DB.SQL.QueryRowContext(ctx, s.DB.Rebind(`SELECT qid, title, severity, threat,
		solution, category FROM vulnerabilities WHERE qid = ?`), qid).
		Scan(&v.QID, &v.Title, &v.Severity, &v.Threat, &v.Solution, &v.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// VulnerabilityStats summarizes the detection log for the dashboard.
type VulnerabilityStats struct {
	TotalFindings    int            `json:"total_findings"`
	TotalDetections  int            `json:"total_detections"`
	AffectedServers  int            `json:"affected_servers"`
	BySeverity       map[string]int `json:"by_severity"`
	ByClassification map[string]int `json:"by_classification"`
	BySource         map[string]int `json:"by_source"`
}

func (s *Store) GetVulnerabilityStats(ctx context.Context) (VulnerabilityStats, error) {
	stats := VulnerabilityStats{
		BySeverity:       map[string]int{},
		ByClassification: map[string]int{},
		BySource:         map[string]int{},
	}
	var err error
	if stats.TotalFindings, err = s.count(ctx, "SELECT COUNT(*) FROM vulnerabilities"); err != nil {
		return stats, err
	}
	if stats.TotalDetections, err = s.count(ctx, "SELECT COUNT(*) "+detectionJoin); err != nil {
		return stats, err
	}
	if stats.AffectedServers, err = s.count(ctx,
		"SELECT COUNT(DISTINCT lower(d.asset_name)) "+detectionJoin); err != nil {
		return stats, err
	}

	rows, err := s.DB.SQL.QueryContext(ctx, `SELECT COALESCE(v.severity, ''), d.source,
		COALESCE(v.title, '') `+detectionJoin)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var severity, source, title string
		if err := rows.Scan(&severity, &source, &title); err != nil {
			return stats, err
		}
		if severity == "" {
			severity = "?"
		}
		stats.BySeverity[severity]++
		stats.BySource[source]++
		stats.ByClassification[normalize.ClassifyFinding(title)]++
	}
	return stats, rows.Err()
}
