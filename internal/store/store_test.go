package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"oraex/internal/config"
	"oraex/internal/db"
	"oraex/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return New(database)
}

func TestReplaceServersIsFullRefresh(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "dbsrv01", StandbyHostname: "dbsrv02", TotalServers: 2, HasStandby: true},
		{Environment: "HOMOLOGACAO", PrimaryHostname: "dbsrv03", TotalServers: 1},
	}
	require.NoError(t, s.ReplaceServers(ctx, first))

	second := []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "dbsrv09", TotalServers: 1, HasGGS: true},
	}
	require.NoError(t, s.ReplaceServers(ctx, second))

	rows, total, err := s.ListServers(ctx, ServerFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, rows, 1)
	require.Equal(t, "dbsrv09", rows[0].PrimaryHostname)
	require.True(t, rows[0].HasGGS)
	require.False(t, rows[0].HasStandby)
}

// A refresh deletes before it inserts; a failure between the two must roll
// back so readers keep seeing the previous load.
func TestFailedRefreshKeepsPreviousRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceServers(ctx, []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "dbsrv01", TotalServers: 1},
		{Environment: "HOMOLOGACAO", PrimaryHostname: "dbsrv02", TotalServers: 1},
	}))

	// Insert stage fails after the delete already ran inside the tx.
	err := s.replaceAll(ctx, "servers", func(tx *sql.Tx) error {
		return errors.New("disk full")
	})
	require.ErrorContains(t, err, "reload servers")

	rows, total, err := s.ListServers(ctx, ServerFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, rows, 2)

	// Same guarantee through the public loader.
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, s.ReplaceServers(canceled, []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "dbsrv09", TotalServers: 1},
	}))

	_, total, err = s.ListServers(ctx, ServerFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestListServersFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceServers(ctx, []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "dbsrv01", PSUVersion: "19.26", TotalServers: 2},
		{Environment: "PRODUCAO", PrimaryHostname: "appdb07", PSUVersion: "19.21", TotalServers: 1},
		{Environment: "HOMOLOGACAO", PrimaryHostname: "dbsrv05", PSUVersion: "19.26", TotalServers: 1},
	}))

	_, total, err := s.ListServers(ctx, ServerFilter{Environment: "PRODUCAO"})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	_, total, err = s.ListServers(ctx, ServerFilter{PSUVersion: "19.26"})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	rows, total, err := s.ListServers(ctx, ServerFilter{ListOptions: ListOptions{Search: "dbsrv"}})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, rows, 2)
}

func TestGmudLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceGmuds(ctx, []models.Gmud{
		{Year: 2025, Month: 3, ChangeNumber: "CHG0012345", Status: "PROGRAMADA", Environment: "PRODUCAO", Title: "Aplicação PSU abril", AssignedTo: "Carlos Silva"},
		{Year: 2025, Month: 3, ChangeNumber: "CHG0012346", Status: "ENCERRADA", Environment: "PRODUCAO", AssignedTo: "Ana Souza"},
		{Year: 2025, Month: 4, ChangeNumber: "CHG0012399", Status: "PROGRAMADA", Environment: "HOMOLOGACAO", AssignedTo: "Carlos Silva"},
	}))

	rows, total, err := s.ListGmuds(ctx, GmudFilter{Year: 2025, Month: 3})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	rows, total, err = s.ListGmuds(ctx, GmudFilter{Status: "PROGRAMADA"})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	_, total, err = s.ListGmuds(ctx, GmudFilter{AssignedTo: "Carlos"})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	history, err := s.GmudsForHost(ctx, "PSU abril", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "CHG0012345", history[0].ChangeNumber)

	rows, _, err = s.ListGmuds(ctx, GmudFilter{ListOptions: ListOptions{Search: "CHG0012345"}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	id := rows[0].ID

	require.NoError(t, s.UpdateGmudStatus(ctx, id, "ENCERRADA", "executada sem ocorrências"))
	g, err := s.GetGmud(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "ENCERRADA", g.Status)
	require.Equal(t, "executada sem ocorrências", g.Observation)

	require.NoError(t, s.DeleteGmud(ctx, id))
	require.ErrorIs(t, s.DeleteGmud(ctx, id), ErrNotFound)
	_, err = s.GetGmud(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertVulnerabilitiesFirstWriterWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inserted, err := s.UpsertVulnerabilities(ctx, []models.Vulnerability{
		{QID: 105943, Title: "Oracle Database Critical Patch Update", Severity: "5"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	inserted, err = s.UpsertVulnerabilities(ctx, []models.Vulnerability{
		{QID: 105943, Title: "different text from a later scan", Severity: "3"},
		{QID: 38657, Title: "SSL Certificate Expired", Severity: "2"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	v, err := s.GetVulnerability(ctx, 105943)
	require.NoError(t, err)
	require.Equal(t, "Oracle Database Critical Patch Update", v.Title)
	require.Equal(t, "5", v.Severity)
}

func TestDetectionEnrichment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceCmdbFull(ctx, []models.CmdbFullRecord{
		{Client: "GETNET", Hostname: "DBSRV01", DBType: "Oracle", SourceSheet: "CMDB Geral GETNET Brasil"},
	}))
	_, err := s.UpsertVulnerabilities(ctx, []models.Vulnerability{
		{QID: 105943, Title: "Oracle Database Critical Patch Update", Severity: "5"},
		{QID: 38657, Title: "SSL Certificate Expired", Severity: "2"},
	})
	require.NoError(t, err)
	require.NoError(t, s.InsertDetections(ctx, []models.Detection{
		{QID: 105943, AssetName: "dbsrv01", Status: "Active", DetectionAge: 120, Source: "getnet"},
		{QID: 38657, AssetName: "dbsrv01", Status: "Active", DetectionAge: 30, Source: "getnet"},
		{QID: 105943, AssetName: "webserver99", Status: "Active", DetectionAge: 10, Source: "getnet"},
	}))

	rows, total, err := s.ListDetections(ctx, DetectionFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total, "asset missing from the inventory must not appear")
	require.Len(t, rows, 2)

	// Ordered by age descending.
	require.Equal(t, "DBSRV01", rows[0].Hostname)
	require.Equal(t, "GETNET", rows[0].Client)
	require.Equal(t, "DBA", rows[0].Classification)
	require.Equal(t, "Security/Crypto", rows[1].Classification)

	stats, err := s.GetVulnerabilityStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalFindings)
	require.Equal(t, 2, stats.TotalDetections)
	require.Equal(t, 1, stats.AffectedServers)
	require.Equal(t, 1, stats.ByClassification["DBA"])
}

func TestDetectionsAccumulateAcrossImports(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceCmdbFull(ctx, []models.CmdbFullRecord{
		{Client: "GETNET", Hostname: "dbsrv01", DBType: "Oracle"},
	}))
	_, err := s.UpsertVulnerabilities(ctx, []models.Vulnerability{{QID: 1, Title: "x"}})
	require.NoError(t, err)

	det := []models.Detection{{QID: 1, AssetName: "dbsrv01", Source: "pagonxt"}}
	require.NoError(t, s.InsertDetections(ctx, det))
	require.NoError(t, s.InsertDetections(ctx, det))

	_, total, err := s.ListDetections(ctx, DetectionFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestCmdbFullEnrichmentJoin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceServers(ctx, []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "DBSRV01", PSUVersion: "19.23",
			StartTime: "22:00", EndTime: "02:00", Observation: "janela mensal", PrimaryContact: "Equipe Oracle", TotalServers: 1},
	}))
	require.NoError(t, s.ReplaceCmdbFull(ctx, []models.CmdbFullRecord{
		{Client: "GETNET", Hostname: "dbsrv01", Environment: "PRODUCAO", DBType: "Oracle"},
		{Client: "GETNET", Hostname: "dbsrv01", Environment: "HOMOLOGACAO", DBType: "Oracle"},
		{Client: "LATAM", Hostname: "otherdb", Environment: "PRODUCAO", DBType: "SQL Server"},
	}))

	rows, total, err := s.ListCmdbFull(ctx, CmdbFullFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, total)

	byKey := map[string]models.EnrichedCmdbFull{}
	for _, r := range rows {
		byKey[r.Hostname+"/"+r.Environment] = r
	}
	require.Equal(t, "19.23", byKey["dbsrv01/PRODUCAO"].OraclePSU)
	require.Equal(t, "Equipe Oracle", byKey["dbsrv01/PRODUCAO"].OracleContact)
	// Environment mismatch must not enrich.
	require.Empty(t, byKey["dbsrv01/HOMOLOGACAO"].OraclePSU)
	require.Empty(t, byKey["otherdb/PRODUCAO"].OraclePSU)

	stats, err := s.GetCmdbFullStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.ByClient["GETNET"])
	require.Equal(t, 1, stats.TypeByEnvironment["Oracle"]["HOMOLOGACAO"])
	require.Equal(t, 1, stats.ClientByType["LATAM"]["SQL Server"])
}

func TestGetServerDetailInventoryOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceServers(ctx, []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "legacydb01", PSUVersion: "19.21", TotalServers: 1},
	}))

	detail, err := s.GetServerDetail(ctx, "legacydb01")
	require.NoError(t, err)
	require.True(t, detail.InventoryOnly)
	require.Len(t, detail.Records, 1)
	require.Equal(t, "Inventory Only", detail.Records[0].SourceSheet)
	require.Equal(t, "19.21", detail.Records[0].OraclePSU)

	_, err = s.GetServerDetail(ctx, "nosuchhost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, s.EnsureAdmin(ctx, "admin", "ignored-second-time"))

	u, err := s.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "admin", u.Role)

	_, err = s.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)
	_, err = s.Authenticate(ctx, "ghost", "admin123")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestDashboardAndFilterOptions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceServers(ctx, []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "a", TotalServers: 2},
		{Environment: "PRODUCAO", PrimaryHostname: "b", TotalServers: 1},
	}))
	require.NoError(t, s.ReplaceGmuds(ctx, []models.Gmud{
		{Year: 2025, Month: 5, Status: "PROGRAMADA", AssignedTo: "Carlos Silva"},
		{Year: 2025, Month: 5, Status: "ENCERRADA", AssignedTo: "Carlos Silva"},
	}))

	stats, err := s.GetDashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalServers)
	require.Equal(t, 3, stats.TotalMachines)
	require.Equal(t, 2, stats.TotalGmuds)
	require.Equal(t, 1, stats.GmudsByStatus["PROGRAMADA"])
	require.Equal(t, 2, stats.GmudsByMonth["2025-05"])
	require.Equal(t, 2, stats.GmudsByPerson["Carlos Silva"])

	opts, err := s.GetFilterOptions(ctx)
	require.NoError(t, err)
	require.Equal(t, []GmudPeriod{{2025, 5}}, opts.GmudPeriods)
	require.ElementsMatch(t, []string{"ENCERRADA", "PROGRAMADA"}, opts.GmudStatuses)
	require.Equal(t, []string{"PRODUCAO"}, opts.ServerEnvironments)
}
