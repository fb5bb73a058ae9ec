package services

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oraex/internal/config"
)

func newSheetFixture(t *testing.T) *SheetService {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "consolidation.xlsx")

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "MARÇO-25")
	// Header plus one existing ticket; the next free row is 3.
	require.NoError(t, f.SetCellValue("MARÇO-25", "A1", "Cliente"))
	require.NoError(t, f.SetCellValue("MARÇO-25", "H2", "CHG0040001"))
	require.NoError(t, f.SetCellValue("MARÇO-25", "I2", "Ticket existente"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	cfg := config.Config{ConsolidationPath: path, BackupDir: filepath.Join(dir, "backups")}
	return NewSheetService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAppendGmud(t *testing.T) {
	s := newSheetFixture(t)

	start := time.Date(2025, 3, 8, 22, 0, 0, 0, time.UTC)
	sheet, row, err := s.AppendGmud(GmudWriteRequest{
		Environment:  "PROD",
		StartDate:    start,
		EndDate:      start.Add(4 * time.Hour),
		ChangeNumber: "CHG0044010",
		Title:        "Atualização PSU 19.29",
		AssignedTo:   "Equipe Oracle",
	})
	require.NoError(t, err)
	require.Equal(t, "MARÇO-25", sheet)
	require.Equal(t, 3, row)

	f, err := excelize.OpenFile(s.Path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("MARÇO-25", cell)
		require.NoError(t, err)
		return v
	}
	require.Equal(t, "Getnet", get("A3"), "blank client takes the default")
	require.Equal(t, "CHG0044010", get("H3"))
	require.Equal(t, "Atualização PSU 19.29", get("I3"))
	require.Equal(t, "Sábado", get("E3"))
	require.Equal(t, "08/03/2025 22:00", get("F3"))
	// The pre-existing row was not touched.
	require.Equal(t, "CHG0040001", get("H2"))

	backups, err := os.ReadDir(s.BackupDir)
	require.NoError(t, err)
	require.Len(t, backups, 1)
}

func TestAppendGmudUnmappedMonth(t *testing.T) {
	s := newSheetFixture(t)

	_, _, err := s.AppendGmud(GmudWriteRequest{
		StartDate: time.Date(2031, 1, 10, 22, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	// No backup is taken when the write is rejected up front.
	_, statErr := os.Stat(s.BackupDir)
	require.True(t, os.IsNotExist(statErr))
}

func TestGenerateGmudTitle(t *testing.T) {
	title := GenerateGmudTitle("Escopo Fechado", "", "19.29", "dbsrv01, dbsrv02")
	require.Equal(t,
		"[Escopo Fechado - BD] Atualização PSU 19.29 conforme orientação Oracle | dbsrv01, dbsrv02",
		title)

	withPriority := GenerateGmudTitle("", "Emergencial", "", "dbsrv09")
	require.Equal(t,
		"[Escopo Fechado - BD - Emergencial] Atualização PSU 19.29 conforme orientação Oracle | dbsrv09",
		withPriority)
}
