package services

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"oraex/internal/config"
)

// GmudWriteRequest is one ticket to append to the consolidation workbook.
type GmudWriteRequest struct {
	Client        string    `json:"client"`
	DBType        string    `json:"db_type"`
	Environment   string    `json:"environment"`
	Status        string    `json:"status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	ChangeNumber  string    `json:"change_number"`
	Title         string    `json:"title"`
	AssignedTo    string    `json:"assigned_to"`
	Observation   string    `json:"observation"`
	Vulnerability string    `json:"vulnerability"`
	OpenedBy      string    `json:"opened_by"`
}

// SheetService appends GMUD rows to the spreadsheet the team still treats
// as the system of record. Every write is preceded by a timestamped backup
// copy; writes are serialized because excelize rewrites the whole file.
type SheetService struct {
	Path      string
	BackupDir string
	Log       *slog.Logger

	mu sync.Mutex
}

func NewSheetService(cfg config.Config, log *slog.Logger) *SheetService {
	return &SheetService{Path: cfg.ConsolidationPath, BackupDir: cfg.BackupDir, Log: log}
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// AppendGmud writes one ticket into the monthly sheet matching its start
// date. Returns the sheet and the 1-based row that received the data.
func (s *SheetService) AppendGmud(req GmudWriteRequest) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Path == "" {
		return "", 0, fmt.Errorf("no consolidation workbook configured")
	}
	sheet, ok := config.SheetForMonth(req.StartDate.Year(), int(req.StartDate.Month()))
	if !ok {
		return "", 0, fmt.Errorf("no sheet mapped for %d-%02d", req.StartDate.Year(), req.StartDate.Month())
	}

	backup, err := s.backup()
	if err != nil {
		return "", 0, fmt.Errorf("backup before write: %w", err)
	}
	s.Log.Info("workbook backup created", "path", backup)

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return "", 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return "", 0, fmt.Errorf("sheet %q not present in workbook", sheet)
	}

	row, err := s.nextFreeRow(f, sheet)
	if err != nil {
		return "", 0, err
	}

	type cellValue struct {
		column string
		value  any
	}
	cells := []cellValue{
		{"A", orDefault(req.Client, "Getnet")},
		{"B", orDefault(req.DBType, "Oracle")},
		{"C", orDefault(req.Environment, "PROD")},
		{"D", orDefault(req.Status, "PROGRAMADA")},
		{"E", weekdayNames[req.StartDate.Weekday()]},
		{"F", req.StartDate.Format("02/01/2006 15:04")},
		{"G", req.EndDate.Format("02/01/2006 15:04")},
		{"H", orDefault(req.ChangeNumber, "N/A")},
		{"I", req.Title},
		{"J", req.AssignedTo},
		{"K", req.Observation},
		{"L", req.Vulnerability},
		{"M", req.OpenedBy},
	}
	for _, c := range cells {
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", c.column, row), c.value); err != nil {
			return "", 0, fmt.Errorf("write cell %s%d: %w", c.column, row, err)
		}
	}

	if err := f.Save(); err != nil {
		return "", 0, fmt.Errorf("save workbook: %w", err)
	}
	s.Log.Info("gmud appended to workbook", "sheet", sheet, "row", row, "change", req.ChangeNumber)
	return sheet, row, nil
}

// nextFreeRow scans from row 2 for the first row whose change-number and
// title cells are both empty. Header is assumed on row 1.
func (s *SheetService) nextFreeRow(f *excelize.File, sheet string) (int, error) {
	for row := 2; ; row++ {
		gmud, err := f.GetCellValue(sheet, fmt.Sprintf("H%d", row))
		if err != nil {
			return 0, err
		}
		title, err := f.GetCellValue(sheet, fmt.Sprintf("I%d", row))
		if err != nil {
			return 0, err
		}
		if gmud == "" && title == "" {
			return row, nil
		}
	}
}

func (s *SheetService) backup() (string, error) {
	if err := os.MkdirAll(s.BackupDir, 0o755); err != nil {
		return "", err
	}
	src, err := os.Open(s.Path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%s_%s.bak", filepath.Base(s.Path), time.Now().Format("20060102_150405"))
	target := filepath.Join(s.BackupDir, name)
	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(target)
		return "", err
	}
	return target, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// GenerateGmudTitle builds the standardized ticket title used for PSU
// application changes.
func GenerateGmudTitle(gmudType, priority, psuVersion, hostnames string) string {
	if gmudType == "" {
		gmudType = "Escopo Fechado"
	}
	if psuVersion == "" {
		psuVersion = "19.29"
	}
	prefix := "[" + gmudType + " - BD"
	if priority != "" {
		prefix += " - " + priority
	}
	prefix += "]"
	return fmt.Sprintf("%s Atualização PSU %s conforme orientação Oracle | %s", prefix, psuVersion, hostnames)
}
