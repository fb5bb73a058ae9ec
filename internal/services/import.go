// Package services runs the ingestion pipelines and the workbook
// writeback. Imports are asynchronous: a handler registers a job, a
// goroutine does the work, and the client polls the job id.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"oraex/internal/config"
	"oraex/internal/importer"
	"oraex/internal/models"
	"oraex/internal/store"
	"oraex/internal/workbook"
)

// ImportKind selects which pipeline a job runs.
type ImportKind string

const (
	KindConsolidation ImportKind = "consolidation"
	KindCmdbFull      ImportKind = "cmdb_full"
	KindQualysPagonxt ImportKind = "qualys_pagonxt"
	KindQualysGetnet  ImportKind = "qualys_getnet"
)

// JobStatus is the lifecycle of one import job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobSuccess    JobStatus = "success"
	JobError      JobStatus = "error"
)

// Job is the pollable state of one upload. Finished jobs stay queryable
// until the registry evicts them.
type Job struct {
	ID         string         `json:"id"`
	Kind       ImportKind     `json:"kind"`
	Status     JobStatus      `json:"status"`
	Message    string         `json:"message,omitempty"`
	Counts     map[string]int `json:"counts,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

// ImportService owns the job registry and the pipelines.
type ImportService struct {
	Store *store.Store
	Log   *slog.Logger

	jobs *jobRegistry
}

func NewImportService(st *store.Store, log *slog.Logger) *ImportService {
	return &ImportService{Store: st, Log: log, jobs: newJobRegistry(time.Hour)}
}

// Submit registers a job for an uploaded workbook and starts it in the
// background. name is the upload's original file name; the audit trail
// records it instead of the temp path. The temp file is removed when the
// pipeline finishes, on every path including panic-free errors.
func (s *ImportService) Submit(kind ImportKind, path, name string) string {
	job := s.jobs.create(kind)
	go s.run(job, kind, path, name)
	return job
}

// Job returns a snapshot of a job, or false when it is unknown (never
// submitted, or already evicted).
func (s *ImportService) Job(id string) (Job, bool) {
	return s.jobs.get(id)
}

func (s *ImportService) run(id string, kind ImportKind, path, name string) {
	defer os.Remove(path)
	ctx := context.Background()

	s.jobs.update(id, JobProcessing, "", nil)
	s.Log.Info("import started", "job", id, "kind", string(kind), "file", name)

	var (
		counts map[string]int
		err    error
	)
	switch kind {
	case KindConsolidation:
		counts, err = s.RunConsolidation(ctx, path, name)
	case KindCmdbFull:
		counts, err = s.RunCmdbFull(ctx, path, name)
	case KindQualysPagonxt:
		counts, err = s.RunQualys(ctx, path, name, "PagoNxt")
	case KindQualysGetnet:
		counts, err = s.RunQualys(ctx, path, name, "GetNet")
	default:
		err = fmt.Errorf("unknown import kind %q", kind)
	}

	if err != nil {
		s.jobs.update(id, JobError, err.Error(), counts)
		s.Log.Error("import failed", "job", id, "kind", string(kind), "error", err)
		return
	}
	s.jobs.update(id, JobSuccess, "", counts)
	s.Log.Info("import finished", "job", id, "kind", string(kind), "counts", counts)
}

// RunConsolidation ingests the main workbook: the legacy inventory, the
// legacy CMDB, the planning sheet, the partner inventory and every monthly
// GMUD sheet present. Each source is replaced in its own transaction, so a
// failure in one source leaves the others at whichever state they reached.
// Sheets missing from the file contribute zero records and are skipped.
func (s *ImportService) RunConsolidation(ctx context.Context, path, name string) (map[string]int, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, s.audit(ctx, name, nil, err)
	}
	defer wb.Close()

	counts := map[string]int{}

	if g, ok, err := wb.Grid(importer.SheetServers); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	} else if ok {
		rows := importer.ExtractServers(g)
		if err := s.Store.ReplaceServers(ctx, rows); err != nil {
			return counts, s.audit(ctx, name, counts, err)
		}
		counts[importer.SheetServers] = len(rows)
	}

	if g, ok, err := wb.Grid(importer.SheetCmdb); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	} else if ok {
		rows := importer.ExtractCmdb(g)
		if err := s.Store.ReplaceCmdb(ctx, rows); err != nil {
			return counts, s.audit(ctx, name, counts, err)
		}
		counts[importer.SheetCmdb] = len(rows)
	}

	var gmuds []models.Gmud
	for name, period := range config.MonthSheets {
		g, ok, err := wb.Grid(name)
		if err != nil {
			return counts, s.audit(ctx, name, counts, err)
		}
		if !ok {
			continue
		}
		rows := importer.ExtractGmuds(g, period.Year, period.Month)
		gmuds = append(gmuds, rows...)
		counts[name] = len(rows)
	}
	if err := s.Store.ReplaceGmuds(ctx, gmuds); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	}

	if g, ok, err := wb.Grid(importer.SheetPlanning); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	} else if ok {
		rows := importer.ExtractPlanning(g)
		if err := s.Store.ReplacePlanning(ctx, rows); err != nil {
			return counts, s.audit(ctx, name, counts, err)
		}
		counts[importer.SheetPlanning] = len(rows)
	}

	if g, ok, err := wb.Grid(importer.SheetPagonxt); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	} else if ok {
		rows := importer.ExtractPagonxt(g)
		if err := s.Store.ReplacePagonxt(ctx, rows); err != nil {
			return counts, s.audit(ctx, name, counts, err)
		}
		counts[importer.SheetPagonxt] = len(rows)
	}

	return counts, s.audit(ctx, name, counts, nil)
}

// RunCmdbFull ingests the business-unit CMDB workbook. Both unit sheets
// land in one table, replaced together so a reimport cannot leave one unit
// from the old file next to the other from the new one.
func (s *ImportService) RunCmdbFull(ctx context.Context, path, name string) (map[string]int, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, s.audit(ctx, name, nil, err)
	}
	defer wb.Close()

	counts := map[string]int{}
	var all []models.CmdbFullRecord

	if g, ok, err := wb.Grid(importer.SheetCmdbFullGetnet); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	} else if ok {
		rows := importer.ExtractCmdbFullGetnet(g)
		all = append(all, rows...)
		counts[importer.SheetCmdbFullGetnet] = len(rows)
	}
	if g, ok, err := wb.Grid(importer.SheetCmdbFullLatam); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	} else if ok {
		rows := importer.ExtractCmdbFullLatam(g)
		all = append(all, rows...)
		counts[importer.SheetCmdbFullLatam] = len(rows)
	}

	if err := s.Store.ReplaceCmdbFull(ctx, all); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	}
	return counts, s.audit(ctx, name, counts, nil)
}

// RunQualys ingests a scan export. source is "PagoNxt" or "GetNet"; each
// has its own sheet name and column block. Findings are upserted (first
// writer wins), detections always appended.
func (s *ImportService) RunQualys(ctx context.Context, path, name, source string) (map[string]int, error) {
	wb, err := workbook.Open(path)
	if err != nil {
		return nil, s.audit(ctx, name, nil, err)
	}
	defer wb.Close()

	sheet := importer.SheetQualysPagonxt
	extract := importer.ExtractQualysPagonxt
	if source == "GetNet" {
		sheet = importer.SheetQualysGetnet
		extract = importer.ExtractQualysGetnet
	}

	counts := map[string]int{}
	g, ok, err := wb.Grid(sheet)
	if err != nil {
		return counts, s.audit(ctx, name, counts, err)
	}
	if !ok {
		err := fmt.Errorf("sheet %q not found in %s", sheet, name)
		return counts, s.audit(ctx, name, counts, err)
	}

	records := extract(g)
	vulns := make([]models.Vulnerability, 0, len(records))
	detections := make([]models.Detection, 0, len(records))
	for _, r := range records {
		vulns = append(vulns, r.Vulnerability)
		detections = append(detections, r.Detection)
	}

	inserted, err := s.Store.UpsertVulnerabilities(ctx, vulns)
	if err != nil {
		return counts, s.audit(ctx, name, counts, err)
	}
	if err := s.Store.InsertDetections(ctx, detections); err != nil {
		return counts, s.audit(ctx, name, counts, err)
	}
	counts[sheet] = len(detections)
	counts["new_vulnerabilities"] = inserted
	return counts, s.audit(ctx, name, counts, nil)
}

// audit writes the import_log row for a finished run and passes runErr
// back through, so call sites can `return counts, s.audit(...)`. name is
// the upload's original file name, not the temp path the pipeline read.
// Only sources that contributed records are listed.
func (s *ImportService) audit(ctx context.Context, name string, counts map[string]int, runErr error) error {
	run := models.ImportRun{
		ImportedAt: time.Now(),
		SourceFile: name,
		Status:     "success",
	}
	var sheets []string
	for sheet, n := range counts {
		if n == 0 {
			continue
		}
		sheets = append(sheets, sheet)
		run.TotalRecords += n
	}
	sort.Strings(sheets)
	run.SheetsImported = strings.Join(sheets, ", ")
	if runErr != nil {
		run.Status = "error"
		run.Message = runErr.Error()
	}
	if err := s.Store.LogImport(ctx, run); err != nil {
		s.Log.Error("import audit write failed", "error", err)
	}
	return runErr
}

// jobRegistry keeps job state in memory. Finished jobs older than ttl are
// evicted lazily on the next create or lookup.
type jobRegistry struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func newJobRegistry(ttl time.Duration) *jobRegistry {
	return &jobRegistry{jobs: map[string]*Job{}, ttl: ttl}
}

func (r *jobRegistry) create(kind ImportKind) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked()
	id := uuid.NewString()
	r.jobs[id] = &Job{ID: id, Kind: kind, Status: JobPending, CreatedAt: time.Now()}
	return id
}

func (r *jobRegistry) update(id string, status JobStatus, message string, counts map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return
	}
	job.Status = status
	job.Message = message
	job.Counts = counts
	if status == JobSuccess || status == JobError {
		now := time.Now()
		job.FinishedAt = &now
	}
}

func (r *jobRegistry) get(id string) (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked()
	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (r *jobRegistry) evictLocked() {
	cutoff := time.Now().Add(-r.ttl)
	for id, job := range r.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(r.jobs, id)
		}
	}
}
