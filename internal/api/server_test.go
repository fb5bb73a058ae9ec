package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oraex/internal/auth"
	"oraex/internal/config"
	"oraex/internal/db"
	"oraex/internal/models"
	"oraex/internal/services"
	"oraex/internal/store"
)

type testEnv struct {
	server *Server
	engine *gin.Engine
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.Open(config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	st := store.New(database)
	require.NoError(t, st.EnsureAdmin(t.Context(), "admin", "admin123"))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	workbookPath := filepath.Join(dir, "consolidation.xlsx")
	writeMonthlySheet(t, workbookPath)

	srv := &Server{
		Database: database,
		Store:    st,
		Sessions: auth.NewManager(time.Hour),
		Import:   services.NewImportService(st, log),
		Sheet: services.NewSheetService(config.Config{
			ConsolidationPath: workbookPath,
			BackupDir:         filepath.Join(dir, "backups"),
		}, log),
		Log: log,
	}
	env := &testEnv{server: srv, engine: srv.NewEngine()}
	env.token = env.login(t, "admin", "admin123")
	return env
}

func writeMonthlySheet(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "MARÇO-25")
	require.NoError(t, f.SetCellValue("MARÇO-25", "A1", "Cliente"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Session struct {
			Token string `json:"token"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Session.Token)
	return resp.Session.Token
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	w := e.doJSON(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.doJSON(t, http.MethodGet, "/api/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.doJSON(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.doJSON(t, http.MethodGet, "/api/dashboard", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.doJSON(t, http.MethodPost, "/api/auth/logout", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.doJSON(t, http.MethodGet, "/api/dashboard", e.token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGmudListAndUpdate(t *testing.T) {
	e := newTestEnv(t)
	ctx := t.Context()

	require.NoError(t, e.server.Store.ReplaceGmuds(ctx, []models.Gmud{
		{Year: 2025, Month: 3, ChangeNumber: "CHG001", Status: "PROGRAMADA"},
		{Year: 2025, Month: 4, ChangeNumber: "CHG002", Status: "NOVO"},
	}))

	w := e.doJSON(t, http.MethodGet, "/api/gmuds?year=2025&month=3", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data  []models.Gmud `json:"data"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	id := list.Data[0].ID

	w = e.doJSON(t, http.MethodPut, "/api/gmuds/"+itoa(id), e.token,
		map[string]string{"status": "ENCERRADA", "observation": "ok"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Gmud
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "ENCERRADA", updated.Status)

	w = e.doJSON(t, http.MethodDelete, "/api/gmuds/"+itoa(id), e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.doJSON(t, http.MethodDelete, "/api/gmuds/"+itoa(id), e.token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateGmudWritesWorkbook(t *testing.T) {
	e := newTestEnv(t)

	w := e.doJSON(t, http.MethodPost, "/api/gmuds", e.token, map[string]string{
		"title":         "Atualização PSU 19.29",
		"change_number": "CHG0099",
		"start_date":    "2025-03-08T22:00",
		"end_date":      "2025-03-09T02:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Sheet string `json:"sheet"`
		Row   int    `json:"row"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "MARÇO-25", resp.Sheet)
	require.Equal(t, 2, resp.Row)

	// A start date outside every mapped month is rejected.
	w = e.doJSON(t, http.MethodPost, "/api/gmuds", e.token, map[string]string{
		"title":      "fora do calendário",
		"start_date": "2031-06-01T10:00",
		"end_date":   "2031-06-01T12:00",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateTitleEndpoint(t *testing.T) {
	e := newTestEnv(t)
	w := e.doJSON(t, http.MethodPost, "/api/gmuds/generate-title", e.token, map[string]string{
		"hostnames": "dbsrv01", "psu_version": "19.29",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Atualização PSU 19.29")
	require.Contains(t, w.Body.String(), "dbsrv01")
}

func TestImportUploadLifecycle(t *testing.T) {
	e := newTestEnv(t)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "GetNet - Oracle Databases")
	require.NoError(t, f.SetCellValue("GetNet - Oracle Databases", "A1", "Entorno"))
	require.NoError(t, f.SetCellValue("GetNet - Oracle Databases", "A2", "PRODUCAO"))
	require.NoError(t, f.SetCellValue("GetNet - Oracle Databases", "B2", "dbsrv01"))
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("source", "consolidation"))
	part, err := mw.CreateFormFile("file", "upload.xlsx")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var submit struct {
		JobID string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submit))
	require.NotEmpty(t, submit.JobID)

	deadline := time.Now().Add(10 * time.Second)
	for {
		w = e.doJSON(t, http.MethodGet, "/api/import/"+submit.JobID, e.token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var job services.Job
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		if job.Status == services.JobSuccess {
			break
		}
		require.NotEqual(t, services.JobError, job.Status, "import failed: %s", job.Message)
		require.True(t, time.Now().Before(deadline), "import did not finish in time")
		time.Sleep(20 * time.Millisecond)
	}

	w = e.doJSON(t, http.MethodGet, "/api/servers", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "dbsrv01")

	w = e.doJSON(t, http.MethodGet, "/api/imports", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"success"`)
	// The audit records the uploaded name, not the server's temp path.
	require.Contains(t, w.Body.String(), `"source_file":"upload.xlsx"`)
	require.NotContains(t, w.Body.String(), "oraex-import-")

	w = e.doJSON(t, http.MethodGet, "/api/import/unknown-id", e.token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportRejectsBadUploads(t *testing.T) {
	e := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("source", "nonsense"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportServersCSV(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.server.Store.ReplaceServers(t.Context(), []models.Server{
		{Environment: "PRODUCAO", PrimaryHostname: "dbsrv01", TotalServers: 2},
	}))

	w := e.doJSON(t, http.MethodGet, "/api/export/servers", e.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "servers.csv")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "environment", records[0][0])
	require.Equal(t, "dbsrv01", records[1][1])

	w = e.doJSON(t, http.MethodGet, "/api/export/nope", e.token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
