package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"oraex/internal/services"
)

// sourceKinds maps the upload form's source field to a pipeline.
var sourceKinds = map[string]services.ImportKind{
	"consolidation":  services.KindConsolidation,
	"cmdb-full":      services.KindCmdbFull,
	"qualys-pagonxt": services.KindQualysPagonxt,
	"qualys-getnet":  services.KindQualysGetnet,
}

const maxUploadBytes = 100 * 1024 * 1024

func (s *Server) handleSubmitImport(c *gin.Context) {
	kind, ok := sourceKinds[c.PostForm("source")]
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown_source"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported_file"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file_too_large"})
		return
	}

	tmp, err := os.CreateTemp("", "oraex-import-*"+ext)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	tmp.Close()
	if err := c.SaveUploadedFile(fileHeader, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		serverError(c, s.Log, err)
		return
	}

	id := s.Import.Submit(kind, tmp.Name(), filepath.Base(fileHeader.Filename))
	c.JSON(http.StatusAccepted, gin.H{"job_id": id})
}

func (s *Server) handleImportStatus(c *gin.Context) {
	job, ok := s.Import.Job(c.Param("id"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "job_not_found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleRecentImports(c *gin.Context) {
	limit := intQuery(c, "limit")
	runs, err := s.Store.RecentImports(c.Request.Context(), limit)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imports": runs})
}
