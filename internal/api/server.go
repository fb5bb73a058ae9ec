// Package api exposes the HTTP surface: auth, listings, imports, exports
// and the workbook writeback.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"oraex/internal/auth"
	"oraex/internal/db"
	"oraex/internal/middleware"
	"oraex/internal/services"
	"oraex/internal/store"
)

// Server wires handlers to the store, the session manager and the import
// pipelines.
type Server struct {
	Database *db.Database
	Store    *store.Store
	Sessions *auth.Manager
	Import   *services.ImportService
	Sheet    *services.SheetService
	Log      *slog.Logger
}

// NewEngine builds the gin engine with all routes registered.
func (s *Server) NewEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.CORS())
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches handlers to the gin engine.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/logout", s.handleLogout)
	}

	secured := router.Group("/api")
	secured.Use(middleware.RequireSession(s.Sessions))
	{
		secured.GET("/dashboard", s.handleDashboard)
		secured.GET("/filters", s.handleFilters)

		secured.GET("/servers", s.handleListServers)
		secured.GET("/servers/:hostname", s.handleServerDetail)
		secured.GET("/hostnames", s.handleSearchHostnames)

		secured.GET("/gmuds", s.handleListGmuds)
		secured.POST("/gmuds", s.handleCreateGmud)
		secured.PUT("/gmuds/:id", s.handleUpdateGmud)
		secured.DELETE("/gmuds/:id", s.handleDeleteGmud)
		secured.POST("/gmuds/generate-title", s.handleGenerateTitle)

		secured.GET("/cmdb", s.handleListCmdb)
		secured.GET("/cmdb-full", s.handleListCmdbFull)
		secured.GET("/cmdb-full/stats", s.handleCmdbFullStats)
		secured.GET("/cmdb-full/filters", s.handleCmdbFullFilters)
		secured.GET("/pagonxt", s.handleListPagonxt)
		secured.GET("/planning", s.handleListPlanning)

		secured.GET("/vulnerabilities", s.handleListVulnerabilities)
		secured.GET("/vulnerabilities/stats", s.handleVulnerabilityStats)

		secured.GET("/export/:table", s.handleExport)

		secured.POST("/import", s.handleSubmitImport)
		secured.GET("/import/:id", s.handleImportStatus)
		secured.GET("/imports", s.handleRecentImports)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	payload := gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)}
	if s.Database != nil {
		if err := s.Database.SQL.PingContext(c.Request.Context()); err != nil {
			payload["database"] = gin.H{"status": "unavailable", "error": err.Error()}
		} else {
			payload["database"] = gin.H{"status": "ok"}
		}
	}
	c.JSON(http.StatusOK, payload)
}

// listOptions reads the shared search/pagination query parameters.
func listOptions(c *gin.Context) store.ListOptions {
	return store.ListOptions{
		Search:   c.Query("search"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "per_page"),
	}
}

func intQuery(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

// listPayload is the envelope every paginated listing responds with.
func listPayload(data any, total int, o store.ListOptions) gin.H {
	page := o.Page
	if page <= 0 {
		page = 1
	}
	perPage := o.PageSize
	if perPage <= 0 {
		perPage = 50
	}
	return gin.H{"data": data, "total": total, "page": page, "per_page": perPage}
}

func serverError(c *gin.Context, log *slog.Logger, err error) {
	log.Error("request failed", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
