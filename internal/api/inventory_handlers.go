package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"oraex/internal/store"
)

func (s *Server) handleDashboard(c *gin.Context) {
	stats, err := s.Store.GetDashboardStats(c.Request.Context())
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleFilters(c *gin.Context) {
	opts, err := s.Store.GetFilterOptions(c.Request.Context())
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (s *Server) handleListServers(c *gin.Context) {
	filter := store.ServerFilter{
		Environment: c.Query("environment"),
		PSUVersion:  c.Query("psu_version"),
		ListOptions: listOptions(c),
	}
	rows, total, err := s.Store.ListServers(c.Request.Context(), filter)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, filter.ListOptions))
}

func (s *Server) handleServerDetail(c *gin.Context) {
	detail, err := s.Store.GetServerDetail(c.Request.Context(), c.Param("hostname"))
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "server_not_found"})
		return
	}
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleSearchHostnames(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"hostnames": []string{}})
		return
	}
	names, err := s.Store.SearchHostnames(c.Request.Context(), q, 15)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"hostnames": names})
}

func (s *Server) handleListCmdb(c *gin.Context) {
	filter := store.CmdbFilter{
		Environment: c.Query("environment"),
		DBType:      c.Query("db_type"),
		Status:      c.Query("status"),
		ListOptions: listOptions(c),
	}
	rows, total, err := s.Store.ListCmdb(c.Request.Context(), filter)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, filter.ListOptions))
}

func (s *Server) handleListCmdbFull(c *gin.Context) {
	filter := store.CmdbFullFilter{
		Client:      c.Query("client"),
		Environment: c.Query("environment"),
		DBType:      c.Query("db_type"),
		Status:      c.Query("status"),
		Zone:        c.Query("zone"),
		Country:     c.Query("country"),
		ListOptions: listOptions(c),
	}
	rows, total, err := s.Store.ListCmdbFull(c.Request.Context(), filter)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, filter.ListOptions))
}

func (s *Server) handleCmdbFullStats(c *gin.Context) {
	stats, err := s.Store.GetCmdbFullStats(c.Request.Context())
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleCmdbFullFilters(c *gin.Context) {
	opts, err := s.Store.GetCmdbFullFilterOptions(c.Request.Context())
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (s *Server) handleListPagonxt(c *gin.Context) {
	filter := store.PagonxtFilter{
		Environment: c.Query("environment"),
		Zone:        c.Query("zone"),
		ListOptions: listOptions(c),
	}
	rows, total, err := s.Store.ListPagonxt(c.Request.Context(), filter)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, filter.ListOptions))
}

func (s *Server) handleListPlanning(c *gin.Context) {
	opts := listOptions(c)
	rows, total, err := s.Store.ListPlanning(c.Request.Context(), opts)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, opts))
}

func (s *Server) handleListVulnerabilities(c *gin.Context) {
	filter := store.DetectionFilter{
		Asset:       c.Query("asset"),
		Severity:    c.Query("severity"),
		Status:      c.Query("status"),
		Source:      c.Query("source"),
		QID:         int64(intQuery(c, "qid")),
		ListOptions: listOptions(c),
	}
	rows, total, err := s.Store.ListDetections(c.Request.Context(), filter)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, filter.ListOptions))
}

func (s *Server) handleVulnerabilityStats(c *gin.Context) {
	stats, err := s.Store.GetVulnerabilityStats(c.Request.Context())
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
