package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"oraex/internal/services"
	"oraex/internal/store"
)

func (s *Server) handleListGmuds(c *gin.Context) {
	filter := store.GmudFilter{
		Year:        intQuery(c, "year"),
		Month:       intQuery(c, "month"),
		Status:      c.Query("status"),
		Environment: c.Query("environment"),
		Client:      c.Query("client"),
		AssignedTo:  c.Query("assigned_to"),
		ListOptions: listOptions(c),
	}
	rows, total, err := s.Store.ListGmuds(c.Request.Context(), filter)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, listPayload(rows, total, filter.ListOptions))
}

type createGmudRequest struct {
	Client        string `json:"client"`
	DBType        string `json:"db_type"`
	Environment   string `json:"environment"`
	Status        string `json:"status"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	ChangeNumber  string `json:"change_number"`
	Title         string `json:"title"`
	AssignedTo    string `json:"assigned_to"`
	Observation   string `json:"observation"`
	Vulnerability string `json:"vulnerability"`
	OpenedBy      string `json:"opened_by"`
}

// formLayouts are the timestamp forms the dashboard posts for new tickets.
var formLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

func parseFormTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range formLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// handleCreateGmud appends the ticket to the monthly sheet of its start
// date. The database copy appears on the next consolidation import; the
// workbook stays the system of record for ticket creation.
func (s *Server) handleCreateGmud(c *gin.Context) {
	var req createGmudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	if req.Title == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "title_required"})
		return
	}
	start, err := parseFormTime(req.StartDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_start_date"})
		return
	}
	end, err := parseFormTime(req.EndDate)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_end_date"})
		return
	}

	sheet, row, err := s.Sheet.AppendGmud(services.GmudWriteRequest{
		Client:        req.Client,
		DBType:        req.DBType,
		Environment:   req.Environment,
		Status:        req.Status,
		StartDate:     start,
		EndDate:       end,
		ChangeNumber:  req.ChangeNumber,
		Title:         req.Title,
		AssignedTo:    req.AssignedTo,
		Observation:   req.Observation,
		Vulnerability: req.Vulnerability,
		OpenedBy:      req.OpenedBy,
	})
	if err != nil {
		s.Log.Error("gmud writeback failed", "error", err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sheet": sheet, "row": row})
}

type updateGmudRequest struct {
	Status      string `json:"status"`
	Observation string `json:"observation"`
}

func (s *Server) handleUpdateGmud(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}
	var req updateGmudRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "status_required"})
		return
	}

	err = s.Store.UpdateGmudStatus(c.Request.Context(), id, req.Status, req.Observation)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "gmud_not_found"})
		return
	}
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	gmud, err := s.Store.GetGmud(c.Request.Context(), id)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, gmud)
}

func (s *Server) handleDeleteGmud(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}
	err = s.Store.DeleteGmud(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "gmud_not_found"})
		return
	}
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type generateTitleRequest struct {
	Hostnames  string `json:"hostnames"`
	PSUVersion string `json:"psu_version"`
	Type       string `json:"type"`
	Priority   string `json:"priority"`
}

func (s *Server) handleGenerateTitle(c *gin.Context) {
	var req generateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	title := services.GenerateGmudTitle(req.Type, req.Priority, req.PSUVersion, req.Hostnames)
	c.JSON(http.StatusOK, gin.H{"title": title})
}
