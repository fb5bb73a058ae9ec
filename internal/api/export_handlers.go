package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"oraex/internal/store"
)

// handleExport streams a table as CSV. Rows are fetched page by page so an
// export never materializes the whole table in memory.
func (s *Server) handleExport(c *gin.Context) {
	table := c.Param("table")
	writeRows, ok := exporters[table]
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown_table"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
	w := csv.NewWriter(c.Writer)
	if err := writeRows(c, s, w); err != nil {
		s.Log.Error("csv export failed", "table", table, "error", err)
		return
	}
	w.Flush()
}

type exportFunc func(*gin.Context, *Server, *csv.Writer) error

var exporters = map[string]exportFunc{
	"servers":   exportServers,
	"gmuds":     exportGmuds,
	"cmdb":      exportCmdb,
	"cmdb-full": exportCmdbFull,
}

const exportPageSize = 500

func exportServers(c *gin.Context, s *Server, w *csv.Writer) error {
	if err := w.Write([]string{"environment", "primary_hostname", "standby_hostname", "psu_version",
		"contact", "team", "product", "day", "start", "end", "observation", "total_servers"}); err != nil {
		return err
	}
	for page := 1; ; page++ {
		rows, total, err := s.Store.ListServers(c.Request.Context(), store.ServerFilter{
			ListOptions: store.ListOptions{Page: page, PageSize: exportPageSize},
		})
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := w.Write([]string{r.Environment, r.PrimaryHostname, r.StandbyHostname, r.PSUVersion,
				r.PrimaryContact, r.ResponsibleTeam, r.SystemProduct, r.ApplicationDay,
				r.StartTime, r.EndTime, r.Observation, strconv.Itoa(r.TotalServers)}); err != nil {
				return err
			}
		}
		if page*exportPageSize >= total || len(rows) == 0 {
			return nil
		}
	}
}

func exportGmuds(c *gin.Context, s *Server, w *csv.Writer) error {
	if err := w.Write([]string{"year", "month", "client", "db_type", "environment", "status",
		"start_date", "end_date", "change_number", "title", "assigned_to", "observation"}); err != nil {
		return err
	}
	for page := 1; ; page++ {
		rows, total, err := s.Store.ListGmuds(c.Request.Context(), store.GmudFilter{
			ListOptions: store.ListOptions{Page: page, PageSize: exportPageSize},
		})
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := w.Write([]string{strconv.Itoa(r.Year), strconv.Itoa(r.Month), r.Client, r.DBType,
				r.Environment, r.Status, r.StartDate, r.EndDate, r.ChangeNumber, r.Title,
				r.AssignedTo, r.Observation}); err != nil {
				return err
			}
		}
		if page*exportPageSize >= total || len(rows) == 0 {
			return nil
		}
	}
}

func exportCmdb(c *gin.Context, s *Server, w *csv.Writer) error {
	if err := w.Write([]string{"environment", "name", "contingency", "db_type", "db_version",
		"status", "system_product", "os", "team", "ip_address"}); err != nil {
		return err
	}
	for page := 1; ; page++ {
		rows, total, err := s.Store.ListCmdb(c.Request.Context(), store.CmdbFilter{
			ListOptions: store.ListOptions{Page: page, PageSize: exportPageSize},
		})
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := w.Write([]string{r.Environment, r.Name, r.ContingencyName, r.DBType, r.DBVersion,
				r.Status, r.SystemProduct, r.OS, r.ResponsibleTeam, r.IPAddress}); err != nil {
				return err
			}
		}
		if page*exportPageSize >= total || len(rows) == 0 {
			return nil
		}
	}
}

func exportCmdbFull(c *gin.Context, s *Server, w *csv.Writer) error {
	if err := w.Write([]string{"client", "hostname", "contingency", "db_type", "db_version", "status",
		"environment", "os", "team", "zone", "country", "ip_service", "oracle_psu", "source_sheet"}); err != nil {
		return err
	}
	for page := 1; ; page++ {
		rows, total, err := s.Store.ListCmdbFull(c.Request.Context(), store.CmdbFullFilter{
			ListOptions: store.ListOptions{Page: page, PageSize: exportPageSize},
		})
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := w.Write([]string{r.Client, r.Hostname, r.Contingency, r.DBType, r.DBVersion, r.Status,
				r.Environment, r.OS, r.ResponsibleTeam, r.Zone, r.Country, r.IPService,
				r.OraclePSU, r.SourceSheet}); err != nil {
				return err
			}
		}
		if page*exportPageSize >= total || len(rows) == 0 {
			return nil
		}
	}
}
