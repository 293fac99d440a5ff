package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/api/metrics"
	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
	"github.com/synchub/attendance/internal/infrastructure/export"
)

// ReportHandler serves the admin views over the ledger.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type timeLogResponse struct {
	Filter ports.LedgerFilter   `json:"filter"`
	Logs   []ports.TimeLogEntry `json:"logs"`
}

type reportResponse struct {
	Filter ports.LedgerFilter `json:"filter"`
	Report *domain.Report     `json:"report"`
}

type reportPage struct {
	Filter ports.LedgerFilter
	Report *domain.Report
	Query  template.URL
}

// filterFromQuery reads start_date, end_date and officer_id.
func filterFromQuery(c echo.Context) ports.LedgerFilter {
	return ports.LedgerFilter{
		StartDate:  strings.TrimSpace(c.QueryParam("start_date")),
		EndDate:    strings.TrimSpace(c.QueryParam("end_date")),
		Identifier: strings.TrimSpace(c.QueryParam("officer_id")),
	}
}

func observe(view string, start time.Time) {
	metrics.ReportDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// TimeLog handles GET /rfid_login/time_log/.
//
// @Summary      List time-log rows
// @Tags         reports
// @Produce      html,json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Param        officer_id  query     string  false  "Officer identifier"
// @Success      200         {object}  timeLogResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /rfid_login/time_log/ [get]
func (h *ReportHandler) TimeLog(c echo.Context) error {
	defer observe("time_log", time.Now())

	filter := filterFromQuery(c)
	logs, err := h.service.TimeLog(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	resp := timeLogResponse{Filter: filter, Logs: logs}
	return respond(c, http.StatusOK, "time_log.html", resp, resp)
}

// DeleteLog handles DELETE /rfid_login/time_log/:id.
//
// @Summary      Delete a time-log row
// @Tags         reports
// @Security     BearerAuth
// @Param        id   path  int  true  "Row ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /rfid_login/time_log/{id} [delete]
func (h *ReportHandler) DeleteLog(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteLog(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reports handles GET /rfid_login/time_reports/.
//
// @Summary      Aggregated time report
// @Tags         reports
// @Produce      html,json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "YYYY-MM-DD"
// @Param        end_date    query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  reportResponse
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /rfid_login/time_reports/ [get]
func (h *ReportHandler) Reports(c echo.Context) error {
	defer observe("report", time.Now())

	filter := filterFromQuery(c)
	report, err := h.service.Build(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "reports.html",
		reportPage{Filter: filter, Report: report, Query: exportQuery(filter)},
		reportResponse{Filter: filter, Report: report})
}

// Export handles GET /rfid_login/time_reports/export/:format.
//
// @Summary      Download the per-officer report
// @Tags         reports
// @Produce      text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        format      path   string  true   "csv, xlsx or pdf"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Router       /rfid_login/time_reports/export/{format} [get]
func (h *ReportHandler) Export(c echo.Context) error {
	defer observe("export", time.Now())

	format := strings.ToLower(c.Param("format"))
	contentType, err := export.ContentType(format)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	filter := filterFromQuery(c)
	report, err := h.service.Build(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, reportTitle(filter), report.Officers); err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return fmt.Errorf("export %s: %w", format, err)
	}

	metrics.ExportsTotal.WithLabelValues(format).Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.Filename(format, filter.StartDate, filter.EndDate)))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func reportTitle(f ports.LedgerFilter) string {
	switch {
	case f.StartDate != "" && f.EndDate != "":
		return fmt.Sprintf("Time report %s to %s", f.StartDate, f.EndDate)
	case f.StartDate != "":
		return "Time report from " + f.StartDate
	case f.EndDate != "":
		return "Time report until " + f.EndDate
	}
	return "Time report"
}

func exportQuery(f ports.LedgerFilter) template.URL {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Identifier != "" {
		q.Set("officer_id", f.Identifier)
	}
	return template.URL(q.Encode())
}
