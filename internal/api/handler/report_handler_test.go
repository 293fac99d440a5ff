package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

type stubReportService struct {
	filters []ports.LedgerFilter
	logs    []ports.TimeLogEntry
	report  *domain.Report
	deleted []uint
	err     error
}

func (s *stubReportService) TimeLog(_ context.Context, f ports.LedgerFilter) ([]ports.TimeLogEntry, error) {
	s.filters = append(s.filters, f)
	return s.logs, s.err
}

func (s *stubReportService) Build(_ context.Context, f ports.LedgerFilter) (*domain.Report, error) {
	s.filters = append(s.filters, f)
	return s.report, s.err
}

func (s *stubReportService) DeleteLog(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func sampleReport() *domain.Report {
	return &domain.Report{
		Officers: []domain.OfficerSummary{
			{IdentityID: 1, Identifier: "2310170", Name: "Jon Snow", TotalHours: 9.5},
			{IdentityID: 2, Identifier: "2310171", Name: "Arya Stark", TotalHours: 4},
		},
		MostActive:    "Jon Snow",
		TotalHours:    13.5,
		TotalOfficers: 2,
	}
}

func TestReportHandler_TimeLog_Filters(t *testing.T) {
	stub := &stubReportService{logs: []ports.TimeLogEntry{
		{AttendanceEvent: domain.AttendanceEvent{ID: 1, Name: "Jon Snow", Date: "2025-10-15"}},
	}}
	h := NewReportHandler(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/rfid_login/time_log/?start_date=2025-10-01&end_date=%202025-10-31&officer_id=2310170", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.TimeLog(newTestEcho().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := ports.LedgerFilter{StartDate: "2025-10-01", EndDate: "2025-10-31", Identifier: "2310170"}
	if len(stub.filters) != 1 || stub.filters[0] != want {
		t.Fatalf("unexpected filter: %+v", stub.filters)
	}

	var resp timeLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Logs) != 1 || resp.Logs[0].Name != "Jon Snow" {
		t.Fatalf("unexpected logs: %+v", resp.Logs)
	}
}

func TestReportHandler_TimeLog_InvalidRange(t *testing.T) {
	stub := &stubReportService{err: domain.NewValidationError("start_date", "must not be after end_date")}
	h := NewReportHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/rfid_login/time_log/?start_date=2025-11-01&end_date=2025-10-01", nil)
	err := h.TimeLog(newTestEcho().NewContext(req, httptest.NewRecorder()))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestReportHandler_Reports_JSON(t *testing.T) {
	h := NewReportHandler(&stubReportService{report: sampleReport()})

	req := httptest.NewRequest(http.MethodGet, "/rfid_login/time_reports/", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Reports(newTestEcho().NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp reportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Report == nil || resp.Report.MostActive != "Jon Snow" || resp.Report.TotalOfficers != 2 {
		t.Fatalf("unexpected report: %+v", resp.Report)
	}
}

func TestReportHandler_ExportCSV(t *testing.T) {
	h := NewReportHandler(&stubReportService{report: sampleReport()})

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet,
		"/rfid_login/time_reports/export/csv?start_date=2025-10-01&end_date=2025-10-31", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("format")
	c.SetParamValues("CSV")

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, "text/csv") {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `attachment; filename="time_report_2025-10-01_2025-10-31.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 || lines[0] != "Officer Name,Total Hours" || lines[1] != "Jon Snow,9.50" || lines[2] != "Arya Stark,4.00" {
		t.Fatalf("unexpected csv:\n%s", rec.Body.String())
	}
}

func TestReportHandler_ExportUnknownFormat(t *testing.T) {
	stub := &stubReportService{report: sampleReport()}
	h := NewReportHandler(stub)

	c := newTestEcho().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("format")
	c.SetParamValues("docx")

	err := h.Export(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if len(stub.filters) != 0 {
		t.Fatalf("report must not be built for an unknown format")
	}
}

func TestReportHandler_DeleteLog(t *testing.T) {
	stub := &stubReportService{}
	h := NewReportHandler(stub)

	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.DeleteLog(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || len(stub.deleted) != 1 || stub.deleted[0] != 42 {
		t.Fatalf("unexpected result: %d %v", rec.Code, stub.deleted)
	}

	c = newTestEcho().NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")
	var he *echo.HTTPError
	if err := h.DeleteLog(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %v", err)
	}
}
