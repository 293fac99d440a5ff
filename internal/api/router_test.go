package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/api/handler"
	"github.com/synchub/attendance/internal/api/view"
	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
	"github.com/synchub/attendance/internal/core/service"
)

const testSecret = "router-secret"

type stubScan struct{}

func (stubScan) Scan(_ context.Context, identifier string) (*ports.ScanResult, error) {
	if identifier == "2310170" {
		return &ports.ScanResult{Kind: domain.LedgerTimeIn, Message: "Time in recorded for Jon Snow",
			Identity: domain.Identity{ID: 1, Identifier: identifier, Name: "Jon Snow"}}, nil
	}
	return nil, domain.ErrIdentityNotFound
}

type stubReports struct {
	calls int
	err   error
}

func (s *stubReports) TimeLog(context.Context, ports.LedgerFilter) ([]ports.TimeLogEntry, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []ports.TimeLogEntry{{AttendanceEvent: domain.AttendanceEvent{ID: 1, Name: "Jon Snow", Date: "2025-10-15"}}}, nil
}

func (s *stubReports) Build(context.Context, ports.LedgerFilter) (*domain.Report, error) {
	s.calls++
	return &domain.Report{MostActive: domain.NotAvailable}, s.err
}

func (s *stubReports) DeleteLog(context.Context, uint) error { s.calls++; return s.err }

func newTestRouter(t *testing.T, reports ports.ReportService) *echo.Echo {
	t.Helper()
	renderer, err := view.New(time.UTC)
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	return NewRouter(Dependencies{
		Log:       zerolog.Nop(),
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		Policy:    service.NewRolePolicy(domain.DefaultAuthorizedGroups...),
		Renderer:  renderer,
		Scan:      stubScan{},
		Reports:   reports,
		Readiness: []handler.DependencyCheck{{Name: "database", Ping: func(context.Context) error { return nil }}},
		Registry:  prometheus.NewRegistry(),
	})
}

func tokenFor(t *testing.T, groups ...string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            "5",
		"student_number": "2310175",
		"groups":         groups,
		"exp":            time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func do(e *echo.Echo, method, target, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_TimeLogDeniedWithoutData(t *testing.T) {
	reports := &stubReports{}
	e := newTestRouter(t, reports)

	for _, token := range []string{"", tokenFor(t, domain.GroupOfficer)} {
		rec := do(e, http.MethodGet, "/rfid_login/time_log/", token, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "Jon Snow") {
			t.Fatalf("denied response leaked ledger data: %s", rec.Body.String())
		}
	}
	if reports.calls != 0 {
		t.Fatalf("report service must not be reached, got %d calls", reports.calls)
	}
}

func TestRouter_TimeLogAllowedForStaff(t *testing.T) {
	reports := &stubReports{}
	e := newTestRouter(t, reports)

	rec := do(e, http.MethodGet, "/rfid_login/time_log/", tokenFor(t, domain.GroupStaff), "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Jon Snow") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ValidationErrorIs400WithFields(t *testing.T) {
	reports := &stubReports{err: domain.NewValidationError("start_date", "must not be after end_date")}
	e := newTestRouter(t, reports)

	rec := do(e, http.MethodGet, "/rfid_login/time_reports/?start_date=2025-11-01&end_date=2025-10-01",
		tokenFor(t, domain.GroupAdmin), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Fields["start_date"] == "" {
		t.Fatalf("expected field error, got %+v", resp)
	}
}

func TestRouter_ScanIsPublic(t *testing.T) {
	e := newTestRouter(t, &stubReports{})

	if rec := do(e, http.MethodPost, "/rfid_login/", "", `{"identifier":"2310170"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec := do(e, http.MethodPost, "/rfid_login/", "", `{"identifier":"0000000"}`)
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Invalid identifier") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProfileRequiresToken(t *testing.T) {
	e := newTestRouter(t, &stubReports{})

	if rec := do(e, http.MethodGet, "/profile/", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_HTMLDenialPage(t *testing.T) {
	e := newTestRouter(t, &stubReports{})

	req := httptest.NewRequest(http.MethodGet, "/rfid_login/time_reports/", nil)
	req.Header.Set(echo.HeaderAccept, "text/html")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden || !strings.Contains(rec.Header().Get(echo.HeaderContentType), "text/html") {
		t.Fatalf("expected rendered denial page, got %d %q", rec.Code, rec.Header().Get(echo.HeaderContentType))
	}
}

func TestRouter_HealthAndUnknownRoute(t *testing.T) {
	e := newTestRouter(t, &stubReports{})

	if rec := do(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
	rec := do(e, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("expected json error envelope, got %s", rec.Body.String())
	}
}
