package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

func seededLedger() *stubLedger {
	l := &stubLedger{}
	rows := []domain.AttendanceEvent{
		closedRow(1, "2310170", "2025-10-15", 8, 0, 17, 0),
		closedRow(2, "2310177", "2025-10-30", 9, 0, 17, 30),
		closedRow(3, "2310178", "2025-10-30", 8, 0, 12, 0),
		openRow(4, "2310179", "2025-10-30", 10, 0),
		closedRow(5, "2310192", "2025-11-02", 8, 0, 20, 0),
	}
	for i := range rows {
		rows[i].ID = uint(i + 1)
	}
	l.rows = rows
	return l
}

func TestReportService_RangeFiltering(t *testing.T) {
	svc := NewReportService(seededLedger(), zerolog.Nop())

	r, err := svc.Build(context.Background(), ports.LedgerFilter{StartDate: "2025-10-16", EndDate: "2025-11-01"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(r.Daily) != 1 || r.Daily[0].Date != "2025-10-30" {
		t.Fatalf("expected only 2025-10-30, got %+v", r.Daily)
	}
	if r.Daily[0].Officers != 3 {
		t.Errorf("expected 3 officers present on 2025-10-30, got %d", r.Daily[0].Officers)
	}
	if len(r.Officers) != 2 {
		t.Fatalf("expected 2 officers with hours, got %+v", r.Officers)
	}
	for _, o := range r.Officers {
		if o.Identifier != "2310177" && o.Identifier != "2310178" {
			t.Errorf("officer outside range leaked into summary: %+v", o)
		}
	}
}

func TestReportService_OpenBounds(t *testing.T) {
	svc := NewReportService(seededLedger(), zerolog.Nop())

	r, err := svc.Build(context.Background(), ports.LedgerFilter{StartDate: "2025-10-30"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(r.Daily) != 2 {
		t.Errorf("expected 2 dates from 2025-10-30 onward, got %+v", r.Daily)
	}
	if r.MostActive != "2310192" {
		t.Errorf("expected 12h officer to be most active, got %s", r.MostActive)
	}
}

func TestReportService_InvalidDates(t *testing.T) {
	svc := NewReportService(seededLedger(), zerolog.Nop())

	cases := []ports.LedgerFilter{
		{StartDate: "15-10-2025"},
		{EndDate: "2025-13-01"},
		{StartDate: "2025-11-01", EndDate: "2025-10-01"},
	}
	for _, f := range cases {
		_, err := svc.Build(context.Background(), f)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%+v: expected validation error, got %v", f, err)
		}
	}
}

func TestReportService_TimeLogNewestFirstWithDurations(t *testing.T) {
	svc := NewReportService(seededLedger(), zerolog.Nop())

	entries, err := svc.TimeLog(context.Background(), ports.LedgerFilter{})
	if err != nil {
		t.Fatalf("time log: %v", err)
	}
	if len(entries) != 5 || entries[0].Date != "2025-11-02" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[0].Hours == nil || *entries[0].Hours != 12 {
		t.Errorf("expected 12h on newest row, got %v", entries[0].Hours)
	}
	if entries[1].Hours != nil {
		t.Errorf("expected nil duration for open row, got %v", *entries[1].Hours)
	}
}

func TestReportService_StorageFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewReportService(&stubLedger{listErr: boom}, zerolog.Nop())

	if _, err := svc.Build(context.Background(), ports.LedgerFilter{}); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestReportService_DeleteLog(t *testing.T) {
	l := seededLedger()
	svc := NewReportService(l, zerolog.Nop())

	if err := svc.DeleteLog(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(l.rows) != 4 {
		t.Errorf("expected 4 rows left, got %d", len(l.rows))
	}
	if err := svc.DeleteLog(context.Background(), 99); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestRolePolicy(t *testing.T) {
	policy := NewRolePolicy(domain.DefaultAuthorizedGroups...)

	cases := []struct {
		name string
		p    domain.Principal
		ok   bool
	}{
		{"superuser", domain.Principal{Superuser: true}, true},
		{"admin", domain.Principal{Groups: []string{"admin"}}, true},
		{"staff", domain.Principal{Groups: []string{"Officer", "Staff"}}, true},
		{"executive", domain.Principal{Groups: []string{"Executive Officer"}}, true},
		{"officer", domain.Principal{Groups: []string{"Officer"}}, false},
		{"anonymous", domain.Principal{}, false},
	}
	for _, tc := range cases {
		err := policy.Decide(tc.p)
		if tc.ok && err != nil {
			t.Errorf("%s: expected allow, got %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, domain.ErrAccessDenied) {
			t.Errorf("%s: expected ErrAccessDenied, got %v", tc.name, err)
		}
	}
}
