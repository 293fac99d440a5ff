package service

import (
	"testing"
	"time"

	"github.com/synchub/attendance/internal/core/domain"
)

func at(date string, hour, minute int) *time.Time {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	t := d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t
}

func closedRow(identityID uint, name, date string, inH, inM, outH, outM int) domain.AttendanceEvent {
	return domain.AttendanceEvent{
		IdentityID: identityID,
		Identifier: name,
		Name:       name,
		Date:       date,
		TimeIn:     at(date, inH, inM),
		TimeOut:    at(date, outH, outM),
	}
}

func openRow(identityID uint, name, date string, inH, inM int) domain.AttendanceEvent {
	return domain.AttendanceEvent{
		IdentityID: identityID,
		Identifier: name,
		Name:       name,
		Date:       date,
		TimeIn:     at(date, inH, inM),
	}
}

func TestAggregate_DurationOfSingleRow(t *testing.T) {
	r := Aggregate([]domain.AttendanceEvent{closedRow(1, "Jon", "2025-10-15", 8, 0, 17, 30)})

	if len(r.Officers) != 1 || r.Officers[0].TotalHours != 9.5 {
		t.Fatalf("expected 9.50 hours, got %+v", r.Officers)
	}
	if r.Daily[0].TotalHours != 9.5 || r.LongestSession.Hours != 9.5 {
		t.Errorf("unexpected daily/longest: %+v / %+v", r.Daily, r.LongestSession)
	}
	if r.MostActive != "Jon" || r.AverageHours != 9.5 || r.ActiveDays != 1 {
		t.Errorf("unexpected derived metrics: %+v", r)
	}
}

func TestAggregate_RoundsToTwoDecimals(t *testing.T) {
	// 8:00 → 8:20 = 0.3333… h
	r := Aggregate([]domain.AttendanceEvent{closedRow(1, "Jon", "2025-10-15", 8, 0, 8, 20)})

	if r.Officers[0].TotalHours != 0.33 {
		t.Errorf("expected 0.33, got %v", r.Officers[0].TotalHours)
	}
}

func TestAggregate_OpenRowsCountPresenceOnly(t *testing.T) {
	r := Aggregate([]domain.AttendanceEvent{
		closedRow(1, "Jon", "2025-10-15", 8, 0, 12, 0),
		openRow(2, "Arya", "2025-10-15", 9, 0),
	})

	if r.Daily[0].Officers != 2 {
		t.Errorf("expected both officers present, got %d", r.Daily[0].Officers)
	}
	if r.Daily[0].TotalHours != 4 || r.TotalHours != 4 {
		t.Errorf("open row must not add hours: %+v", r.Daily[0])
	}
	if len(r.Officers) != 1 || r.Officers[0].Name != "Jon" {
		t.Errorf("open-only officer must not appear in officer summary: %+v", r.Officers)
	}
	if r.AverageHours != 4 {
		t.Errorf("expected average 4, got %v", r.AverageHours)
	}
	if r.TotalOfficers != 2 {
		t.Errorf("expected 2 distinct officers present, got %d", r.TotalOfficers)
	}
}

func TestAggregate_OnlyOpenRows(t *testing.T) {
	r := Aggregate([]domain.AttendanceEvent{openRow(1, "Jon", "2025-10-15", 8, 0)})

	if r.MostActive != domain.NotAvailable {
		t.Errorf("expected N/A, got %q", r.MostActive)
	}
	if r.AverageHours != 0 || r.TotalHours != 0 || r.ActiveDays != 0 {
		t.Errorf("expected zero metrics, got %+v", r)
	}
	if r.MostActiveDate != nil {
		t.Errorf("expected no most active date, got %v", *r.MostActiveDate)
	}
	if len(r.Daily) != 1 || r.Daily[0].Officers != 1 {
		t.Errorf("expected the date to be listed with one present officer: %+v", r.Daily)
	}
}

func TestAggregate_Empty(t *testing.T) {
	r := Aggregate(nil)

	if r.MostActive != domain.NotAvailable || r.AverageHours != 0 || len(r.Top3) != 0 {
		t.Errorf("unexpected empty report: %+v", r)
	}
	if r.Daily == nil || r.Officers == nil {
		t.Errorf("expected empty, non-nil summaries")
	}
}

func TestAggregate_StableSortOnTies(t *testing.T) {
	r := Aggregate([]domain.AttendanceEvent{
		closedRow(1, "Jon", "2025-10-15", 8, 0, 10, 0),   // 2h
		closedRow(2, "Arya", "2025-10-15", 8, 0, 12, 0),  // 4h
		closedRow(3, "Robb", "2025-10-15", 8, 0, 10, 0),  // 2h
		closedRow(4, "Sansa", "2025-10-15", 8, 0, 11, 0), // 3h
		closedRow(5, "Bran", "2025-10-15", 8, 0, 10, 0),  // 2h
	})

	want := []string{"Arya", "Sansa", "Jon", "Robb", "Bran"}
	for i, name := range want {
		if r.Officers[i].Name != name {
			t.Fatalf("position %d: expected %s, got %+v", i, name, r.Officers)
		}
	}
	if len(r.Top3) != 3 || r.Top3[2].Name != "Jon" {
		t.Errorf("unexpected top3: %+v", r.Top3)
	}
}

func TestAggregate_SumsAcrossRows(t *testing.T) {
	r := Aggregate([]domain.AttendanceEvent{
		closedRow(1, "Jon", "2025-10-15", 8, 0, 9, 0),
		closedRow(1, "Jon", "2025-10-15", 13, 0, 15, 30),
		closedRow(1, "Jon", "2025-10-30", 8, 0, 16, 0),
		closedRow(2, "Arya", "2025-10-30", 8, 0, 18, 0),
	})

	if r.Officers[0].Name != "Jon" || r.Officers[0].TotalHours != 11.5 {
		t.Errorf("expected Jon with 11.5h first, got %+v", r.Officers)
	}
	if r.Daily[0].Officers != 1 || r.Daily[0].TotalHours != 3.5 {
		t.Errorf("unexpected first day: %+v", r.Daily[0])
	}
	if r.Daily[1].Officers != 2 || r.Daily[1].TotalHours != 18 {
		t.Errorf("unexpected second day: %+v", r.Daily[1])
	}
	if r.LongestSession.Name != "Arya" || r.LongestSession.Hours != 10 {
		t.Errorf("unexpected longest session: %+v", r.LongestSession)
	}
	if r.AverageHours != 10.75 {
		t.Errorf("expected average 10.75, got %v", r.AverageHours)
	}
	if r.MostActiveDate == nil || *r.MostActiveDate != "2025-10-30" {
		t.Errorf("unexpected most active date: %v", r.MostActiveDate)
	}
	if r.ActiveDays != 2 {
		t.Errorf("expected 2 active days, got %d", r.ActiveDays)
	}
}

func TestAggregate_MostActiveDateTieTakesEarliest(t *testing.T) {
	// Input deliberately not in date order.
	r := Aggregate([]domain.AttendanceEvent{
		closedRow(1, "Jon", "2025-11-02", 8, 0, 12, 0),
		closedRow(2, "Arya", "2025-10-15", 8, 0, 12, 0),
		closedRow(3, "Robb", "2025-10-30", 8, 0, 10, 0),
	})

	if r.MostActiveDate == nil || *r.MostActiveDate != "2025-10-15" {
		t.Fatalf("expected earliest tied date 2025-10-15, got %v", r.MostActiveDate)
	}
	if r.Daily[0].Date != "2025-10-15" || r.Daily[2].Date != "2025-11-02" {
		t.Errorf("expected daily summary ascending by date: %+v", r.Daily)
	}
}

func TestAggregate_NegativeDurationClampedToZero(t *testing.T) {
	r := Aggregate([]domain.AttendanceEvent{closedRow(1, "Jon", "2025-10-15", 17, 0, 8, 0)})

	if r.TotalHours != 0 || r.AverageHours != 0 {
		t.Errorf("expected zero hours for skewed row, got %+v", r)
	}
	if len(r.Officers) != 1 || r.Officers[0].TotalHours != 0 {
		t.Errorf("closed row still lists the officer: %+v", r.Officers)
	}
}
