package service

import (
	"sort"

	"github.com/synchub/attendance/internal/core/domain"
)

type dayTotals struct {
	present map[uint]struct{}
	hours   float64
	closed  bool
}

type officerTotals struct {
	summary domain.OfficerSummary
	hours   float64
}

// Aggregate reduces ledger rows into the attendance report. Rows are
// expected in ledger order (date, time_in, id); that order defines the
// tie-break between officers with equal hours. Open rows count towards
// presence but never towards hours.
func Aggregate(events []domain.AttendanceEvent) domain.Report {
	days := make(map[string]*dayTotals)
	officers := make(map[uint]*officerTotals)
	var officerOrder []uint
	present := make(map[uint]struct{})

	var (
		longest    domain.Session
		longestRaw float64
		haveLong   bool
		totalRaw   float64
	)

	for _, ev := range events {
		day, ok := days[ev.Date]
		if !ok {
			day = &dayTotals{present: make(map[uint]struct{})}
			days[ev.Date] = day
		}
		day.present[ev.IdentityID] = struct{}{}
		present[ev.IdentityID] = struct{}{}

		if !ev.IsClosed() {
			continue
		}

		h := ev.Hours()
		day.hours += h
		day.closed = true
		totalRaw += h

		off, ok := officers[ev.IdentityID]
		if !ok {
			off = &officerTotals{summary: domain.OfficerSummary{
				IdentityID: ev.IdentityID,
				Identifier: ev.Identifier,
				Name:       ev.Name,
			}}
			officers[ev.IdentityID] = off
			officerOrder = append(officerOrder, ev.IdentityID)
		}
		off.hours += h

		if !haveLong || h > longestRaw {
			haveLong = true
			longestRaw = h
			longest = domain.Session{Identifier: ev.Identifier, Name: ev.Name, Date: ev.Date}
		}
	}

	report := domain.Report{
		Daily:         make([]domain.DailySummary, 0, len(days)),
		Officers:      make([]domain.OfficerSummary, 0, len(officerOrder)),
		MostActive:    domain.NotAvailable,
		TotalHours:    domain.RoundHours(totalRaw),
		TotalOfficers: len(present),
	}

	// Per-date summary, ascending. ISO dates sort lexically.
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var bestHours float64
	for _, d := range dates {
		day := days[d]
		hours := domain.RoundHours(day.hours)
		report.Daily = append(report.Daily, domain.DailySummary{
			Date:       d,
			Officers:   len(day.present),
			TotalHours: hours,
		})
		if !day.closed {
			continue
		}
		report.ActiveDays++
		// Strictly greater keeps the earliest date on ties.
		if report.MostActiveDate == nil || hours > bestHours {
			date := d
			report.MostActiveDate = &date
			bestHours = hours
		}
	}

	// Per-officer summary, descending by hours, stable on ties.
	var withHours int
	for _, id := range officerOrder {
		off := officers[id]
		off.summary.TotalHours = domain.RoundHours(off.hours)
		if off.hours > 0 {
			withHours++
		}
		report.Officers = append(report.Officers, off.summary)
	}
	sort.SliceStable(report.Officers, func(i, j int) bool {
		return report.Officers[i].TotalHours > report.Officers[j].TotalHours
	})

	if len(report.Officers) > 0 {
		report.MostActive = report.Officers[0].Name
	}
	top := min(3, len(report.Officers))
	report.Top3 = append([]domain.OfficerSummary(nil), report.Officers[:top]...)

	if haveLong {
		longest.Hours = domain.RoundHours(longestRaw)
		report.LongestSession = longest
	}
	if withHours > 0 {
		report.AverageHours = domain.RoundHours(totalRaw / float64(withHours))
	}

	return report
}
