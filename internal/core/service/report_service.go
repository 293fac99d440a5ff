package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// ReportService serves time logs and aggregated reports. It never writes to
// the ledger except for explicit administrative deletion.
type ReportService struct {
	ledger ports.LedgerRepository
	log    zerolog.Logger
}

func NewReportService(ledger ports.LedgerRepository, log zerolog.Logger) *ReportService {
	return &ReportService{ledger: ledger, log: log}
}

// TimeLog returns the filtered rows newest first, each with its duration.
func (s *ReportService) TimeLog(ctx context.Context, filter ports.LedgerFilter) ([]ports.TimeLogEntry, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	events, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("time log: %w", err)
	}

	entries := make([]ports.TimeLogEntry, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		entry := ports.TimeLogEntry{AttendanceEvent: ev}
		if ev.IsClosed() {
			h := domain.RoundHours(ev.Hours())
			entry.Hours = &h
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Build aggregates the filtered rows.
func (s *ReportService) Build(ctx context.Context, filter ports.LedgerFilter) (*domain.Report, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	events, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	report := Aggregate(events)
	s.log.Debug().
		Int("rows", len(events)).
		Str("start_date", filter.StartDate).
		Str("end_date", filter.EndDate).
		Msg("report built")
	return &report, nil
}

// DeleteLog removes a single ledger row.
func (s *ReportService) DeleteLog(ctx context.Context, id uint) error {
	if err := s.ledger.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	s.log.Info().Uint("log_id", id).Msg("time log deleted")
	return nil
}

func validateFilter(f ports.LedgerFilter) error {
	var start, end time.Time
	var err error
	if f.StartDate != "" {
		if start, err = time.Parse(domain.DateLayout, f.StartDate); err != nil {
			return domain.NewValidationError("start_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if f.EndDate != "" {
		if end, err = time.Parse(domain.DateLayout, f.EndDate); err != nil {
			return domain.NewValidationError("end_date", "must be a date in YYYY-MM-DD format")
		}
	}
	if f.StartDate != "" && f.EndDate != "" && end.Before(start) {
		return domain.NewValidationError("end_date", "must not be before start_date")
	}
	return nil
}
