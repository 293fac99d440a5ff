package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// TimeLogEntry is a ledger row with its derived duration. Hours is nil for open rows.
type TimeLogEntry struct {
	domain.AttendanceEvent
	Hours *float64 `json:"hours"`
}

// ReportService is the read side of the ledger.
type ReportService interface {
	TimeLog(ctx context.Context, filter LedgerFilter) ([]TimeLogEntry, error)
	Build(ctx context.Context, filter LedgerFilter) (*domain.Report, error)
	DeleteLog(ctx context.Context, id uint) error
}
