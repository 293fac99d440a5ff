package ports

import (
	"context"
	"time"

	"github.com/synchub/attendance/internal/core/domain"
)

// LedgerFilter narrows ledger reads. Empty dates are unbounded; both bounds
// are inclusive and use domain.DateLayout.
type LedgerFilter struct {
	StartDate  string
	EndDate    string
	Identifier string // optional: restrict to one officer
}

// LedgerRepository is the attendance ledger.
type LedgerRepository interface {
	// FindOpen returns the open row of identityID on date, or domain.ErrNoOpenEvent.
	FindOpen(ctx context.Context, identityID uint, date string) (*domain.AttendanceEvent, error)
	// Open inserts a new open row. A second open row for the same
	// (identity, date) is rejected with domain.ErrScanConflict.
	Open(ctx context.Context, event *domain.AttendanceEvent) error
	// Close sets time_out on a row that is still open. Returns
	// domain.ErrScanConflict when the row was already closed.
	Close(ctx context.Context, id uint, at time.Time) error
	// Latest returns the most recent row of identityID (date, then time_in, descending).
	Latest(ctx context.Context, identityID uint) (*domain.AttendanceEvent, error)
	// List returns matching rows ordered by date, time_in, id ascending, with
	// identity identifier and name populated.
	List(ctx context.Context, filter LedgerFilter) ([]domain.AttendanceEvent, error)
	Delete(ctx context.Context, id uint) error
}

// LedgerNotifier receives a best-effort notification after each successful
// ledger write. Implementations must not block the caller.
type LedgerNotifier interface {
	Notify(event domain.LedgerEvent)
}

// LedgerSink is the external backend ledger events are mirrored to.
type LedgerSink interface {
	Publish(ctx context.Context, event domain.LedgerEvent) error
}
