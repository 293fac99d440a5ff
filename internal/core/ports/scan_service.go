package ports

import (
	"context"

	"github.com/synchub/attendance/internal/core/domain"
)

// ScanResult is returned by a successful scan.
type ScanResult struct {
	Kind     domain.LedgerEventKind
	Message  string
	Identity domain.Identity
	LastLog  *domain.AttendanceEvent
}

// ScanService toggles attendance state for a scanned identifier.
type ScanService interface {
	Scan(ctx context.Context, identifier string) (*ScanResult, error)
}
