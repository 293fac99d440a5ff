package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// ScanLocker serializes scans of the same identifier (Redis in production).
// Acquire returns domain.ErrScanInProgress when another scan holds the lock.
type ScanLocker interface {
	Acquire(ctx context.Context, identifier string) (release func(), err error)
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

type noopNotifier struct{}

func (noopNotifier) Notify(domain.LedgerEvent) {}

// ScanService implements the attendance toggle.
type ScanService struct {
	resolver IdentityResolver
	ledger   ports.LedgerRepository
	locker   ScanLocker
	notifier ports.LedgerNotifier
	policy   domain.IdentifierPolicy
	now      func() time.Time
	loc      *time.Location
	log      zerolog.Logger
}

// ScanOption customizes a ScanService.
type ScanOption func(*ScanService)

func WithLocker(l ScanLocker) ScanOption { return func(s *ScanService) { s.locker = l } }

func WithNotifier(n ports.LedgerNotifier) ScanOption { return func(s *ScanService) { s.notifier = n } }

func WithClock(now func() time.Time) ScanOption { return func(s *ScanService) { s.now = now } }

// WithLocation sets the time zone that defines "today".
func WithLocation(loc *time.Location) ScanOption { return func(s *ScanService) { s.loc = loc } }

func NewScanService(
	resolver IdentityResolver,
	ledger ports.LedgerRepository,
	policy domain.IdentifierPolicy,
	log zerolog.Logger,
	opts ...ScanOption,
) *ScanService {
	s := &ScanService{
		resolver: resolver,
		ledger:   ledger,
		locker:   noopLocker{},
		notifier: noopNotifier{},
		policy:   policy,
		now:      time.Now,
		loc:      time.Local,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan records a time-in when the identity has no open row today and a
// time-out otherwise.
func (s *ScanService) Scan(ctx context.Context, raw string) (*ports.ScanResult, error) {
	// 1. Format check happens before any lookup or write.
	identifier, err := s.policy.Normalize(raw)
	if err != nil {
		return nil, err
	}

	// 2. Per-identifier critical section around decide-and-write.
	release, err := s.locker.Acquire(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrScanInProgress) {
			return nil, err
		}
		s.log.Warn().Err(err).Str("identifier", identifier).Msg("scan lock unavailable, relying on storage constraint")
		release = func() {}
	}
	defer release()

	// 3. Resolve.
	identity, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	// 4. Decide and write.
	now := s.now()
	today := domain.CalendarDate(now, s.loc)

	var (
		kind  domain.LedgerEventKind
		logID uint
	)
	open, err := s.ledger.FindOpen(ctx, identity.ID, today)
	switch {
	case err == nil:
		if err := s.ledger.Close(ctx, open.ID, now); err != nil {
			return nil, fmt.Errorf("scan: close event: %w", err)
		}
		kind, logID = domain.LedgerTimeOut, open.ID
	case errors.Is(err, domain.ErrNoOpenEvent):
		event := &domain.AttendanceEvent{IdentityID: identity.ID, Date: today, TimeIn: &now}
		if err := s.ledger.Open(ctx, event); err != nil {
			return nil, fmt.Errorf("scan: open event: %w", err)
		}
		kind, logID = domain.LedgerTimeIn, event.ID
	default:
		return nil, fmt.Errorf("scan: find open event: %w", err)
	}

	// 5. The write already succeeded; a failed read-back only loses the display row.
	last, err := s.ledger.Latest(ctx, identity.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("identifier", identifier).Msg("failed to load latest log")
		last = nil
	}

	// 6. Best-effort sync.
	s.notifier.Notify(domain.LedgerEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		LogID:      logID,
		Identifier: identity.Identifier,
		Name:       identity.Name,
		Date:       today,
		At:         now,
	})

	s.log.Info().
		Str("identifier", identity.Identifier).
		Str("kind", string(kind)).
		Str("date", today).
		Msg("scan recorded")

	return &ports.ScanResult{
		Kind:     kind,
		Message:  scanMessage(kind, identity.Name),
		Identity: *identity,
		LastLog:  last,
	}, nil
}

func scanMessage(kind domain.LedgerEventKind, name string) string {
	if kind == domain.LedgerTimeOut {
		return "Time out recorded for " + name
	}
	return "Time in recorded for " + name
}
