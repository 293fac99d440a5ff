package domain

import "time"

// LedgerEventKind tells which side of the toggle a scan recorded.
type LedgerEventKind string

const (
	LedgerTimeIn  LedgerEventKind = "time_in"
	LedgerTimeOut LedgerEventKind = "time_out"
)

// LedgerEvent is the notification emitted after a successful ledger write.
type LedgerEvent struct {
	EventID    string
	Kind       LedgerEventKind
	LogID      uint
	Identifier string
	Name       string
	Date       string
	At         time.Time
}
