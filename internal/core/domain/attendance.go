package domain

import (
	"math"
	"time"
)

// DateLayout is the calendar-date format used by the ledger and the API.
const DateLayout = "2006-01-02"

// AttendanceEvent is a single time-in/time-out row of the ledger. It belongs
// to exactly one identity.
type AttendanceEvent struct {
	ID         uint       `json:"id"`
	IdentityID uint       `json:"identity_id"`
	Identifier string     `json:"identifier,omitempty"`
	Name       string     `json:"name,omitempty"`
	Date       string     `json:"date"`
	TimeIn     *time.Time `json:"time_in"`
	TimeOut    *time.Time `json:"time_out"`
}

// IsOpen reports whether the row has a time-in but no time-out yet.
func (e AttendanceEvent) IsOpen() bool {
	return e.TimeIn != nil && e.TimeOut == nil
}

// IsClosed reports whether both timestamps are present.
func (e AttendanceEvent) IsClosed() bool {
	return e.TimeIn != nil && e.TimeOut != nil
}

// Duration is time_out - time_in for closed rows, zero otherwise.
// A time_out earlier than time_in (clock skew) yields zero.
func (e AttendanceEvent) Duration() time.Duration {
	if !e.IsClosed() {
		return 0
	}
	d := e.TimeOut.Sub(*e.TimeIn)
	if d < 0 {
		return 0
	}
	return d
}

// Hours returns Duration in hours without rounding.
func (e AttendanceEvent) Hours() float64 {
	return e.Duration().Hours()
}

// RoundHours rounds to two decimal places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// CalendarDate formats t as a ledger date in loc.
func CalendarDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
