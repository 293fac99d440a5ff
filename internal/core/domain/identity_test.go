package domain

import (
	"errors"
	"testing"
	"time"
)

func TestIdentifierPolicy_Normalize(t *testing.T) {
	cases := []struct {
		policy IdentifierPolicy
		raw    string
		want   string
		ok     bool
	}{
		{DefaultIdentifierPolicy, "2310170", "2310170", true},
		{DefaultIdentifierPolicy, "  2310170\t", "2310170", true},
		{DefaultIdentifierPolicy, "231017", "", false},
		{DefaultIdentifierPolicy, "23101700", "", false},
		{DefaultIdentifierPolicy, "2310I70", "", false},
		{DefaultIdentifierPolicy, "", "", false},
		{IdentifierPolicy{}, "RFID2310170", "RFID2310170", true},
		{IdentifierPolicy{Numeric: true}, "12", "12", true},
		{IdentifierPolicy{}, string(make([]byte, 51)), "", false},
	}
	for _, tc := range cases {
		got, err := tc.policy.Normalize(tc.raw)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("%+v %q: expected %q, got %q (%v)", tc.policy, tc.raw, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrMalformedIdentifier) {
			t.Errorf("%+v %q: expected ErrMalformedIdentifier, got %v", tc.policy, tc.raw, err)
		}
	}
}

func TestAttendanceEvent_Duration(t *testing.T) {
	in := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	out := time.Date(2025, 10, 15, 17, 30, 0, 0, time.UTC)

	closed := AttendanceEvent{TimeIn: &in, TimeOut: &out}
	if !closed.IsClosed() || closed.IsOpen() {
		t.Fatalf("expected closed row")
	}
	if closed.Hours() != 9.5 {
		t.Errorf("expected 9.5h, got %v", closed.Hours())
	}

	open := AttendanceEvent{TimeIn: &in}
	if !open.IsOpen() || open.Duration() != 0 {
		t.Errorf("expected open row with zero duration")
	}

	skewed := AttendanceEvent{TimeIn: &out, TimeOut: &in}
	if skewed.Duration() != 0 {
		t.Errorf("expected negative duration to clamp to zero")
	}
}

func TestCalendarDate(t *testing.T) {
	ts := time.Date(2025, 10, 30, 23, 30, 0, 0, time.UTC)

	if got := CalendarDate(ts, time.UTC); got != "2025-10-30" {
		t.Errorf("expected 2025-10-30, got %s", got)
	}
	if got := CalendarDate(ts, time.FixedZone("PHT", 8*3600)); got != "2025-10-31" {
		t.Errorf("expected 2025-10-31, got %s", got)
	}
}

func TestRoundHours(t *testing.T) {
	if got := RoundHours(1.0 / 3.0); got != 0.33 {
		t.Errorf("expected 0.33, got %v", got)
	}
	if got := RoundHours(7.25); got != 7.25 {
		t.Errorf("expected 7.25, got %v", got)
	}
}
