package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the civil-date layout used for period boundaries and IDs.
const DateFormat = "2006-01-02"

// WeekLength is the offset from the period start to the week 2 boundary.
const WeekLength = 7

// ErrInvalidPeriod is returned for unset or inverted pay periods.
var ErrInvalidPeriod = errors.New("invalid pay period")

// Period is an inclusive range of civil days split into two weeks.
type Period struct {
	Start time.Time
	End   time.Time
}

// New returns the period [start, end]. Both are truncated to UTC days.
func New(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidPeriod)
	}
	p := Period{Start: Day(start), End: Day(end)}
	if p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod, p.End.Format(DateFormat), p.Start.Format(DateFormat))
	}
	return p, nil
}

// Biweekly returns the 14-day period beginning at start.
func Biweekly(start time.Time) Period {
	s := Day(start)
	return Period{Start: s, End: s.AddDate(0, 0, 2*WeekLength-1)}
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Start.IsZero() || p.End.IsZero()
}

// Midpoint is the first day of week 2.
func (p Period) Midpoint() time.Time {
	return p.Start.AddDate(0, 0, WeekLength)
}

// Contains reports whether t falls on any day of the period.
func (p Period) Contains(t time.Time) bool {
	return p.Week(t) != 0
}

// Week returns 1 for [start, midpoint), 2 for [midpoint, end] and 0 otherwise.
// The end day is included in full.
func (p Period) Week(t time.Time) int {
	if t.IsZero() || p.IsZero() {
		return 0
	}
	d := Day(t)
	switch {
	case d.Before(p.Start):
		return 0
	case d.Before(p.Midpoint()):
		if d.After(p.End) {
			return 0
		}
		return 1
	case !d.After(p.End):
		return 2
	}
	return 0
}

// Days returns every calendar day in the period, in order.
func (p Period) Days() []time.Time {
	if p.IsZero() {
		return nil
	}
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ID returns an identifier like "2025-10-06_2025-10-19".
func (p Period) ID() string {
	return p.Start.Format(DateFormat) + "_" + p.End.Format(DateFormat)
}

// String formats the period for display.
func (p Period) String() string {
	return p.Start.Format(DateFormat) + " to " + p.End.Format(DateFormat)
}

// Parse parses an ID produced by Period.ID.
func Parse(id string) (Period, error) {
	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: malformed id %q", ErrInvalidPeriod, id)
	}
	start, err := time.Parse(DateFormat, parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("%w: parsing start in %q: %v", ErrInvalidPeriod, id, err)
	}
	end, err := time.Parse(DateFormat, parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: parsing end in %q: %v", ErrInvalidPeriod, id, err)
	}
	return New(start, end)
}

// ParseDates builds a period from "YYYY-MM-DD" strings. An empty end yields
// the 14-day period starting at start.
func ParseDates(start, end string) (Period, error) {
	if strings.TrimSpace(start) == "" {
		return Period{}, fmt.Errorf("%w: start date is required", ErrInvalidPeriod)
	}
	s, err := time.Parse(DateFormat, strings.TrimSpace(start))
	if err != nil {
		return Period{}, fmt.Errorf("%w: parsing start %q: %v", ErrInvalidPeriod, start, err)
	}
	if strings.TrimSpace(end) == "" {
		return Biweekly(s), nil
	}
	e, err := time.Parse(DateFormat, strings.TrimSpace(end))
	if err != nil {
		return Period{}, fmt.Errorf("%w: parsing end %q: %v", ErrInvalidPeriod, end, err)
	}
	return New(s, e)
}
