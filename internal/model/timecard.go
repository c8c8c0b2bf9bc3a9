package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is one shift parsed from a timecard row.
type TimeEntry struct {
	Date    time.Time // zero if the row had no usable date
	TimeIn  string    // "HH:MM", empty if absent
	TimeOut string    // "HH:MM", empty if absent
	Hours   decimal.Decimal
}

// TimecardSheet holds the entries parsed from one worksheet (one employee).
type TimecardSheet struct {
	SheetName   string
	Name        string
	TimeEntries []TimeEntry
	TotalHours  decimal.Decimal
}

// Timecard is a parsed workbook.
type Timecard struct {
	FileName  string
	Employees []TimecardSheet
	ParsedAt  time.Time
}

// WeekHours are an employee's hours for one week of a pay period.
type WeekHours struct {
	Hours decimal.Decimal
	Days  []TimeEntry
}

// PeriodHours splits an employee's hours across the two weeks of a pay period.
type PeriodHours struct {
	Week1 WeekHours
	Week2 WeekHours
}
