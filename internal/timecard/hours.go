package timecard

import (
	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

// WeekHours splits a sheet's entries into the two weeks of p. Entries outside
// the period or without a date are dropped.
func WeekHours(sheet model.TimecardSheet, p period.Period) model.PeriodHours {
	var out model.PeriodHours
	w1, w2 := decimal.Zero, decimal.Zero
	for _, e := range sheet.TimeEntries {
		if e.Date.IsZero() {
			continue
		}
		switch p.Week(e.Date) {
		case 1:
			out.Week1.Days = append(out.Week1.Days, e)
			w1 = w1.Add(e.Hours)
		case 2:
			out.Week2.Days = append(out.Week2.Days, e)
			w2 = w2.Add(e.Hours)
		}
	}
	out.Week1.Hours = w1.Round(2)
	out.Week2.Hours = w2.Round(2)
	return out
}
