package timecard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// hoursRow is one line of a manual hours file.
type hoursRow struct {
	EmployeeID string `csv:"employee_id"`
	Week1      string `csv:"week1"`
	Week2      string `csv:"week2"`
}

// ReadHours reads manually entered hours keyed by employee ID. Each row has
// employee_id, week1 and week2 columns; hours may be decimal ("7.5") or
// clock style ("7:30"). A blank cell is zero.
func ReadHours(r io.Reader) (map[string]model.PeriodHours, error) {
	var rows []*hoursRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading hours CSV: %w", err)
	}

	out := make(map[string]model.PeriodHours, len(rows))
	for i, row := range rows {
		id := strings.TrimSpace(row.EmployeeID)
		if id == "" {
			return nil, fmt.Errorf("row %d: employee_id is required", i+2)
		}
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("row %d: duplicate employee %s", i+2, id)
		}
		w1, err := manualHours(row.Week1)
		if err != nil {
			return nil, fmt.Errorf("row %d: week1: %w", i+2, err)
		}
		w2, err := manualHours(row.Week2)
		if err != nil {
			return nil, fmt.Errorf("row %d: week2: %w", i+2, err)
		}
		out[id] = model.PeriodHours{
			Week1: model.WeekHours{Hours: w1},
			Week2: model.WeekHours{Hours: w2},
		}
	}
	return out, nil
}

// ReadHoursFile reads a manual hours CSV from disk.
func ReadHoursFile(path string) (map[string]model.PeriodHours, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening hours file: %w", err)
	}
	defer f.Close()
	return ReadHours(f)
}

func manualHours(v string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, nil
	}
	h, ok := parseHours(v)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid hours %q", v)
	}
	if h.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative hours %s", v)
	}
	return h.Round(2), nil
}
