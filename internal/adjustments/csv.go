package adjustments

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

// Header is the CSV header for adjustments.csv.
const Header = "id,employee_id,type,amount,date,notes"

const (
	numFields   = 6
	colID       = 0
	colEmployee = 1
	colType     = 2
	colAmount   = 3
	colDate     = 4
	colNotes    = 5
)

// Read reads all adjustments from an adjustments.csv reader.
func Read(r io.Reader) ([]model.Adjustment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading adjustments CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var adjs []model.Adjustment
	for i, rec := range records[1:] {
		a, err := Unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		adjs = append(adjs, a)
	}
	return adjs, nil
}

// Write writes adjustments (including header).
func Write(w io.Writer, adjs []model.Adjustment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range adjs {
		if err := cw.Write(Marshal(a)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Marshal converts an Adjustment to a CSV row.
func Marshal(a model.Adjustment) []string {
	row := make([]string, numFields)
	row[colID] = a.ID
	row[colEmployee] = a.EmployeeID
	row[colType] = string(a.Type)
	row[colAmount] = a.Amount.StringFixed(2)
	if !a.Date.IsZero() {
		row[colDate] = a.Date.Format(period.DateFormat)
	}
	row[colNotes] = a.Notes
	return row
}

// Unmarshal converts a CSV row to an Adjustment.
func Unmarshal(record []string) (model.Adjustment, error) {
	if len(record) != numFields {
		return model.Adjustment{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Adjustment{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var date time.Time
	if record[colDate] != "" {
		date, err = time.Parse(period.DateFormat, record[colDate])
		if err != nil {
			return model.Adjustment{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
		}
	}

	return model.Adjustment{
		ID:         record[colID],
		EmployeeID: record[colEmployee],
		Type:       model.AdjustmentType(record[colType]),
		Amount:     amount,
		Date:       date,
		Notes:      record[colNotes],
	}, nil
}
