package adjustments

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

// ValidationError describes one problem with one adjustment.
type ValidationError struct {
	ID          string
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Description)
	}
	return fmt.Sprintf("[%s] %s: %s", e.ID, e.Field, e.Description)
}

// EmployeeChecker tests whether an employee ID is on the roster.
type EmployeeChecker interface {
	Exists(id string) bool
}

var hundred = decimal.NewFromInt(100)

// Validate checks each adjustment. Every adjustment needs a date so it
// belongs to exactly one pay period. A nil employees skips the roster check
// and a zero period skips the period check.
func Validate(adjs []model.Adjustment, employees EmployeeChecker, p period.Period) []ValidationError {
	var errs []ValidationError
	add := func(a model.Adjustment, field, format string, args ...any) {
		errs = append(errs, ValidationError{ID: a.ID, Field: field, Description: fmt.Sprintf(format, args...)})
	}

	for _, a := range adjs {
		switch {
		case strings.TrimSpace(a.EmployeeID) == "":
			add(a, "employee_id", "is required")
		case employees != nil && !employees.Exists(a.EmployeeID):
			add(a, "employee_id", "unknown employee %q", a.EmployeeID)
		}

		if a.Type != model.AdjustmentBonus && a.Type != model.AdjustmentDeduction {
			add(a, "type", "must be %q or %q, got %q", model.AdjustmentBonus, model.AdjustmentDeduction, a.Type)
		}

		if !a.Amount.IsPositive() {
			add(a, "amount", "must be greater than zero, got %s", a.Amount)
		} else if !a.Amount.Mul(hundred).Equal(a.Amount.Mul(hundred).Floor()) {
			add(a, "amount", "%s has more than 2 decimal places", a.Amount)
		}

		if a.Date.IsZero() {
			add(a, "date", "is required")
		} else if !p.IsZero() && !p.Contains(a.Date) {
			add(a, "date", "%s is outside pay period %s", a.Date.Format(period.DateFormat), p)
		}
	}
	return errs
}
