package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType is the direction of a manual adjustment.
type AdjustmentType string

const (
	AdjustmentBonus     AdjustmentType = "bonus"
	AdjustmentDeduction AdjustmentType = "deduction"
)

// Adjustment is a manual correction entered by an operator. Amount is stored
// as an unsigned magnitude.
type Adjustment struct {
	ID         string
	EmployeeID string
	Type       AdjustmentType
	Amount     decimal.Decimal
	Date       time.Time
	Notes      string
}

// Signed returns Amount for bonuses and -Amount for deductions.
// Unknown types contribute zero.
func (a Adjustment) Signed() decimal.Decimal {
	switch a.Type {
	case AdjustmentBonus:
		return a.Amount.Abs()
	case AdjustmentDeduction:
		return a.Amount.Abs().Neg()
	}
	return decimal.Zero
}
