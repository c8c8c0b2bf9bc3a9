package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PayStructure selects how base pay is derived from hourly and commission pay.
type PayStructure string

const (
	PayCommissionVsHourly PayStructure = "commission_vs_hourly"
	PayPureCommission     PayStructure = "pure_commission"
	PayHourlyOnly         PayStructure = "hourly_only"
)

// Valid reports whether s is one of the known pay structures.
func (s PayStructure) Valid() bool {
	switch s {
	case PayCommissionVsHourly, PayPureCommission, PayHourlyOnly:
		return true
	}
	return false
}

// Employee is a service provider from the employee directory plus the pay
// policy applied to them for a run.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	FullName     string
	EmployeeType string
	Status       string

	PayStructure          PayStructure
	CommissionRate        decimal.Decimal // percent, 0-100
	HourlyRate            decimal.Decimal // per hour
	HasAddings            bool
	HasTips               bool
	HasDiscountDeductions bool
}

// DisplayName returns FullName, or the first/last name pair when FullName is empty.
func (e Employee) DisplayName() string {
	if e.FullName != "" {
		return e.FullName
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Validate checks the policy invariants for an employee.
func (e Employee) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("employee %q: missing id", e.DisplayName())
	}
	if !e.PayStructure.Valid() {
		return fmt.Errorf("employee %s: unknown pay structure %q", e.ID, e.PayStructure)
	}
	if e.CommissionRate.IsNegative() || e.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("employee %s: commission rate %s outside 0-100", e.ID, e.CommissionRate)
	}
	if e.HourlyRate.IsNegative() {
		return fmt.Errorf("employee %s: negative hourly rate %s", e.ID, e.HourlyRate)
	}
	if e.PayStructure == PayHourlyOnly && !e.CommissionRate.IsZero() {
		return fmt.Errorf("employee %s: hourly_only employees cannot carry a commission rate", e.ID)
	}
	return nil
}
