package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasePayType records which side of the policy produced base pay.
type BasePayType string

const (
	BaseHourly         BasePayType = "hourly"
	BaseCommission     BasePayType = "commission"
	BaseHourlyOnly     BasePayType = "hourly_only"
	BasePureCommission BasePayType = "pure_commission"
)

// ServiceLine is one transaction as seen by the pay calculation.
type ServiceLine struct {
	Date         time.Time
	Client       string
	Service      string
	SalePrice    decimal.Decimal
	AssumedPrice decimal.Decimal // price-table value used when a refill posts at zero
	Commission   decimal.Decimal
	Adding       decimal.Decimal
	Tip          decimal.Decimal
	Discount     decimal.Decimal
}

// WeeklyPayResult is the pay breakdown for one employee for one week.
// Total = BasePay + Addings + Tips - DiscountDeduction.
type WeeklyPayResult struct {
	Hours             decimal.Decimal
	HourlyPay         decimal.Decimal
	CommissionPay     decimal.Decimal
	BasePay           decimal.Decimal
	BasePayType       BasePayType
	Services          []ServiceLine
	ServiceCount      int
	Addings           decimal.Decimal
	Tips              decimal.Decimal
	DiscountDeduction decimal.Decimal
	Total             decimal.Decimal
}

// EmployeePayrollResult is the bi-weekly result for one employee.
type EmployeePayrollResult struct {
	Employee         Employee
	Week1            WeeklyPayResult
	Week2            WeeklyPayResult
	Adjustments      []Adjustment
	TotalAdjustments decimal.Decimal
	FinalPay         decimal.Decimal
	TotalHours       decimal.Decimal
}

// PayrollSummary holds fleet-wide column sums for a run.
type PayrollSummary struct {
	EmployeeCount           int
	TotalHours              decimal.Decimal
	TotalPayroll            decimal.Decimal
	TotalCommission         decimal.Decimal
	TotalHourly             decimal.Decimal
	TotalTips               decimal.Decimal
	TotalAddings            decimal.Decimal
	TotalDiscountDeductions decimal.Decimal
	TotalAdjustments        decimal.Decimal
}
