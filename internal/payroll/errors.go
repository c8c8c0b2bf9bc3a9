package payroll

import "errors"

var (
	ErrNoEmployees     = errors.New("no active employees to pay")
	ErrPeriodUnset     = errors.New("pay period start and end dates are required")
	ErrUnknownEmployee = errors.New("employee is not part of this payroll run")
)
