package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// Aggregate combines an employee's two weeks with the adjustments that belong
// to them. adjustments may hold entries for other employees; they are ignored.
func Aggregate(emp model.Employee, week1, week2 model.WeeklyPayResult, adjustments []model.Adjustment) model.EmployeePayrollResult {
	res := model.EmployeePayrollResult{
		Employee:         emp,
		Week1:            week1,
		Week2:            week2,
		TotalAdjustments: decimal.Zero,
	}
	for _, a := range adjustments {
		if a.EmployeeID != emp.ID {
			continue
		}
		res.Adjustments = append(res.Adjustments, a)
		res.TotalAdjustments = res.TotalAdjustments.Add(a.Signed())
	}
	res.FinalPay = week1.Total.Add(week2.Total).Add(res.TotalAdjustments)
	res.TotalHours = week1.Hours.Add(week2.Hours)
	return res
}

// Summarize sums results across the fleet.
func Summarize(results []model.EmployeePayrollResult) model.PayrollSummary {
	s := model.PayrollSummary{
		EmployeeCount:           len(results),
		TotalHours:              decimal.Zero,
		TotalPayroll:            decimal.Zero,
		TotalCommission:         decimal.Zero,
		TotalHourly:             decimal.Zero,
		TotalTips:               decimal.Zero,
		TotalAddings:            decimal.Zero,
		TotalDiscountDeductions: decimal.Zero,
		TotalAdjustments:        decimal.Zero,
	}
	for _, r := range results {
		s.TotalHours = s.TotalHours.Add(r.TotalHours)
		s.TotalPayroll = s.TotalPayroll.Add(r.FinalPay)
		s.TotalAdjustments = s.TotalAdjustments.Add(r.TotalAdjustments)
		for _, w := range []model.WeeklyPayResult{r.Week1, r.Week2} {
			s.TotalCommission = s.TotalCommission.Add(w.CommissionPay)
			s.TotalHourly = s.TotalHourly.Add(w.HourlyPay)
			s.TotalTips = s.TotalTips.Add(w.Tips)
			s.TotalAddings = s.TotalAddings.Add(w.Addings)
			s.TotalDiscountDeductions = s.TotalDiscountDeductions.Add(w.DiscountDeduction)
		}
	}
	return s
}
