package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
)

// WriteTable prints a plain-text summary for a terminal.
func WriteTable(w io.Writer, res *payroll.Result) error {
	fmt.Fprintf(w, "Pay period %s\n\n", res.Period)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ID\tEmployee\tStructure\tHours\tWeek 1\tWeek 2\tAdjust.\tFinal Pay\t")
	for _, r := range res.Employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Employee.ID, r.Employee.DisplayName(), r.Employee.PayStructure,
			r.TotalHours.StringFixed(2), money(r.Week1.Total), money(r.Week2.Total),
			money(r.TotalAdjustments), money(r.FinalPay))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	s := res.Summary
	fmt.Fprintf(w, "\n%d employees, %s hours\n", s.EmployeeCount, s.TotalHours.StringFixed(2))
	fmt.Fprintf(w, "Commission %s  Hourly %s  Tips %s  Addings %s  Discounts %s  Adjustments %s\n",
		money(s.TotalCommission), money(s.TotalHourly), money(s.TotalTips),
		money(s.TotalAddings), money(s.TotalDiscountDeductions), money(s.TotalAdjustments))
	_, err := fmt.Fprintf(w, "Total payroll %s\n", money(s.TotalPayroll))
	return err
}
