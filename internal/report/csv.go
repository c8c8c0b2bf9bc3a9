package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

// EmployeeRow is one employee's result flattened for export. Fields tagged
// xlsx:"number" are decimal strings written as numeric cells in workbooks.
type EmployeeRow struct {
	EmployeeID       string `csv:"employee_id"`
	Name             string `csv:"name"`
	PayStructure     string `csv:"pay_structure"`
	CommissionRate   string `csv:"commission_rate" xlsx:"number"`
	HourlyRate       string `csv:"hourly_rate" xlsx:"number"`
	Week1Hours       string `csv:"week1_hours" xlsx:"number"`
	Week1HourlyPay   string `csv:"week1_hourly_pay" xlsx:"number"`
	Week1Commission  string `csv:"week1_commission_pay" xlsx:"number"`
	Week1BasePay     string `csv:"week1_base_pay" xlsx:"number"`
	Week1BasePayType string `csv:"week1_base_pay_type"`
	Week1Services    int    `csv:"week1_service_count"`
	Week1Addings     string `csv:"week1_addings" xlsx:"number"`
	Week1Tips        string `csv:"week1_tips" xlsx:"number"`
	Week1Discount    string `csv:"week1_discount_deduction" xlsx:"number"`
	Week1Total       string `csv:"week1_total" xlsx:"number"`
	Week2Hours       string `csv:"week2_hours" xlsx:"number"`
	Week2HourlyPay   string `csv:"week2_hourly_pay" xlsx:"number"`
	Week2Commission  string `csv:"week2_commission_pay" xlsx:"number"`
	Week2BasePay     string `csv:"week2_base_pay" xlsx:"number"`
	Week2BasePayType string `csv:"week2_base_pay_type"`
	Week2Services    int    `csv:"week2_service_count"`
	Week2Addings     string `csv:"week2_addings" xlsx:"number"`
	Week2Tips        string `csv:"week2_tips" xlsx:"number"`
	Week2Discount    string `csv:"week2_discount_deduction" xlsx:"number"`
	Week2Total       string `csv:"week2_total" xlsx:"number"`
	Adjustments      int    `csv:"adjustment_count"`
	TotalAdjustments string `csv:"total_adjustments" xlsx:"number"`
	TotalHours       string `csv:"total_hours" xlsx:"number"`
	FinalPay         string `csv:"final_pay" xlsx:"number"`
}

// ServiceRow is one service line flattened for export.
type ServiceRow struct {
	EmployeeID   string `csv:"employee_id"`
	Name         string `csv:"name"`
	Week         int    `csv:"week"`
	Date         string `csv:"date"`
	Client       string `csv:"client"`
	Service      string `csv:"service"`
	SalePrice    string `csv:"sale_price" xlsx:"number"`
	AssumedPrice string `csv:"assumed_price" xlsx:"number"`
	Commission   string `csv:"commission" xlsx:"number"`
	Adding       string `csv:"adding" xlsx:"number"`
	Tip          string `csv:"tip" xlsx:"number"`
	Discount     string `csv:"discount" xlsx:"number"`
}

// EmployeeRows flattens every employee result.
func EmployeeRows(res *payroll.Result) []EmployeeRow {
	rows := make([]EmployeeRow, 0, len(res.Employees))
	for _, r := range res.Employees {
		e, w1, w2 := r.Employee, r.Week1, r.Week2
		rows = append(rows, EmployeeRow{
			EmployeeID:       e.ID,
			Name:             e.DisplayName(),
			PayStructure:     string(e.PayStructure),
			CommissionRate:   e.CommissionRate.String(),
			HourlyRate:       money(e.HourlyRate),
			Week1Hours:       w1.Hours.StringFixed(2),
			Week1HourlyPay:   money(w1.HourlyPay),
			Week1Commission:  money(w1.CommissionPay),
			Week1BasePay:     money(w1.BasePay),
			Week1BasePayType: string(w1.BasePayType),
			Week1Services:    w1.ServiceCount,
			Week1Addings:     money(w1.Addings),
			Week1Tips:        money(w1.Tips),
			Week1Discount:    money(w1.DiscountDeduction),
			Week1Total:       money(w1.Total),
			Week2Hours:       w2.Hours.StringFixed(2),
			Week2HourlyPay:   money(w2.HourlyPay),
			Week2Commission:  money(w2.CommissionPay),
			Week2BasePay:     money(w2.BasePay),
			Week2BasePayType: string(w2.BasePayType),
			Week2Services:    w2.ServiceCount,
			Week2Addings:     money(w2.Addings),
			Week2Tips:        money(w2.Tips),
			Week2Discount:    money(w2.DiscountDeduction),
			Week2Total:       money(w2.Total),
			Adjustments:      len(r.Adjustments),
			TotalAdjustments: money(r.TotalAdjustments),
			TotalHours:       r.TotalHours.StringFixed(2),
			FinalPay:         money(r.FinalPay),
		})
	}
	return rows
}

// ServiceRows flattens every service line of every employee, week 1 first.
func ServiceRows(res *payroll.Result) []ServiceRow {
	var rows []ServiceRow
	for _, r := range res.Employees {
		for week, w := range []model.WeeklyPayResult{r.Week1, r.Week2} {
			for _, s := range w.Services {
				row := ServiceRow{
					EmployeeID:   r.Employee.ID,
					Name:         r.Employee.DisplayName(),
					Week:         week + 1,
					Client:       s.Client,
					Service:      s.Service,
					SalePrice:    money(s.SalePrice),
					AssumedPrice: money(s.AssumedPrice),
					Commission:   money(s.Commission),
					Adding:       money(s.Adding),
					Tip:          money(s.Tip),
					Discount:     money(s.Discount),
				}
				if !s.Date.IsZero() {
					row.Date = s.Date.Format(period.DateFormat)
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// WriteCSV writes one row per employee.
func WriteCSV(w io.Writer, res *payroll.Result) error {
	rows := EmployeeRows(res)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing payroll CSV: %w", err)
	}
	return nil
}

// WriteServicesCSV writes one row per service line.
func WriteServicesCSV(w io.Writer, res *payroll.Result) error {
	rows := ServiceRows(res)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing services CSV: %w", err)
	}
	return nil
}
