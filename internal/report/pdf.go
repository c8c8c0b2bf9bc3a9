package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
)

var employeeColumns = []struct {
	title string
	width float64
}{
	{"Employee", 46},
	{"Structure", 36},
	{"Hours", 18},
	{"Hourly", 24},
	{"Commission", 26},
	{"Addings", 22},
	{"Tips", 20},
	{"Discounts", 20},
	{"Adjust.", 20},
	{"Final Pay", 26},
}

// WritePDF renders the summary, an employee table, and a weekly breakdown
// per employee.
func WritePDF(w io.Writer, res *payroll.Result, title string) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Pay period: %s", res.Period))
	pdf.Ln(10)

	s := res.Summary
	summary := [][2]string{
		{"Employees", fmt.Sprintf("%d", s.EmployeeCount)},
		{"Total hours", s.TotalHours.StringFixed(2)},
		{"Total payroll", money(s.TotalPayroll)},
		{"Commission", money(s.TotalCommission)},
		{"Hourly", money(s.TotalHourly)},
		{"Tips", money(s.TotalTips)},
		{"Addings", money(s.TotalAddings)},
		{"Discount deductions", money(s.TotalDiscountDeductions)},
		{"Adjustments", money(s.TotalAdjustments)},
	}
	for _, kv := range summary {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(40, 6, kv[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range employeeColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range res.Employees {
		cells := []string{
			r.Employee.DisplayName(),
			string(r.Employee.PayStructure),
			r.TotalHours.StringFixed(2),
			money(r.Week1.HourlyPay.Add(r.Week2.HourlyPay)),
			money(r.Week1.CommissionPay.Add(r.Week2.CommissionPay)),
			money(r.Week1.Addings.Add(r.Week2.Addings)),
			money(r.Week1.Tips.Add(r.Week2.Tips)),
			money(r.Week1.DiscountDeduction.Add(r.Week2.DiscountDeduction)),
			money(r.TotalAdjustments),
			money(r.FinalPay),
		}
		for i, c := range employeeColumns {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	for _, r := range res.Employees {
		pdf.AddPage()
		writeEmployeePage(pdf, r)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func writeEmployeePage(pdf *gofpdf.Fpdf, r model.EmployeePayrollResult) {
	e := r.Employee
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("%s (%s)", e.DisplayName(), e.ID))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Structure: %s   Commission: %s%%   Hourly rate: %s",
		e.PayStructure, e.CommissionRate.String(), money(e.HourlyRate)))
	pdf.Ln(9)

	for i, w := range []model.WeeklyPayResult{r.Week1, r.Week2} {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("Week %d", i+1))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 5, fmt.Sprintf("Hours %s  Hourly %s  Commission %s  Base %s (%s)",
			w.Hours.StringFixed(2), money(w.HourlyPay), money(w.CommissionPay), money(w.BasePay), w.BasePayType))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Addings %s  Tips %s  Discount deduction %s  Total %s",
			money(w.Addings), money(w.Tips), money(w.DiscountDeduction), money(w.Total)))
		pdf.Ln(7)

		if len(w.Services) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 8)
		for _, h := range []string{"Date", "Client", "Service", "Sale", "Commission", "Adding", "Tip", "Discount"} {
			width := 24.0
			if h == "Service" {
				width = 70
			}
			pdf.CellFormat(width, 5, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		for _, s := range w.Services {
			sale := money(s.SalePrice)
			if s.AssumedPrice.IsPositive() {
				sale = fmt.Sprintf("%s (%s)", sale, money(s.AssumedPrice))
			}
			cells := []string{s.Date.Format("01/02"), s.Client, s.Service, sale,
				money(s.Commission), money(s.Adding), money(s.Tip), money(s.Discount)}
			for j, c := range cells {
				width := 24.0
				if j == 2 {
					width = 70
				}
				pdf.CellFormat(width, 5, c, "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if len(r.Adjustments) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Adjustments")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 9)
		for _, a := range r.Adjustments {
			pdf.Cell(0, 5, fmt.Sprintf("%s %s  %s", a.Type, money(a.Signed()), a.Notes))
			pdf.Ln(5)
		}
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Final pay: %s", money(r.FinalPay)))
}
