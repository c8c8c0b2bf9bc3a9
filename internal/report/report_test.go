package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleResult() *payroll.Result {
	p := period.Biweekly(time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC))
	aubrie := model.Employee{
		ID: "SP-1", FullName: "Aubrie Carter",
		PayStructure:   model.PayCommissionVsHourly,
		CommissionRate: dec("40"), HourlyRate: dec("14"),
		HasAddings: true, HasTips: true,
	}
	megan := model.Employee{
		ID: "SP-2", FullName: "Megan Lopez",
		PayStructure: model.PayHourlyOnly, HourlyRate: dec("15"),
	}
	rules := payroll.DefaultRules()

	txns := []model.TransactionRecord{{
		ServiceProviderID: "SP-1",
		Date:              time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC),
		ItemSold:          "Classic Full Set",
		CardAmount:        dec("200"),
		Tip:               dec("30"),
		CustomerID:        "C-9",
	}}
	a1 := payroll.CalculateWeek(aubrie, txns, dec("2"), rules)
	a2 := payroll.CalculateWeek(aubrie, nil, decimal.Zero, rules)
	m1 := payroll.CalculateWeek(megan, nil, dec("10"), rules)
	m2 := payroll.CalculateWeek(megan, nil, dec("8.5"), rules)

	bonus := model.Adjustment{ID: "a", EmployeeID: "SP-2", Type: model.AdjustmentBonus, Amount: dec("25"), Notes: "referral"}
	results := []model.EmployeePayrollResult{
		payroll.Aggregate(aubrie, a1, a2, nil),
		payroll.Aggregate(megan, m1, m2, []model.Adjustment{bonus}),
	}
	return &payroll.Result{Period: p, Employees: results, Summary: payroll.Summarize(results)}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "employee_id,name,pay_structure,"))
	assert.True(t, strings.HasSuffix(lines[0], ",total_hours,final_pay"))
	assert.True(t, strings.HasPrefix(lines[1], "SP-1,Aubrie Carter,commission_vs_hourly,40,14.00,2.00,"))
	// 80 commission + 4 adding + 30 tips
	assert.True(t, strings.HasSuffix(lines[1], ",0,0.00,2.00,114.00"), lines[1])
	// 18.5 hours at 15 plus a 25 bonus
	assert.True(t, strings.HasSuffix(lines[2], ",1,25.00,18.50,302.50"), lines[2])
}

func TestServiceRows(t *testing.T) {
	rows := ServiceRows(sampleResult())
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "SP-1", r.EmployeeID)
	assert.Equal(t, 1, r.Week)
	assert.Equal(t, "2025-10-07", r.Date)
	assert.Equal(t, "C-9", r.Client)
	assert.Equal(t, "200.00", r.SalePrice)
	assert.Equal(t, "80.00", r.Commission)
	assert.Equal(t, "4.00", r.Adding)
	assert.Equal(t, "30.00", r.Tip)

	var buf bytes.Buffer
	require.NoError(t, WriteServicesCSV(&buf, sampleResult()))
	assert.True(t, strings.HasPrefix(buf.String(), "employee_id,name,week,date,client,service,"))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleResult(), "Lumin Payroll"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Services"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "employee_id", rows[0][0])
	assert.Equal(t, "final_pay", rows[0][len(rows[0])-1])
	assert.Equal(t, "Megan Lopez", rows[2][1])
	assert.Equal(t, "302.50", rows[2][len(rows[2])-1])

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 3)
	require.NoError(t, err)
	raw, err := f.GetCellValue("Summary", last, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "302.5", raw, "money is stored as a number")
	id, err := f.GetCellValue("Summary", "A3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "SP-2", id)

	services, err := f.GetRows("Services")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Classic Full Set", services[1][5])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResult()))
	out := buf.String()
	assert.Contains(t, out, "Aubrie Carter")
	assert.Contains(t, out, "302.50")
	assert.Contains(t, out, "2 employees, 20.50 hours")
	assert.Contains(t, out, "Total payroll 416.50")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.True(t, f.Binary())
	assert.False(t, FormatCSV.Binary())

	_, err = ParseFormat("docx")
	assert.ErrorContains(t, err, "unknown report format")
}
