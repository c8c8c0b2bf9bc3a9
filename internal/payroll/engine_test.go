package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/timecard"
)

func newEngine(strict bool) *Engine {
	return NewEngine(Options{
		Workers:        3,
		StrictMatching: strict,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func roster() []model.Employee {
	return []model.Employee{
		{ID: "SP-1", FullName: "Aubrie Carter", PayStructure: model.PayCommissionVsHourly, CommissionRate: dec("40"), HourlyRate: dec("14"), HasAddings: true},
		{ID: "SP-2", FullName: "Megan Lopez", PayStructure: model.PayPureCommission, CommissionRate: dec("50"), HasDiscountDeductions: true},
		{ID: "SP-3", FullName: "Hilda Ruiz", PayStructure: model.PayHourlyOnly, HourlyRate: dec("15"), HasTips: true},
	}
}

func entry(d int, hours string) model.TimeEntry {
	return model.TimeEntry{Date: date(2025, 10, d), Hours: dec(hours)}
}

func sale(id string, d int, item, amount string) model.TransactionRecord {
	return model.TransactionRecord{ServiceProviderID: id, Date: date(2025, 10, d), ItemSold: item, CardAmount: dec(amount)}
}

func input() Input {
	return Input{
		Period:    period.Biweekly(date(2025, 10, 6)),
		Employees: roster(),
		Transactions: []model.TransactionRecord{
			sale("SP-1", 7, "Classic Full Set", "65"),
			sale("SP-1", 14, "Classic Refill", "0"),
			sale("SP-2", 8, "Hybrid Full Set", "120"),
			sale("SP-3", 19, "Lash Lift", "45"),
			sale("SP-1", 20, "Classic Full Set", "999"),
			sale("SP-9", 8, "Classic Full Set", "999"),
		},
		Timecard: &model.Timecard{FileName: "oct.xlsx", Employees: []model.TimecardSheet{
			{SheetName: "Aubrie", Name: "Aubrie Carter", TimeEntries: []model.TimeEntry{entry(6, "8"), entry(7, "8"), entry(8, "8"), entry(9, "8"), entry(10, "6.5"), entry(13, "5")}},
			{SheetName: "Hilda [SP-3]", Name: "Hilda", TimeEntries: []model.TimeEntry{entry(13, "7"), entry(19, "3")}},
		}},
	}
}

func find(t *testing.T, res *Result, id string) model.EmployeePayrollResult {
	t.Helper()
	for _, r := range res.Employees {
		if r.Employee.ID == id {
			return r
		}
	}
	t.Fatalf("no result for %s", id)
	return model.EmployeePayrollResult{}
}

func TestEngine_Run(t *testing.T) {
	res, err := newEngine(true).Run(context.Background(), input())
	require.NoError(t, err)
	require.Len(t, res.Employees, 3)
	assert.Equal(t, "SP-1", res.Employees[0].Employee.ID, "input order is kept")
	assert.Equal(t, "SP-3", res.Employees[2].Employee.ID)

	aubrie := find(t, res, "SP-1")
	assertDec(t, "38.50", aubrie.Week1.Hours)
	assertDec(t, "543.00", aubrie.Week1.Total)
	assertDec(t, "5.00", aubrie.Week2.Hours)
	assertDec(t, "70.00", aubrie.Week2.HourlyPay)
	assertDec(t, "15.38", aubrie.Week2.CommissionPay)
	assertDec(t, "72.00", aubrie.Week2.Total, "hourly wins and the member-less refill adds 2.00")
	assertDec(t, "615.00", aubrie.FinalPay)

	megan := find(t, res, "SP-2")
	assert.True(t, megan.TotalHours.IsZero(), "no sheet means zero hours")
	assertDec(t, "60.00", megan.FinalPay)

	hilda := find(t, res, "SP-3")
	assertDec(t, "0.00", hilda.Week1.Hours)
	assertDec(t, "10.00", hilda.Week2.Hours)
	assert.Equal(t, 1, hilda.Week2.ServiceCount, "the end day is inside week two")
	assertDec(t, "150.00", hilda.FinalPay)

	assert.Equal(t, 3, res.Summary.EmployeeCount)
	assertDec(t, "825.00", res.Summary.TotalPayroll)
	assert.Equal(t, res.Period, input().Period)
}

func TestEngine_WeekPartitionIsExhaustive(t *testing.T) {
	in := input()
	in.Timecard = nil
	in.Transactions = nil
	for d := 1; d <= 25; d++ {
		in.Transactions = append(in.Transactions, sale("SP-2", d, "Lash Lift", "10"))
	}
	res, err := newEngine(true).Run(context.Background(), in)
	require.NoError(t, err)

	megan := find(t, res, "SP-2")
	assert.Equal(t, 7, megan.Week1.ServiceCount)
	assert.Equal(t, 7, megan.Week2.ServiceCount)
	for _, s := range megan.Week1.Services {
		assert.True(t, s.Date.Before(in.Period.Midpoint()))
	}
	for _, s := range megan.Week2.Services {
		assert.False(t, s.Date.Before(in.Period.Midpoint()))
	}
}

func TestEngine_ManualHoursOverrideTimecard(t *testing.T) {
	in := input()
	in.Hours = map[string]model.PeriodHours{
		"SP-1": {Week1: model.WeekHours{Hours: dec("10")}, Week2: model.WeekHours{Hours: dec("0")}},
	}
	res, err := newEngine(true).Run(context.Background(), in)
	require.NoError(t, err)
	aubrie := find(t, res, "SP-1")
	assertDec(t, "140.00", aubrie.Week1.HourlyPay)
	assertDec(t, "10.00", res.Hours["SP-1"].Week1.Hours)
	assertDec(t, "10.00", res.Hours["SP-3"].Week2.Hours)
}

func TestEngine_InvalidInput(t *testing.T) {
	e := newEngine(true)

	in := input()
	in.Period = period.Period{}
	_, err := e.Run(context.Background(), in)
	assert.ErrorIs(t, err, ErrPeriodUnset)

	in = input()
	in.Employees = nil
	_, err = e.Run(context.Background(), in)
	assert.ErrorIs(t, err, ErrNoEmployees)
}

func TestEngine_UnresolvedSheet(t *testing.T) {
	in := input()
	in.Timecard.Employees = append(in.Timecard.Employees, model.TimecardSheet{SheetName: "Guest", Name: "Zed Guest"})

	_, err := newEngine(true).Run(context.Background(), in)
	assert.ErrorIs(t, err, timecard.ErrUnresolvedSheet)
	assert.Contains(t, err.Error(), "oct.xlsx")

	res, err := newEngine(false).Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, res.Employees, 3)
}

func TestEngine_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine(true).Run(ctx, input())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Recalculate(t *testing.T) {
	e := newEngine(true)
	in := input()
	prev, err := e.Run(context.Background(), in)
	require.NoError(t, err)

	in.Adjustments = []model.Adjustment{{ID: "x", EmployeeID: "SP-2", Type: model.AdjustmentBonus, Amount: dec("50")}}
	next, err := e.Recalculate(in, prev, "SP-2")
	require.NoError(t, err)

	assertDec(t, "110.00", find(t, next, "SP-2").FinalPay)
	assertDec(t, "60.00", find(t, prev, "SP-2").FinalPay, "previous result is untouched")
	assertDec(t, "875.00", next.Summary.TotalPayroll)
	assert.Equal(t, find(t, prev, "SP-1"), find(t, next, "SP-1"))

	in.Adjustments = append(in.Adjustments, model.Adjustment{ID: "y", EmployeeID: "SP-2", Type: model.AdjustmentDeduction, Amount: dec("50")})
	again, err := e.Recalculate(in, next, "SP-2")
	require.NoError(t, err)
	assert.True(t, find(t, again, "SP-2").FinalPay.Equal(find(t, prev, "SP-2").FinalPay))

	_, err = e.Recalculate(in, prev, "SP-404")
	assert.ErrorIs(t, err, ErrUnknownEmployee)
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(Options{})
	assert.Positive(t, e.workers)
	assert.Equal(t, DefaultRules(), e.rules)

	custom := DefaultRules()
	custom.DiscountShare = decimal.NewFromInt(1)
	e = NewEngine(Options{Rules: &custom})
	assert.True(t, e.rules.DiscountShare.Equal(decimal.NewFromInt(1)))
}
