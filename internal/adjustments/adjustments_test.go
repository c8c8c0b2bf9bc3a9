package adjustments

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/period"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

type roster map[string]bool

func (r roster) Exists(id string) bool { return r[id] }

var staff = roster{"SP-1": true, "SP-2": true}

func TestRoundTrip(t *testing.T) {
	adjs := []model.Adjustment{
		{ID: "a1", EmployeeID: "SP-1", Type: model.AdjustmentBonus, Amount: dec("50"), Date: date(2025, 10, 10), Notes: "great reviews, all week"},
		{ID: "a2", EmployeeID: "SP-2", Type: model.AdjustmentDeduction, Amount: dec("12.5")},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, adjs))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))
	assert.Contains(t, buf.String(), `"great reviews, all week"`)

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, date(2025, 10, 10), got[0].Date)
	assert.Equal(t, "great reviews, all week", got[0].Notes)
	assert.Equal(t, model.AdjustmentDeduction, got[1].Type)
	assert.Equal(t, "12.50", got[1].Amount.StringFixed(2))
	assert.True(t, got[1].Date.IsZero())
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader(Header + "\na,SP-1,bonus,abc,,\n"))
	assert.ErrorContains(t, err, "row 2")
	assert.ErrorContains(t, err, "amount")

	_, err = Read(strings.NewReader(Header + "\na,SP-1,bonus,1,10/06/2025,\n"))
	assert.ErrorContains(t, err, "date")

	_, err = Read(strings.NewReader(Header + "\na,SP-1,bonus\n"))
	assert.Error(t, err)

	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestValidate(t *testing.T) {
	p := period.Biweekly(date(2025, 10, 6))
	adjs := []model.Adjustment{
		{ID: "ok", EmployeeID: "SP-1", Type: model.AdjustmentBonus, Amount: dec("50"), Date: date(2025, 10, 19)},
		{ID: "undated", EmployeeID: "SP-2", Type: model.AdjustmentDeduction, Amount: dec("5")},
		{ID: "noemp", Type: model.AdjustmentBonus, Amount: dec("5"), Date: date(2025, 10, 10)},
		{ID: "ghost", EmployeeID: "SP-9", Type: model.AdjustmentBonus, Amount: dec("5"), Date: date(2025, 10, 10)},
		{ID: "type", EmployeeID: "SP-1", Type: "tip", Amount: dec("5"), Date: date(2025, 10, 10)},
		{ID: "neg", EmployeeID: "SP-1", Type: model.AdjustmentBonus, Amount: dec("-5"), Date: date(2025, 10, 10)},
		{ID: "cents", EmployeeID: "SP-1", Type: model.AdjustmentBonus, Amount: dec("5.001"), Date: date(2025, 10, 10)},
		{ID: "late", EmployeeID: "SP-1", Type: model.AdjustmentBonus, Amount: dec("5"), Date: date(2025, 10, 20)},
	}

	errs := Validate(adjs, staff, p)
	got := make(map[string]string)
	for _, e := range errs {
		got[e.ID] = e.Field
	}
	assert.Equal(t, map[string]string{
		"noemp":   "employee_id",
		"ghost":   "employee_id",
		"type":    "type",
		"neg":     "amount",
		"cents":   "amount",
		"late":    "date",
		"undated": "date",
	}, got)

	assert.Len(t, Validate(adjs[7:], nil, period.Period{}), 0, "zero period skips the period check")
}

func TestSet_AddRemove(t *testing.T) {
	s := NewSet(nil, staff)
	p := period.Biweekly(date(2025, 10, 6))

	bonus, err := s.Add(AddParams{EmployeeID: " SP-1 ", Type: "Bonus", Amount: dec("50"), Date: date(2025, 10, 8), Period: p})
	require.NoError(t, err)
	assert.NotEmpty(t, bonus.ID)
	assert.Equal(t, "SP-1", bonus.EmployeeID)
	assert.Equal(t, model.AdjustmentBonus, bonus.Type)

	ded, err := s.Add(AddParams{EmployeeID: "SP-1", Type: model.AdjustmentDeduction, Amount: dec("50"), Period: p})
	require.NoError(t, err)
	assert.NotEqual(t, bonus.ID, ded.ID)
	assert.Equal(t, date(2025, 10, 6), ded.Date, "an undated entry takes the period start")

	_, err = s.Add(AddParams{EmployeeID: "SP-2", Type: model.AdjustmentBonus, Amount: dec("5")})
	assert.ErrorContains(t, err, "date: is required")

	_, err = s.Add(AddParams{EmployeeID: "SP-2", Type: model.AdjustmentBonus, Amount: dec("5"), Date: date(2025, 11, 1), Period: p})
	assert.ErrorContains(t, err, "outside pay period")

	_, err = s.Add(AddParams{EmployeeID: "SP-7", Type: model.AdjustmentBonus, Amount: dec("5")})
	assert.ErrorContains(t, err, "unknown employee")

	assert.Len(t, s.All(), 2)
	assert.Len(t, s.ForEmployee("SP-1"), 2)
	assert.Empty(t, s.ForEmployee("SP-2"))

	total := decimal.Zero
	for _, a := range s.ForEmployee("SP-1") {
		total = total.Add(a.Signed())
	}
	assert.True(t, total.IsZero(), "bonus and equal deduction cancel")

	require.NoError(t, s.Remove(bonus.ID))
	assert.Len(t, s.All(), 1)
	assert.ErrorIs(t, s.Remove(bonus.ID), ErrNotFound)
}

func TestSet_InPeriod(t *testing.T) {
	s := NewSet([]model.Adjustment{
		{ID: "in", Date: date(2025, 10, 6)},
		{ID: "undated"},
		{ID: "before", Date: date(2025, 10, 5)},
		{ID: "end", Date: date(2025, 10, 19)},
		{ID: "next", Date: date(2025, 10, 20)},
	}, nil)
	var ids []string
	for _, a := range s.InPeriod(period.Biweekly(date(2025, 10, 6))) {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"in", "end"}, ids, "undated entries never apply")
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", FileName)

	s, err := Load(path, staff)
	require.NoError(t, err)
	assert.Empty(t, s.All(), "missing file is an empty set")

	_, err = s.Add(AddParams{EmployeeID: "SP-2", Type: model.AdjustmentBonus, Amount: dec("20"), Date: date(2025, 10, 9), Notes: "referral"})
	require.NoError(t, err)
	require.NoError(t, s.Save(path))

	loaded, err := Load(path, staff)
	require.NoError(t, err)
	require.Len(t, loaded.All(), 1)
	assert.Equal(t, "referral", loaded.All()[0].Notes)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	_, err = Load(path, staff)
	assert.Error(t, err)
}
