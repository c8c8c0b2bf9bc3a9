package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/config"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

func f(v float64) *float64 { return &v }
func b(v bool) *bool        { return &v }

func directory() []model.Employee {
	return []model.Employee{
		{ID: "SP-2", FullName: "Megan Lopez", Status: "Active"},
		{ID: "SP-1", FullName: "Aubrie Carter", Status: "Active"},
		{ID: "SP-3", FullName: "Hilda Ruiz", Status: "Active"},
	}
}

func TestService_Lookup(t *testing.T) {
	svc := NewService(directory())

	all := svc.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Aubrie Carter", all[0].FullName, "sorted by name")

	e, ok := svc.Get("SP-3")
	require.True(t, ok)
	assert.Equal(t, "Hilda Ruiz", e.FullName)

	_, ok = svc.Get("SP-9")
	assert.False(t, ok)
	assert.True(t, svc.Exists("SP-1"))
	assert.False(t, svc.Exists(""))
}

func TestService_ByStructure(t *testing.T) {
	emps := directory()
	emps[0].PayStructure = model.PayPureCommission
	emps[1].PayStructure = model.PayHourlyOnly
	emps[2].PayStructure = model.PayHourlyOnly

	svc := NewService(emps)
	assert.Len(t, svc.ByStructure(model.PayHourlyOnly), 2)
	assert.Len(t, svc.ByStructure(model.PayPureCommission), 1)
	assert.Empty(t, svc.ByStructure(model.PayCommissionVsHourly))
}

func TestApplyPolicies_DefaultsAndOverrides(t *testing.T) {
	cfg := config.Default("Lumin")
	cfg.Employees = []config.EmployeePolicy{
		{ID: "SP-1", PolicyConfig: config.PolicyConfig{
			PayStructure:   model.PayCommissionVsHourly,
			CommissionRate: f(40),
			HasAddings:     b(true),
		}},
		{Name: "megan", PolicyConfig: config.PolicyConfig{
			PayStructure:          model.PayPureCommission,
			CommissionRate:        f(50),
			HourlyRate:            f(0),
			HasDiscountDeductions: b(true),
		}},
	}

	got, err := ApplyPolicies(directory(), cfg)
	require.NoError(t, err)
	require.Len(t, got, 3)

	megan, aubrie, hilda := got[0], got[1], got[2]

	assert.Equal(t, model.PayCommissionVsHourly, aubrie.PayStructure)
	assert.Equal(t, "40", aubrie.CommissionRate.String())
	assert.Equal(t, "14", aubrie.HourlyRate.String(), "unset fields come from defaults")
	assert.True(t, aubrie.HasAddings)
	assert.False(t, aubrie.HasTips)

	assert.Equal(t, model.PayPureCommission, megan.PayStructure, "matched by name substring")
	assert.Equal(t, "50", megan.CommissionRate.String())
	assert.True(t, megan.HourlyRate.IsZero())
	assert.True(t, megan.HasDiscountDeductions)

	assert.Equal(t, model.PayHourlyOnly, hilda.PayStructure)
	assert.True(t, hilda.CommissionRate.IsZero())
}

func TestApplyPolicies_IDBeatsName(t *testing.T) {
	cfg := config.Default("Lumin")
	cfg.Employees = []config.EmployeePolicy{
		{Name: "Aubrie", PolicyConfig: config.PolicyConfig{HourlyRate: f(20)}},
		{ID: "sp-1", PolicyConfig: config.PolicyConfig{HourlyRate: f(18)}},
	}
	got, err := ApplyPolicies([]model.Employee{{ID: "SP-1", FullName: "Aubrie Carter"}}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "18", got[0].HourlyRate.String())
}

func TestApplyPolicies_Invalid(t *testing.T) {
	cfg := config.Default("Lumin")
	cfg.Employees = []config.EmployeePolicy{
		{ID: "SP-1", PolicyConfig: config.PolicyConfig{CommissionRate: f(30)}},
		{ID: "SP-2", PolicyConfig: config.PolicyConfig{PayStructure: model.PayCommissionVsHourly, CommissionRate: f(140)}},
	}
	_, err := ApplyPolicies(directory(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SP-1")
	assert.Contains(t, err.Error(), "hourly_only")
	assert.Contains(t, err.Error(), "outside 0-100")
}
