package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/config"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

// ApplyPolicies returns a copy of employees with a pay policy assigned to each.
//
// A configured employee entry applies when its id equals the employee ID, or
// failing that when its name appears in the employee's full name (case
// insensitive). Fields the entry leaves unset come from cfg.Defaults. Every
// resulting employee is validated and all failures are returned together.
func ApplyPolicies(employees []model.Employee, cfg *config.Config) ([]model.Employee, error) {
	out := make([]model.Employee, 0, len(employees))
	var errs []error
	for _, e := range employees {
		policy := cfg.Defaults
		if override, ok := findPolicy(e, cfg.Employees); ok {
			policy = merge(policy, override.PolicyConfig)
		}
		e = withPolicy(e, policy)
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, e)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("applying pay policies: %w", errors.Join(errs...))
	}
	return out, nil
}

func findPolicy(e model.Employee, policies []config.EmployeePolicy) (config.EmployeePolicy, bool) {
	for _, p := range policies {
		if p.ID != "" && strings.EqualFold(p.ID, e.ID) {
			return p, true
		}
	}
	full := strings.ToLower(e.DisplayName())
	for _, p := range policies {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name != "" && strings.Contains(full, name) {
			return p, true
		}
	}
	return config.EmployeePolicy{}, false
}

func merge(base, over config.PolicyConfig) config.PolicyConfig {
	if over.PayStructure != "" {
		base.PayStructure = over.PayStructure
	}
	if over.CommissionRate != nil {
		base.CommissionRate = over.CommissionRate
	}
	if over.HourlyRate != nil {
		base.HourlyRate = over.HourlyRate
	}
	if over.HasAddings != nil {
		base.HasAddings = over.HasAddings
	}
	if over.HasTips != nil {
		base.HasTips = over.HasTips
	}
	if over.HasDiscountDeductions != nil {
		base.HasDiscountDeductions = over.HasDiscountDeductions
	}
	return base
}

func withPolicy(e model.Employee, p config.PolicyConfig) model.Employee {
	e.PayStructure = p.PayStructure
	if e.PayStructure == "" {
		e.PayStructure = model.PayHourlyOnly
	}
	e.CommissionRate = rate(p.CommissionRate)
	e.HourlyRate = rate(p.HourlyRate)
	e.HasAddings = flag(p.HasAddings)
	e.HasTips = flag(p.HasTips)
	e.HasDiscountDeductions = flag(p.HasDiscountDeductions)
	return e
}

func rate(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func flag(v *bool) bool {
	return v != nil && *v
}
