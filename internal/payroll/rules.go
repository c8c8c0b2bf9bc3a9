package payroll

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/config"
)

// AddingRule pays Amount for a service whose name contains Contains and none
// of Exclude. Matching is case-insensitive.
type AddingRule struct {
	Contains string
	Exclude  []string
	Amount   decimal.Decimal
}

func (r AddingRule) matches(service string) bool {
	if !strings.Contains(service, strings.ToLower(r.Contains)) {
		return false
	}
	for _, ex := range r.Exclude {
		if strings.Contains(service, strings.ToLower(ex)) {
			return false
		}
	}
	return true
}

// ServicePrice is the list price of a canonical service.
type ServicePrice struct {
	Service string
	Price   decimal.Decimal
}

// RuleSet holds the service-name rules applied by CalculateWeek.
type RuleSet struct {
	// RefillKeyword marks services whose zero sale price is replaced by the
	// list price for commission.
	RefillKeyword string
	// ServicePrices is searched in order; the first entry whose name the
	// service contains wins.
	ServicePrices []ServicePrice
	// Addings is searched in order; the first matching rule wins.
	Addings []AddingRule
	// DiscountShare is the fraction of discounts deducted from the employee.
	DiscountShare decimal.Decimal
}

// DefaultRules returns the built-in rule table.
func DefaultRules() RuleSet {
	return RuleSet{
		RefillKeyword: "refill",
		ServicePrices: []ServicePrice{
			{"Classic Full Set", decimal.RequireFromString("34.65")},
			{"Wet Look Full Set", decimal.RequireFromString("38.15")},
			{"Hybrid Full Set", decimal.RequireFromString("45.15")},
			{"Russian Volume Full Set", decimal.RequireFromString("48.65")},
			{"Wispy Lashes Full Set", decimal.RequireFromString("55.65")},
			{"Classic Refill", decimal.RequireFromString("38.45")},
			{"Wet Look Refill", decimal.RequireFromString("40.58")},
			{"Hybrid Refill", decimal.RequireFromString("39.17")},
			{"Russian Volume Refill", decimal.RequireFromString("52.00")},
			{"Wispy Lash Refill", decimal.RequireFromString("90.50")},
			{"Lash Lift", decimal.RequireFromString("22.50")},
			{"Brow Lamination", decimal.RequireFromString("22.50")},
			{"Lash Removal", decimal.RequireFromString("9.00")},
			{"Wax - Eyebrows", decimal.RequireFromString("6.00")},
		},
		Addings: []AddingRule{
			{Contains: "full set", Amount: decimal.RequireFromString("4.00")},
			{Contains: "refill", Exclude: []string{"member", "pass"}, Amount: decimal.RequireFromString("2.00")},
		},
		DiscountShare: decimal.RequireFromString("0.5"),
	}
}

// RulesFromConfig overlays the configured rules on DefaultRules. Empty lists
// and an unset discount share keep the built-in values.
func RulesFromConfig(cfg config.RulesConfig) RuleSet {
	rs := DefaultRules()
	if kw := strings.TrimSpace(cfg.RefillKeyword); kw != "" {
		rs.RefillKeyword = kw
	}
	if cfg.DiscountShare != nil {
		rs.DiscountShare = decimal.NewFromFloat(*cfg.DiscountShare)
	}
	if len(cfg.ServicePrices) > 0 {
		rs.ServicePrices = make([]ServicePrice, len(cfg.ServicePrices))
		for i, p := range cfg.ServicePrices {
			rs.ServicePrices[i] = ServicePrice{Service: p.Service, Price: decimal.NewFromFloat(p.Price)}
		}
	}
	if len(cfg.Addings) > 0 {
		rs.Addings = make([]AddingRule, len(cfg.Addings))
		for i, a := range cfg.Addings {
			rs.Addings[i] = AddingRule{Contains: a.Contains, Exclude: a.Exclude, Amount: decimal.NewFromFloat(a.Amount)}
		}
	}
	return rs
}

// IsRefill reports whether service carries the refill keyword.
func (rs RuleSet) IsRefill(service string) bool {
	return rs.RefillKeyword != "" && strings.Contains(strings.ToLower(service), strings.ToLower(rs.RefillKeyword))
}

// AssumedPrice returns the list price of the first table entry contained in
// service.
func (rs RuleSet) AssumedPrice(service string) (decimal.Decimal, bool) {
	name := strings.ToLower(service)
	for _, p := range rs.ServicePrices {
		if p.Service != "" && strings.Contains(name, strings.ToLower(p.Service)) {
			return p.Price, true
		}
	}
	return decimal.Zero, false
}

// Adding returns the per-service adding for service, or zero.
func (rs RuleSet) Adding(service string) decimal.Decimal {
	name := strings.ToLower(service)
	for _, r := range rs.Addings {
		if r.matches(name) {
			return r.Amount
		}
	}
	return decimal.Zero
}
