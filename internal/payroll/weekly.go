package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CalculateWeek computes one employee's pay for one week. txns must already be
// limited to the employee and the week.
//
// Currency amounts are rounded to cents per service line and for hourly pay
// and the discount deduction, so Total equals
// BasePay + Addings + Tips - DiscountDeduction exactly.
func CalculateWeek(emp model.Employee, txns []model.TransactionRecord, hours decimal.Decimal, rules RuleSet) model.WeeklyPayResult {
	res := model.WeeklyPayResult{
		Hours:             hours,
		HourlyPay:         hours.Mul(emp.HourlyRate).Round(2),
		CommissionPay:     decimal.Zero,
		Addings:           decimal.Zero,
		Tips:              decimal.Zero,
		DiscountDeduction: decimal.Zero,
	}

	paysCommission := emp.PayStructure != model.PayHourlyOnly && emp.CommissionRate.IsPositive()
	rate := emp.CommissionRate.Div(hundred)
	discounts := decimal.Zero

	for _, t := range txns {
		line := model.ServiceLine{
			Date:         t.Date,
			Client:       t.CustomerID,
			Service:      t.ItemSold,
			SalePrice:    t.SalePrice(),
			AssumedPrice: decimal.Zero,
			Commission:   decimal.Zero,
			Adding:       decimal.Zero,
			Tip:          decimal.Zero,
			Discount:     t.Discount,
		}
		if line.Client == "" {
			line.Client = "Unknown"
		}

		if paysCommission {
			basis := line.SalePrice
			if line.SalePrice.IsZero() && rules.IsRefill(line.Service) {
				if price, ok := rules.AssumedPrice(line.Service); ok {
					line.AssumedPrice = price
					basis = price
				}
			}
			line.Commission = basis.Mul(rate).Round(2)
			res.CommissionPay = res.CommissionPay.Add(line.Commission)
		}
		if emp.HasAddings {
			line.Adding = rules.Adding(line.Service)
			res.Addings = res.Addings.Add(line.Adding)
		}
		if emp.HasTips {
			line.Tip = t.Tip
			res.Tips = res.Tips.Add(line.Tip)
		}
		discounts = discounts.Add(t.Discount)
		res.Services = append(res.Services, line)
	}
	res.ServiceCount = len(res.Services)

	switch emp.PayStructure {
	case model.PayCommissionVsHourly:
		if res.CommissionPay.GreaterThan(res.HourlyPay) {
			res.BasePay, res.BasePayType = res.CommissionPay, model.BaseCommission
		} else {
			res.BasePay, res.BasePayType = res.HourlyPay, model.BaseHourly
		}
	case model.PayPureCommission:
		res.BasePay, res.BasePayType = res.CommissionPay, model.BasePureCommission
	default:
		res.BasePay, res.BasePayType = res.HourlyPay, model.BaseHourlyOnly
	}

	if emp.HasDiscountDeductions {
		res.DiscountDeduction = discounts.Mul(rules.DiscountShare).Round(2)
	}

	res.Total = res.BasePay.Add(res.Addings).Add(res.Tips).Sub(res.DiscountDeduction)
	return res
}
