package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one point-of-sale line from a transaction export.
type TransactionRecord struct {
	ServiceProviderID string
	Date              time.Time // zero if the source date was unparseable
	ItemSold          string
	CardAmount        decimal.Decimal
	CashAmount        decimal.Decimal
	CheckAmount       decimal.Decimal
	ACHAmount         decimal.Decimal
	PayLaterAmount    decimal.Decimal
	OtherAmount       decimal.Decimal
	Tip               decimal.Decimal
	Discount          decimal.Decimal
	CustomerID        string
}

// SalePrice is the sum of every payment-method amount.
func (t TransactionRecord) SalePrice() decimal.Decimal {
	return decimal.Sum(t.CardAmount, t.CashAmount, t.CheckAmount, t.ACHAmount, t.PayLaterAmount, t.OtherAmount)
}
