package commission

import (
	"github.com/shopspring/decimal"
)

// Rate is the platform's cut of every completed payment.
var Rate = decimal.RequireFromString("0.10")

// Commission returns the platform's share of gross, rounded to 2 decimal
// places half away from zero.
func Commission(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(Rate).Round(2)
}

// Net returns what the seller keeps: gross minus commission.
func Net(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(Commission(gross))
}

// Split returns both halves of the commission split.
func Split(gross decimal.Decimal) (commission, net decimal.Decimal) {
	commission = Commission(gross)
	return commission, gross.Sub(commission)
}
