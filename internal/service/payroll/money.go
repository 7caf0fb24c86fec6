package payroll

import "github.com/shopspring/decimal"

// round2 rounds to two decimal places, half away from zero. Every monetary
// intermediate is rounded through here so repeated computation cannot drift.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)
