package pricing

import (
	"github.com/shopspring/decimal"

	"energy-billing/core/tariff"
	"energy-billing/core/types"
)

// ApplyTax returns base * rate, unrounded
func ApplyTax(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate)
}

// TaxBreakdown applies every tax to the same base, in table order
func TaxBreakdown(base decimal.Decimal, taxes []tariff.TaxRate) []types.TaxCharge {
	charges := make([]types.TaxCharge, len(taxes))
	for i, tax := range taxes {
		charges[i] = types.TaxCharge{
			Name:   tax.Name,
			Rate:   tax.Rate,
			Amount: ApplyTax(base, tax.Rate),
		}
	}
	return charges
}

// TotalTax sums tax amounts left to right
func TotalTax(charges []types.TaxCharge) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total
}
