// Package types - Bill types
package types

import "github.com/shopspring/decimal"

// LineItem is the charge for the part of the consumption that fell in one bracket
type LineItem struct {
	// Label is the bracket range, e.g. "100-200 kWh" or "500-∞ kWh"
	Label string `json:"label"`

	// Lower is the bracket's lower bound in kWh
	Lower decimal.Decimal `json:"lower"`

	// Upper is the bracket's upper bound, nil for the open top bracket
	Upper *decimal.Decimal `json:"upper,omitempty"`

	// Quantity is the kWh billed in this bracket
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the price per kWh
	Rate decimal.Decimal `json:"rate"`

	// Amount is Quantity * Rate
	Amount decimal.Decimal `json:"amount"`
}

// TaxCharge is one proportional tax applied to the tax base
type TaxCharge struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Bill is the result of one billing calculation.
// A Bill is built once and never modified afterwards.
type Bill struct {
	// Consumption is the billed quantity in kWh
	Consumption decimal.Decimal `json:"consumption"`

	// Flag is the canonical tariff flag name
	Flag string `json:"flag"`

	// Currency is the bill currency
	Currency Currency `json:"currency"`

	// Brackets holds one line per non-empty bracket, ascending
	Brackets []LineItem `json:"brackets"`

	// Subtotal is the sum of the bracket amounts
	Subtotal decimal.Decimal `json:"subtotal"`

	// SurchargeRate is the flag's fraction of the subtotal
	SurchargeRate decimal.Decimal `json:"surcharge_rate"`

	// Surcharge is Subtotal * SurchargeRate
	Surcharge decimal.Decimal `json:"surcharge"`

	// TaxBase is Subtotal + Surcharge
	TaxBase decimal.Decimal `json:"tax_base"`

	// Taxes are in tariff declaration order
	Taxes []TaxCharge `json:"taxes"`

	// TotalTax is the sum of the tax amounts
	TotalTax decimal.Decimal `json:"total_tax"`

	// Total is TaxBase + TotalTax
	Total decimal.Decimal `json:"total"`
}

// Tax returns the amount charged for the named tax
func (b *Bill) Tax(name string) (decimal.Decimal, bool) {
	for _, t := range b.Taxes {
		if t.Name == name {
			return t.Amount, true
		}
	}
	return decimal.Zero, false
}

// TaxMap returns the tax amounts keyed by name
func (b *Bill) TaxMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(b.Taxes))
	for _, t := range b.Taxes {
		m[t.Name] = t.Amount
	}
	return m
}

// BracketTotal sums the line item amounts
func (b *Bill) BracketTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Brackets {
		total = total.Add(item.Amount)
	}
	return total
}
