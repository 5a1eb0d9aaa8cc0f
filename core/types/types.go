// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Currency represents a currency code
type Currency string

const (
	CurrencyBRL Currency = "BRL"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol used on receipts
func (c Currency) Symbol() string {
	switch c {
	case CurrencyBRL, "":
		return "R$"
	default:
		return string(c)
	}
}

// EnergyUnit is the billing unit for consumption
const EnergyUnit = "kWh"
