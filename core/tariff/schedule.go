// Package tariff holds the rate tables a bill is priced against:
// progressive consumption brackets, tariff flag surcharges and taxes.
//
// A Schedule is plain configuration. It is validated once and cloned by
// its consumers, so the tables are read-only for the lifetime of a
// calculation.
package tariff

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"energy-billing/core/types"
)

// RateBracket is one contiguous kWh range billed at Rate per kWh
type RateBracket struct {
	Lower decimal.Decimal `json:"lower"`
	Upper Bound           `json:"upper"`
	Rate  decimal.Decimal `json:"rate"`
}

// Width returns Upper - Lower, and false for the open bracket
func (b RateBracket) Width() (decimal.Decimal, bool) {
	limit, ok := b.Upper.Limit()
	if !ok {
		return decimal.Zero, false
	}
	return limit.Sub(b.Lower), true
}

// Label renders the bracket range, e.g. "0-100 kWh" or "500-∞ kWh"
func (b RateBracket) Label() string {
	return fmt.Sprintf("%s-%s %s", b.Lower.String(), b.Upper.String(), types.EnergyUnit)
}

// FlagSurcharge is the surcharge applied to the subtotal under a tariff flag
type FlagSurcharge struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxRate is a proportional tax on the tax base
type TaxRate struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// Schedule is a complete tariff
type Schedule struct {
	Name     string          `json:"name"`
	Currency types.Currency  `json:"currency"`
	Brackets []RateBracket   `json:"brackets"`
	Flags    []FlagSurcharge `json:"flags"`
	Taxes    []TaxRate       `json:"taxes"`
}

// Clone returns a deep copy
func (s Schedule) Clone() Schedule {
	out := s
	out.Brackets = append([]RateBracket(nil), s.Brackets...)
	out.Flags = append([]FlagSurcharge(nil), s.Flags...)
	out.Taxes = append([]TaxRate(nil), s.Taxes...)
	return out
}

// Normalize lowercases and trims flag names and defaults the currency
func (s *Schedule) Normalize() {
	if s.Currency == "" {
		s.Currency = types.CurrencyBRL
	}
	for i := range s.Flags {
		s.Flags[i].Name = NormalizeFlag(s.Flags[i].Name)
	}
	for i := range s.Taxes {
		s.Taxes[i].Name = strings.TrimSpace(s.Taxes[i].Name)
	}
}

// NormalizeFlag returns the canonical form of a flag name
func NormalizeFlag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FlagRate looks up a flag by canonical name
func (s *Schedule) FlagRate(name string) (decimal.Decimal, bool) {
	for _, f := range s.Flags {
		if f.Name == name {
			return f.Rate, true
		}
	}
	return decimal.Zero, false
}

// FlagNames returns the flag names in declaration order
func (s *Schedule) FlagNames() []string {
	names := make([]string, len(s.Flags))
	for i, f := range s.Flags {
		names[i] = f.Name
	}
	return names
}
