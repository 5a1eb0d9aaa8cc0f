// Package pricing - Centralized billing math
// Brackets, flag surcharges and taxes are computed here and nowhere else.
package pricing

import (
	"github.com/shopspring/decimal"

	"energy-billing/core/tariff"
	"energy-billing/core/types"
)

// ApplyBracket bills as much of remaining as fits in the bracket.
// The open bracket takes everything that is left.
func ApplyBracket(remaining decimal.Decimal, bracket tariff.RateBracket) (used, amount decimal.Decimal) {
	if !remaining.IsPositive() {
		return decimal.Zero, decimal.Zero
	}

	used = remaining
	if width, ok := bracket.Width(); ok {
		used = decimal.Min(remaining, width)
	}
	return used, used.Mul(bracket.Rate)
}

// BracketBreakdown fills the brackets in ascending order.
// Brackets that receive nothing are omitted.
func BracketBreakdown(consumption decimal.Decimal, brackets []tariff.RateBracket) []types.LineItem {
	items := make([]types.LineItem, 0, len(brackets))
	remaining := consumption

	for _, bracket := range brackets {
		if !remaining.IsPositive() {
			break
		}

		used, amount := ApplyBracket(remaining, bracket)
		if used.IsPositive() {
			items = append(items, lineItem(bracket, used, amount))
		}
		remaining = remaining.Sub(used)
	}

	return items
}

func lineItem(bracket tariff.RateBracket, used, amount decimal.Decimal) types.LineItem {
	item := types.LineItem{
		Label:    bracket.Label(),
		Lower:    bracket.Lower,
		Quantity: used,
		Rate:     bracket.Rate,
		Amount:   amount,
	}
	if limit, ok := bracket.Upper.Limit(); ok {
		item.Upper = &limit
	}
	return item
}

// Subtotal sums line item amounts left to right
func Subtotal(items []types.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
