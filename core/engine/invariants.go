package engine

import (
	"fmt"

	"energy-billing/core/types"
)

// CheckInvariants reports whether the bill's parts add up to its total.
// It catches aggregation bugs; it does not validate business rules.
func (e *Engine) CheckInvariants(b *types.Bill) bool {
	return len(e.Violations(b)) == 0
}

// Violations lists every failed check
func (e *Engine) Violations(b *types.Bill) []string {
	if b == nil {
		return []string{"bill is nil"}
	}

	var out []string
	if b.Total.IsNegative() {
		out = append(out, fmt.Sprintf("total %s is negative", b.Total))
	}

	recomputed := b.BracketTotal().Add(b.Surcharge).Add(b.TotalTax)
	if gap := recomputed.Sub(b.Total).Abs(); gap.GreaterThanOrEqual(e.config.Tolerance) {
		// a zero tolerance still has to accept an exact match
		if !gap.IsZero() {
			out = append(out, fmt.Sprintf("brackets + surcharge + taxes = %s but total is %s", recomputed, b.Total))
		}
	}
	return out
}
