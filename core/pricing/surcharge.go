package pricing

import (
	"github.com/shopspring/decimal"

	"energy-billing/core/tariff"
	"energy-billing/core/validation"
	"energy-billing/internal/errors"
)

// ApplySurcharge returns subtotal times the flag's surcharge rate
func ApplySurcharge(subtotal decimal.Decimal, flag string, schedule *tariff.Schedule) (decimal.Decimal, error) {
	rate, ok := schedule.FlagRate(flag)
	if !ok {
		return decimal.Zero, errors.UnknownTier(validation.UnknownFlagMessage(schedule.FlagNames())).
			WithContext("flag", flag)
	}
	return subtotal.Mul(rate), nil
}
