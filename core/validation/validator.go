// Package validation turns the raw text a user typed into typed,
// constrained billing inputs.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"energy-billing/core/tariff"
	"energy-billing/internal/errors"
)

// User-facing messages
const (
	MsgInvalidFormat = "Valor inválido. Digite um número válido"
	MsgNegative      = "O valor deve ser positivo"
	msgUnknownFlag   = "Bandeira inválida. Use: "
)

// Limits on a parsed consumption. Decimal arithmetic rescales operands to a
// common exponent, so an extreme exponent costs memory and time in proportion.
const (
	maxExponent = 18
	maxDigits   = 30
)

// Input is a validated billing request
type Input struct {
	Consumption decimal.Decimal
	Flag        string
}

// Validator checks raw input against the flags of a schedule
type Validator struct {
	flags []string
}

// New creates a validator for the schedule's flag set
func New(s *tariff.Schedule) *Validator {
	return &Validator{flags: s.FlagNames()}
}

// ParseConsumption accepts '.' or ',' as the decimal separator
func ParseConsumption(raw string) (decimal.Decimal, error) {
	text := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, errors.InvalidFormat(MsgInvalidFormat).WithContext("input", raw)
	}
	if exp := value.Exponent(); exp > maxExponent || exp < -maxExponent || value.NumDigits() > maxDigits {
		return decimal.Zero, errors.InvalidFormat(MsgInvalidFormat).WithContext("input", raw)
	}
	if value.IsNegative() {
		return decimal.Zero, errors.Negative(MsgNegative).WithContext("input", raw)
	}
	return value, nil
}

// UnknownFlagMessage lists the accepted flags for the user
func UnknownFlagMessage(flags []string) string {
	return msgUnknownFlag + strings.Join(flags, ", ")
}

// ParseFlag matches raw case-insensitively and returns the canonical name
func (v *Validator) ParseFlag(raw string) (string, error) {
	name := tariff.NormalizeFlag(raw)
	for _, f := range v.flags {
		if f == name {
			return f, nil
		}
	}
	return "", errors.UnknownTier(UnknownFlagMessage(v.flags)).WithContext("input", raw)
}

// ValidateInputs checks consumption, then flag, and stops at the first error
func (v *Validator) ValidateInputs(consumptionRaw, flagRaw string) (Input, error) {
	consumption, err := ParseConsumption(consumptionRaw)
	if err != nil {
		return Input{}, err
	}
	flag, err := v.ParseFlag(flagRaw)
	if err != nil {
		return Input{}, err
	}
	return Input{Consumption: consumption, Flag: flag}, nil
}

// Flags returns the accepted flag names in schedule order
func (v *Validator) Flags() []string {
	return append([]string(nil), v.flags...)
}
