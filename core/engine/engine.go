// Package engine provides the billing engine.
// CLI and HTTP are thin wrappers around this engine.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"energy-billing/core/pricing"
	"energy-billing/core/tariff"
	"energy-billing/core/types"
	"energy-billing/core/validation"
	"energy-billing/internal/errors"
	"energy-billing/internal/logging"
)

// DefaultTolerance is the largest rounding gap the invariant check accepts
var DefaultTolerance = decimal.New(1, -2)

// Engine computes bills against one immutable tariff schedule.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	schedule  tariff.Schedule
	validator *validation.Validator
	config    EngineConfig
	logger    *zap.Logger
}

// EngineConfig configures the billing engine
type EngineConfig struct {
	// Tolerance for the post-computation sum check
	Tolerance decimal.Decimal
}

// DefaultEngineConfig returns the default configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{Tolerance: DefaultTolerance}
}

// Option customises an Engine
type Option func(*Engine)

// WithTolerance overrides the invariant tolerance
func WithTolerance(tol decimal.Decimal) Option {
	return func(e *Engine) {
		e.config.Tolerance = tol
	}
}

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine validates the schedule and takes a private copy of it
func NewEngine(schedule tariff.Schedule, opts ...Option) (*Engine, error) {
	s := schedule.Clone()
	s.Normalize()
	if err := s.Check(); err != nil {
		return nil, err
	}

	e := &Engine{
		schedule: s,
		config:   DefaultEngineConfig(),
		logger:   logging.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.config.Tolerance.IsNegative() {
		return nil, errors.Newf(errors.TypeConfig, "invariant tolerance must not be negative, got %s", e.config.Tolerance)
	}
	e.validator = validation.New(&e.schedule)
	return e, nil
}

// Schedule returns a copy of the engine's tariff
func (e *Engine) Schedule() tariff.Schedule {
	return e.schedule.Clone()
}

// Tolerance returns the invariant tolerance in use
func (e *Engine) Tolerance() decimal.Decimal {
	return e.config.Tolerance
}

// Validator returns the validator bound to the engine's flags
func (e *Engine) Validator() *validation.Validator {
	return e.validator
}

// Compute prices a validated consumption under a flag.
// Calling it twice with the same arguments yields equal bills.
func (e *Engine) Compute(consumption decimal.Decimal, flag string) (*types.Bill, error) {
	if consumption.IsNegative() {
		return nil, errors.Negative(validation.MsgNegative).WithContext("consumption", consumption.String())
	}

	// Step 1: bracket breakdown
	items := pricing.BracketBreakdown(consumption, e.schedule.Brackets)

	// Step 2: subtotal
	subtotal := pricing.Subtotal(items)

	// Step 3: flag surcharge
	surcharge, err := pricing.ApplySurcharge(subtotal, flag, &e.schedule)
	if err != nil {
		return nil, err
	}
	rate, _ := e.schedule.FlagRate(flag)

	// Step 4-6: taxes
	taxBase := subtotal.Add(surcharge)
	taxes := pricing.TaxBreakdown(taxBase, e.schedule.Taxes)
	totalTax := pricing.TotalTax(taxes)

	// Step 7-8: assemble
	bill := &types.Bill{
		Consumption:   consumption,
		Flag:          flag,
		Currency:      e.schedule.Currency,
		Brackets:      items,
		Subtotal:      subtotal,
		SurchargeRate: rate,
		Surcharge:     surcharge,
		TaxBase:       taxBase,
		Taxes:         taxes,
		TotalTax:      totalTax,
		Total:         taxBase.Add(totalTax),
	}

	e.logger.Debug("bill computed",
		zap.String("consumption", consumption.String()),
		zap.String("flag", flag),
		zap.Int("brackets", len(items)),
		zap.String("total", bill.Total.String()),
	)
	return bill, nil
}

// Calculate validates raw user input, computes the bill and checks it.
// Input problems come back as validation errors; a bill that fails its
// consistency check comes back as INVARIANT_VIOLATION. No partial bill is
// ever returned.
func (e *Engine) Calculate(consumptionRaw, flagRaw string) (*types.Bill, error) {
	in, err := e.validator.ValidateInputs(consumptionRaw, flagRaw)
	if err != nil {
		return nil, err
	}

	bill, err := e.Compute(in.Consumption, in.Flag)
	if err != nil {
		return nil, err
	}

	if violations := e.Violations(bill); len(violations) > 0 {
		e.logger.Error("bill failed invariant check",
			zap.String("consumption", in.Consumption.String()),
			zap.String("flag", in.Flag),
			zap.Strings("violations", violations),
		)
		return nil, errors.Invariant("Falha na verificação dos invariantes!").
			WithContext("violations", violations)
	}
	return bill, nil
}
