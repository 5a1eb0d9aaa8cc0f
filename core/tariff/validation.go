package tariff

import (
	"fmt"
	"strings"

	"energy-billing/internal/errors"
)

// ValidationRule checks one structural property of a schedule
type ValidationRule func(*Schedule) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateBracketsPresent,
		validateBracketChain,
		validateBracketRates,
		validateFlags,
		validateTaxes,
	}
}

// Validate checks a schedule against the rules and returns every violation
func (s *Schedule) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(s)...)
	}
	return errs
}

// Check runs the default rules and folds violations into one config error
func (s *Schedule) Check() error {
	errs := s.Validate(DefaultValidationRules())
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.Newf(errors.TypeConfig, "invalid tariff schedule %q: %s", s.Name, strings.Join(msgs, "; ")).
		WithContext("violations", len(errs))
}

func validateBracketsPresent(s *Schedule) []error {
	if len(s.Brackets) == 0 {
		return []error{fmt.Errorf("no brackets defined")}
	}
	return nil
}

// validateBracketChain enforces: starts at 0, contiguous, ascending,
// only the last bracket is open and it must be.
func validateBracketChain(s *Schedule) []error {
	var errs []error
	n := len(s.Brackets)
	if n == 0 {
		return nil
	}
	if !s.Brackets[0].Lower.IsZero() {
		errs = append(errs, fmt.Errorf("bracket 0 must start at 0, starts at %s", s.Brackets[0].Lower))
	}
	for i, b := range s.Brackets {
		limit, bounded := b.Upper.Limit()
		last := i == n-1
		switch {
		case last && bounded:
			errs = append(errs, fmt.Errorf("last bracket must be unbounded, ends at %s", limit))
		case !last && !bounded:
			errs = append(errs, fmt.Errorf("bracket %d is unbounded but is not the last bracket", i))
		case bounded && !limit.GreaterThan(b.Lower):
			errs = append(errs, fmt.Errorf("bracket %d upper bound %s must exceed lower bound %s", i, limit, b.Lower))
		}
		if !last && bounded && !s.Brackets[i+1].Lower.Equal(limit) {
			errs = append(errs, fmt.Errorf("bracket %d ends at %s but bracket %d starts at %s", i, limit, i+1, s.Brackets[i+1].Lower))
		}
	}
	return errs
}

func validateBracketRates(s *Schedule) []error {
	var errs []error
	for i, b := range s.Brackets {
		if !b.Rate.IsPositive() {
			errs = append(errs, fmt.Errorf("bracket %d rate must be positive, got %s", i, b.Rate))
		}
	}
	return errs
}

func validateFlags(s *Schedule) []error {
	if len(s.Flags) == 0 {
		return []error{fmt.Errorf("no tariff flags defined")}
	}
	var errs []error
	seen := make(map[string]bool, len(s.Flags))
	for _, f := range s.Flags {
		name := NormalizeFlag(f.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("tariff flag with empty name"))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate tariff flag %q", name))
		}
		seen[name] = true
		if f.Rate.IsNegative() {
			errs = append(errs, fmt.Errorf("tariff flag %q surcharge must not be negative, got %s", name, f.Rate))
		}
	}
	return errs
}

func validateTaxes(s *Schedule) []error {
	var errs []error
	seen := make(map[string]bool, len(s.Taxes))
	for _, t := range s.Taxes {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("tax with empty name"))
			continue
		}
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("duplicate tax %q", t.Name))
		}
		seen[t.Name] = true
		if t.Rate.IsNegative() {
			errs = append(errs, fmt.Errorf("tax %q rate must not be negative, got %s", t.Name, t.Rate))
		}
	}
	return errs
}
