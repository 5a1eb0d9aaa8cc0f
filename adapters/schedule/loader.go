// Package schedule loads tariff schedules from HCL and YAML files.
//
// Both formats describe the same document: a name, a currency, an ordered
// list of consumption brackets, the tariff flags with their surcharges and
// the taxes. Numbers are carried as text until they reach decimal.Decimal,
// so a rate written as 0.0165 is priced as exactly 0.0165.
package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"energy-billing/core/tariff"
	"energy-billing/core/types"
	"energy-billing/internal/errors"
)

// Format identifies a schedule file encoding
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.NotSupported(fmt.Sprintf("tariff file extension %q", filepath.Ext(path)))
	}
}

// Load reads, decodes and validates a schedule file
func Load(path string) (tariff.Schedule, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return tariff.Schedule{}, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return tariff.Schedule{}, errors.Wrapf(errors.TypeConfig, err, "failed to read tariff file %s", path)
	}

	return Parse(path, format, src)
}

// Parse decodes and validates schedule source.
// filename is only used in diagnostics.
func Parse(filename string, format Format, src []byte) (tariff.Schedule, error) {
	var (
		doc document
		err error
	)
	switch format {
	case FormatHCL:
		doc, err = decodeHCL(filename, src)
	case FormatYAML:
		doc, err = decodeYAML(src)
	default:
		return tariff.Schedule{}, errors.NotSupported("tariff file format " + string(format))
	}
	if err != nil {
		return tariff.Schedule{}, errors.Wrapf(errors.TypeConfig, err, "failed to decode tariff file %s", filename)
	}

	s, err := doc.build()
	if err != nil {
		return tariff.Schedule{}, errors.Wrapf(errors.TypeConfig, err, "invalid value in tariff file %s", filename)
	}

	s.Normalize()
	if err := s.Check(); err != nil {
		return tariff.Schedule{}, err
	}
	return s, nil
}

// LoadOrDefault loads path, or returns the default schedule when path is empty
func LoadOrDefault(path string) (tariff.Schedule, error) {
	if path == "" {
		return tariff.Default(), nil
	}
	return Load(path)
}

// document is the format-neutral shape both decoders produce
type document struct {
	Name     string
	Currency string
	Brackets []bracketDoc
	Flags    []namedRate
	Taxes    []namedRate
}

type bracketDoc struct {
	From string
	To   *string
	Rate string
}

type namedRate struct {
	Name string
	Rate string
}

func (d document) build() (tariff.Schedule, error) {
	s := tariff.Schedule{
		Name:     strings.TrimSpace(d.Name),
		Currency: types.Currency(strings.ToUpper(strings.TrimSpace(d.Currency))),
		Brackets: make([]tariff.RateBracket, 0, len(d.Brackets)),
		Flags:    make([]tariff.FlagSurcharge, 0, len(d.Flags)),
		Taxes:    make([]tariff.TaxRate, 0, len(d.Taxes)),
	}

	for i, b := range d.Brackets {
		lower, err := number(b.From, "bracket %d from", i)
		if err != nil {
			return s, err
		}
		rate, err := number(b.Rate, "bracket %d rate", i)
		if err != nil {
			return s, err
		}
		upper := tariff.Unbounded()
		if b.To != nil {
			limit, err := number(*b.To, "bracket %d to", i)
			if err != nil {
				return s, err
			}
			upper = tariff.UpTo(limit)
		}
		s.Brackets = append(s.Brackets, tariff.RateBracket{Lower: lower, Upper: upper, Rate: rate})
	}

	for _, f := range d.Flags {
		rate, err := number(f.Rate, "flag %q surcharge", f.Name)
		if err != nil {
			return s, err
		}
		s.Flags = append(s.Flags, tariff.FlagSurcharge{Name: f.Name, Rate: rate})
	}

	for _, t := range d.Taxes {
		rate, err := number(t.Rate, "tax %q rate", t.Name)
		if err != nil {
			return s, err
		}
		s.Taxes = append(s.Taxes, tariff.TaxRate{Name: t.Name, Rate: rate})
	}

	return s, nil
}

func number(raw string, field string, args ...interface{}) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", fmt.Sprintf(field, args...), raw)
	}
	return v, nil
}

func fromSchedule(s tariff.Schedule) document {
	d := document{
		Name:     s.Name,
		Currency: s.Currency.String(),
	}
	for _, b := range s.Brackets {
		bd := bracketDoc{From: b.Lower.String(), Rate: b.Rate.String()}
		if limit, ok := b.Upper.Limit(); ok {
			to := limit.String()
			bd.To = &to
		}
		d.Brackets = append(d.Brackets, bd)
	}
	for _, f := range s.Flags {
		d.Flags = append(d.Flags, namedRate{Name: f.Name, Rate: f.Rate.String()})
	}
	for _, t := range s.Taxes {
		d.Taxes = append(d.Taxes, namedRate{Name: t.Name, Rate: t.Rate.String()})
	}
	return d
}
