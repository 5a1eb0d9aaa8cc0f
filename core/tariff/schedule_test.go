package tariff

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"energy-billing/internal/errors"
)

func TestDefaultScheduleIsValid(t *testing.T) {
	s := Default()
	if err := s.Check(); err != nil {
		t.Fatalf("default schedule should be valid: %v", err)
	}
	if got := s.FlagNames(); strings.Join(got, ",") != "verde,amarela,vermelha" {
		t.Errorf("unexpected flag order: %v", got)
	}
	var taxes []string
	for _, tax := range s.Taxes {
		taxes = append(taxes, tax.Name)
	}
	if strings.Join(taxes, ",") != "ICMS,PIS,COFINS" {
		t.Errorf("unexpected tax order: %v", taxes)
	}
}

func TestBracketLabels(t *testing.T) {
	s := Default()
	want := []string{"0-100 kWh", "100-200 kWh", "200-500 kWh", "500-∞ kWh"}
	for i, b := range s.Brackets {
		if got := b.Label(); got != want[i] {
			t.Errorf("bracket %d label = %q, want %q", i, got, want[i])
		}
	}
}

func TestBracketWidth(t *testing.T) {
	s := Default()
	w, ok := s.Brackets[2].Width()
	if !ok || !w.Equal(d("300")) {
		t.Errorf("width = %s, %v; want 300, true", w, ok)
	}
	if _, ok := s.Brackets[3].Width(); ok {
		t.Error("top bracket should have no finite width")
	}
}

func TestScheduleValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Schedule)
		want   string
	}{
		{
			name:   "no brackets",
			mutate: func(s *Schedule) { s.Brackets = nil },
			want:   "no brackets",
		},
		{
			name:   "does not start at zero",
			mutate: func(s *Schedule) { s.Brackets[0].Lower = d("10") },
			want:   "must start at 0",
		},
		{
			name:   "gap between brackets",
			mutate: func(s *Schedule) { s.Brackets[1].Lower = d("120") },
			want:   "ends at 100 but bracket 1 starts at 120",
		},
		{
			name:   "overlapping brackets",
			mutate: func(s *Schedule) { s.Brackets[1].Lower = d("90") },
			want:   "ends at 100 but bracket 1 starts at 90",
		},
		{
			name:   "inverted bracket",
			mutate: func(s *Schedule) { s.Brackets[1].Upper = UpTo(d("50")) },
			want:   "must exceed lower bound",
		},
		{
			name:   "bounded top bracket",
			mutate: func(s *Schedule) { s.Brackets[3].Upper = UpTo(d("1000")) },
			want:   "last bracket must be unbounded",
		},
		{
			name:   "unbounded interior bracket",
			mutate: func(s *Schedule) { s.Brackets[1].Upper = Unbounded() },
			want:   "is unbounded but is not the last",
		},
		{
			name:   "zero rate",
			mutate: func(s *Schedule) { s.Brackets[0].Rate = decimal.Zero },
			want:   "rate must be positive",
		},
		{
			name:   "no flags",
			mutate: func(s *Schedule) { s.Flags = nil },
			want:   "no tariff flags",
		},
		{
			name:   "duplicate flag",
			mutate: func(s *Schedule) { s.Flags[1].Name = "VERDE" },
			want:   `duplicate tariff flag "verde"`,
		},
		{
			name:   "negative surcharge",
			mutate: func(s *Schedule) { s.Flags[2].Rate = d("-0.1") },
			want:   "surcharge must not be negative",
		},
		{
			name:   "duplicate tax",
			mutate: func(s *Schedule) { s.Taxes[2].Name = "PIS" },
			want:   `duplicate tax "PIS"`,
		},
		{
			name:   "negative tax",
			mutate: func(s *Schedule) { s.Taxes[0].Rate = d("-0.18") },
			want:   "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Check()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.Brackets[0].Rate = d("9")
	c.Flags[0].Name = "changed"
	c.Taxes[0].Rate = d("0.5")

	if !s.Brackets[0].Rate.Equal(d("0.50")) || s.Flags[0].Name != FlagGreen || !s.Taxes[0].Rate.Equal(d("0.18")) {
		t.Fatal("mutating a clone changed the original schedule")
	}
}

func TestNormalize(t *testing.T) {
	s := Schedule{Flags: []FlagSurcharge{{Name: "  Vermelha "}}, Taxes: []TaxRate{{Name: " ICMS"}}}
	s.Normalize()
	if s.Flags[0].Name != "vermelha" || s.Taxes[0].Name != "ICMS" {
		t.Errorf("unexpected normalized names: %q %q", s.Flags[0].Name, s.Taxes[0].Name)
	}
	if s.Currency != "BRL" {
		t.Errorf("currency should default to BRL, got %q", s.Currency)
	}
}

func TestBoundJSON(t *testing.T) {
	data, err := json.Marshal(Default().Brackets)
	if err != nil {
		t.Fatal(err)
	}
	var back []RateBracket
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back[3].Upper.IsUnbounded() {
		t.Error("top bracket should decode as unbounded")
	}
	if !back[0].Upper.Equal(UpTo(d("100"))) {
		t.Errorf("first bracket upper = %s", back[0].Upper)
	}
}
