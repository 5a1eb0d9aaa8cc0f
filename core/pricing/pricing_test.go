// Package pricing - Bracket, surcharge and tax tests
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"energy-billing/core/tariff"
	"energy-billing/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyBracket(t *testing.T) {
	bounded := tariff.RateBracket{Lower: dec("100"), Upper: tariff.UpTo(dec("200")), Rate: dec("0.75")}
	open := tariff.RateBracket{Lower: dec("500"), Upper: tariff.Unbounded(), Rate: dec("1.35")}

	tests := []struct {
		name       string
		remaining  string
		bracket    tariff.RateBracket
		wantUsed   string
		wantAmount string
	}{
		{"partial fill", "50", bounded, "50", "37.5"},
		{"exact fill", "100", bounded, "100", "75"},
		{"overflow capped at width", "150", bounded, "100", "75"},
		{"nothing remaining", "0", bounded, "0", "0"},
		{"negative remaining", "-3", bounded, "0", "0"},
		{"open bracket takes the rest", "1234.5", open, "1234.5", "1666.575"},
		{"open bracket with nothing left", "0", open, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, amount := ApplyBracket(dec(tt.remaining), tt.bracket)
			if !used.Equal(dec(tt.wantUsed)) {
				t.Errorf("used = %s, want %s", used, tt.wantUsed)
			}
			if !amount.Equal(dec(tt.wantAmount)) {
				t.Errorf("amount = %s, want %s", amount, tt.wantAmount)
			}
		})
	}
}

func TestBracketBreakdown250(t *testing.T) {
	s := tariff.Default()
	items := BracketBreakdown(dec("250"), s.Brackets)

	want := []struct {
		label, qty, rate, amount string
	}{
		{"0-100 kWh", "100", "0.50", "50"},
		{"100-200 kWh", "100", "0.75", "75"},
		{"200-500 kWh", "50", "1.00", "50"},
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, w := range want {
		it := items[i]
		if it.Label != w.label || !it.Quantity.Equal(dec(w.qty)) || !it.Rate.Equal(dec(w.rate)) || !it.Amount.Equal(dec(w.amount)) {
			t.Errorf("item %d = %+v, want %+v", i, it, w)
		}
	}
	if !Subtotal(items).Equal(dec("175")) {
		t.Errorf("subtotal = %s, want 175", Subtotal(items))
	}
}

func TestBracketBreakdownZero(t *testing.T) {
	s := tariff.Default()
	items := BracketBreakdown(decimal.Zero, s.Brackets)
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil breakdown, got %#v", items)
	}
	if !Subtotal(items).IsZero() {
		t.Errorf("subtotal of empty breakdown = %s", Subtotal(items))
	}
}

func TestBracketBreakdownTopBracket(t *testing.T) {
	s := tariff.Default()
	items := BracketBreakdown(dec("750"), s.Brackets)
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}
	top := items[3]
	if top.Label != "500-∞ kWh" || top.Upper != nil {
		t.Errorf("unexpected top item: %+v", top)
	}
	if !top.Quantity.Equal(dec("250")) || !top.Amount.Equal(dec("337.5")) {
		t.Errorf("top bracket billed %s for %s", top.Amount, top.Quantity)
	}
	// 50 + 75 + 300 + 337.5
	if !Subtotal(items).Equal(dec("762.5")) {
		t.Errorf("subtotal = %s, want 762.5", Subtotal(items))
	}
}

func TestBracketQuantitiesSumToConsumption(t *testing.T) {
	s := tariff.Default()
	for _, raw := range []string{"0.001", "1", "99.99", "100", "100.01", "200", "333.333", "500", "500.5", "10000", "123456.789"} {
		consumption := dec(raw)
		items := BracketBreakdown(consumption, s.Brackets)

		sum := decimal.Zero
		for _, it := range items {
			if !it.Quantity.IsPositive() {
				t.Errorf("%s: emitted non-positive quantity %s", raw, it.Quantity)
			}
			if !it.Amount.Equal(it.Quantity.Mul(it.Rate)) {
				t.Errorf("%s: amount %s != %s x %s", raw, it.Amount, it.Quantity, it.Rate)
			}
			sum = sum.Add(it.Quantity)
		}
		if !sum.Equal(consumption) {
			t.Errorf("%s: quantities sum to %s", raw, sum)
		}
	}
}

func TestApplySurcharge(t *testing.T) {
	s := tariff.Default()
	subtotal := dec("175")

	for _, f := range s.Flags {
		got, err := ApplySurcharge(subtotal, f.Name, &s)
		if err != nil {
			t.Fatalf("%s: %v", f.Name, err)
		}
		if !got.Equal(subtotal.Mul(f.Rate)) {
			t.Errorf("%s: surcharge = %s, want %s", f.Name, got, subtotal.Mul(f.Rate))
		}
	}

	red, _ := ApplySurcharge(subtotal, tariff.FlagRed, &s)
	if !red.Equal(dec("17.5")) {
		t.Errorf("vermelha surcharge = %s, want 17.5", red)
	}

	_, err := ApplySurcharge(subtotal, "azul", &s)
	if !errors.IsType(err, errors.TypeUnknownTier) {
		t.Fatalf("expected UNKNOWN_TIER, got %v", err)
	}
	e, _ := errors.As(err)
	if e.Message != "Bandeira inválida. Use: verde, amarela, vermelha" {
		t.Errorf("unexpected message %q", e.Message)
	}
}

func TestTaxBreakdown(t *testing.T) {
	s := tariff.Default()
	charges := TaxBreakdown(dec("175"), s.Taxes)

	want := []struct{ name, amount string }{
		{"ICMS", "31.5"},
		{"PIS", "2.8875"},
		{"COFINS", "13.3175"},
	}
	if len(charges) != len(want) {
		t.Fatalf("got %d charges, want %d", len(charges), len(want))
	}
	for i, w := range want {
		if charges[i].Name != w.name || !charges[i].Amount.Equal(dec(w.amount)) {
			t.Errorf("charge %d = %s %s, want %s %s", i, charges[i].Name, charges[i].Amount, w.name, w.amount)
		}
	}
	if !TotalTax(charges).Equal(dec("47.705")) {
		t.Errorf("total tax = %s, want 47.705", TotalTax(charges))
	}
}

func TestApplyTaxDoesNotRound(t *testing.T) {
	got := ApplyTax(dec("0.01"), dec("0.0165"))
	if !got.Equal(dec("0.000165")) {
		t.Errorf("ApplyTax = %s, want 0.000165", got)
	}
}
