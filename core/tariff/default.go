package tariff

import (
	"github.com/shopspring/decimal"

	"energy-billing/core/types"
)

// Flag names of the default schedule
const (
	FlagGreen  = "verde"
	FlagYellow = "amarela"
	FlagRed    = "vermelha"
)

// Default returns the residential tariff:
// 0-100 kWh @ 0.50, 100-200 @ 0.75, 200-500 @ 1.00, above 500 @ 1.35;
// flags verde 0%, amarela 5%, vermelha 10%; ICMS 18%, PIS 1.65%, COFINS 7.61%.
func Default() Schedule {
	return Schedule{
		Name:     "residencial",
		Currency: types.CurrencyBRL,
		Brackets: []RateBracket{
			{Lower: d("0"), Upper: UpTo(d("100")), Rate: d("0.50")},
			{Lower: d("100"), Upper: UpTo(d("200")), Rate: d("0.75")},
			{Lower: d("200"), Upper: UpTo(d("500")), Rate: d("1.00")},
			{Lower: d("500"), Upper: Unbounded(), Rate: d("1.35")},
		},
		Flags: []FlagSurcharge{
			{Name: FlagGreen, Rate: d("0")},
			{Name: FlagYellow, Rate: d("0.05")},
			{Name: FlagRed, Rate: d("0.10")},
		},
		Taxes: []TaxRate{
			{Name: "ICMS", Rate: d("0.18")},
			{Name: "PIS", Rate: d("0.0165")},
			{Name: "COFINS", Rate: d("0.0761")},
		},
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
