package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"energy-billing/core/types"
)

const receiptWidth = 70

// ReceiptFormatter prints the bill the way it appears on paper
type ReceiptFormatter struct{}

// NewReceiptFormatter creates the receipt formatter
func NewReceiptFormatter() *ReceiptFormatter {
	return &ReceiptFormatter{}
}

// Format returns FormatCLI
func (f *ReceiptFormatter) Format() Format {
	return FormatCLI
}

// Render writes the receipt
func (f *ReceiptFormatter) Render(w io.Writer, bill *types.Bill) error {
	bw := bufio.NewWriter(w)
	sym := bill.Currency.Symbol()
	flag := FlagTitle(bill.Flag)

	double := strings.Repeat("=", receiptWidth)
	single := strings.Repeat("-", receiptWidth)

	line := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(bw, "%s %s %10s\n", padRight(label, receiptWidth-14), sym, amount.StringFixed(2))
	}

	fmt.Fprintln(bw, double)
	fmt.Fprintln(bw, center("FATURA DE ENERGIA ELÉTRICA", receiptWidth))
	fmt.Fprintln(bw, double)
	fmt.Fprintf(bw, "\nConsumo Total: %s %s\n", bill.Consumption.StringFixed(2), types.EnergyUnit)
	fmt.Fprintf(bw, "Bandeira Tarifária: %s\n\n", flag)

	fmt.Fprintln(bw, single)
	fmt.Fprintln(bw, "DETALHAMENTO POR FAIXA DE CONSUMO")
	fmt.Fprintln(bw, single)
	for _, item := range bill.Brackets {
		fmt.Fprintf(bw, "  %s | %8s %s × %s %s = %s %10s\n",
			padRight(item.Label, 20),
			item.Quantity.StringFixed(2), types.EnergyUnit,
			sym, item.Rate.StringFixed(2),
			sym, item.Amount.StringFixed(2))
	}

	fmt.Fprintln(bw)
	line("Subtotal Consumo:", bill.Subtotal)
	line(fmt.Sprintf("Adicional Bandeira %s:", flag), bill.Surcharge)
	fmt.Fprintln(bw, strings.Repeat("─", receiptWidth))
	line("Base de Cálculo (Impostos):", bill.TaxBase)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, single)
	fmt.Fprintln(bw, "IMPOSTOS")
	fmt.Fprintln(bw, single)
	for _, tax := range bill.Taxes {
		line(fmt.Sprintf("  %s (%5s%%):", padRight(tax.Name, 10), Percent(tax.Rate)), tax.Amount)
	}

	fmt.Fprintln(bw)
	line("Total Impostos:", bill.TotalTax)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, double)
	line("VALOR TOTAL DA FATURA:", bill.Total)
	fmt.Fprintln(bw, double)

	return bw.Flush()
}

// FlagTitle capitalises a flag name for display.
// A Caser is stateful, so each call gets its own.
func FlagTitle(flag string) string {
	return cases.Title(language.BrazilianPortuguese).String(flag)
}

// Percent renders a fraction as a percentage with two decimals
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
