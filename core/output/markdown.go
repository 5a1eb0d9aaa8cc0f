package output

import (
	"bufio"
	"fmt"
	"io"

	"energy-billing/core/types"
)

// MarkdownFormatter renders the bill as markdown tables
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, bill *types.Bill) error {
	bw := bufio.NewWriter(w)
	sym := bill.Currency.Symbol()

	fmt.Fprintf(bw, "## Fatura de Energia Elétrica\n\n")
	fmt.Fprintf(bw, "- **Consumo:** %s %s\n", bill.Consumption.StringFixed(2), types.EnergyUnit)
	fmt.Fprintf(bw, "- **Bandeira:** %s\n\n", FlagTitle(bill.Flag))

	fmt.Fprintf(bw, "| Faixa | %s | Tarifa (%s) | Valor (%s) |\n", types.EnergyUnit, sym, sym)
	fmt.Fprintf(bw, "|---|---:|---:|---:|\n")
	for _, item := range bill.Brackets {
		fmt.Fprintf(bw, "| %s | %s | %s | %s |\n",
			item.Label, item.Quantity.StringFixed(2), item.Rate.StringFixed(2), item.Amount.StringFixed(2))
	}
	fmt.Fprintf(bw, "| **Subtotal** | | | **%s** |\n\n", bill.Subtotal.StringFixed(2))

	fmt.Fprintf(bw, "| Item | Alíquota | Valor (%s) |\n", sym)
	fmt.Fprintf(bw, "|---|---:|---:|\n")
	fmt.Fprintf(bw, "| Adicional bandeira | %s%% | %s |\n", Percent(bill.SurchargeRate), bill.Surcharge.StringFixed(2))
	fmt.Fprintf(bw, "| Base de cálculo | | %s |\n", bill.TaxBase.StringFixed(2))
	for _, tax := range bill.Taxes {
		fmt.Fprintf(bw, "| %s | %s%% | %s |\n", tax.Name, Percent(tax.Rate), tax.Amount.StringFixed(2))
	}
	fmt.Fprintf(bw, "| Total impostos | | %s |\n\n", bill.TotalTax.StringFixed(2))

	fmt.Fprintf(bw, "**Valor total da fatura: %s %s**\n", sym, bill.Total.StringFixed(2))
	return bw.Flush()
}
