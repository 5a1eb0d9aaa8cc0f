package output

import (
	"encoding/json"
	"io"

	"energy-billing/core/types"
)

// JSONFormatter writes the bill as indented JSON
type JSONFormatter struct {
	Indent string
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: "  "}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render encodes the bill
func (f *JSONFormatter) Render(w io.Writer, bill *types.Bill) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(bill)
}
