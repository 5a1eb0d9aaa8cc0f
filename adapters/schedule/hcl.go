package schedule

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// hclFile mirrors a schedule written in HCL:
//
//	name     = "residencial"
//	currency = "BRL"
//	bracket {
//	  from = 0
//	  to   = 100
//	  rate = 0.50
//	}
//	flag "verde" { surcharge = 0 }
//	tax "ICMS" { rate = 0.18 }
//
// Numeric attributes decode into strings so no float rounding happens on the way in.
type hclFile struct {
	Name     string       `hcl:"name,optional"`
	Currency string       `hcl:"currency,optional"`
	Brackets []hclBracket `hcl:"bracket,block"`
	Flags    []hclFlag    `hcl:"flag,block"`
	Taxes    []hclTax     `hcl:"tax,block"`
}

type hclBracket struct {
	From string  `hcl:"from"`
	To   *string `hcl:"to,optional"`
	Rate string  `hcl:"rate"`
}

type hclFlag struct {
	Name      string `hcl:"name,label"`
	Surcharge string `hcl:"surcharge"`
}

type hclTax struct {
	Name string `hcl:"name,label"`
	Rate string `hcl:"rate"`
}

func decodeHCL(filename string, src []byte) (document, error) {
	var f hclFile
	// hclsimple picks native or JSON syntax from the file suffix
	if err := hclsimple.Decode(hclFilename(filename), src, nil, &f); err != nil {
		return document{}, err
	}

	doc := document{Name: f.Name, Currency: f.Currency}
	for _, b := range f.Brackets {
		doc.Brackets = append(doc.Brackets, bracketDoc{From: b.From, To: b.To, Rate: b.Rate})
	}
	for _, fl := range f.Flags {
		doc.Flags = append(doc.Flags, namedRate{Name: fl.Name, Rate: fl.Surcharge})
	}
	for _, t := range f.Taxes {
		doc.Taxes = append(doc.Taxes, namedRate{Name: t.Name, Rate: t.Rate})
	}
	return doc, nil
}

func hclFilename(name string) string {
	if format, err := DetectFormat(name); err == nil && format == FormatHCL {
		return name
	}
	return name + ".hcl"
}
