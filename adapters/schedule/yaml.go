package schedule

import (
	"io"

	"gopkg.in/yaml.v3"

	"energy-billing/core/tariff"
)

type yamlFile struct {
	Name     string        `yaml:"name,omitempty"`
	Currency string        `yaml:"currency,omitempty"`
	Brackets []yamlBracket `yaml:"brackets"`
	Flags    []yamlFlag    `yaml:"flags"`
	Taxes    []yamlTax     `yaml:"taxes"`
}

type yamlBracket struct {
	From string  `yaml:"from"`
	To   *string `yaml:"to,omitempty"`
	Rate string  `yaml:"rate"`
}

type yamlFlag struct {
	Name      string `yaml:"name"`
	Surcharge string `yaml:"surcharge"`
}

type yamlTax struct {
	Name string `yaml:"name"`
	Rate string `yaml:"rate"`
}

func decodeYAML(src []byte) (document, error) {
	var f yamlFile
	if err := yaml.Unmarshal(src, &f); err != nil {
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

// EncodeYAML writes s in the YAML schedule format, so the output can be
// edited and loaded back with Load
func EncodeYAML(w io.Writer, s tariff.Schedule) error {
	doc := fromSchedule(s)
	f := yamlFile{Name: doc.Name, Currency: doc.Currency}
	for _, b := range doc.Brackets {
		f.Brackets = append(f.Brackets, yamlBracket{From: b.From, To: b.To, Rate: b.Rate})
	}
	for _, fl := range doc.Flags {
		f.Flags = append(f.Flags, yamlFlag{Name: fl.Name, Surcharge: fl.Rate})
	}
	for _, t := range doc.Taxes {
		f.Taxes = append(f.Taxes, yamlTax{Name: t.Name, Rate: t.Rate})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}
