// Package cmd - tariff commands
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"energy-billing/adapters/schedule"
	"energy-billing/core/output"
	"energy-billing/core/tariff"
	"energy-billing/internal/errors"
)

var tariffFormat string

// tariffCmd groups tariff inspection commands
var tariffCmd = &cobra.Command{
	Use:   "tariff",
	Short: "Inspect tariff schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var tariffShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active tariff schedule",
	Long: `Print the brackets, flags and taxes of the active tariff.

The yaml format can be saved, edited and passed back with --tariff.`,
	Args: cobra.NoArgs,
	RunE: runTariffShow,
}

var tariffValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a tariff schedule file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schedule.Load(args[0])
		if err != nil {
			return err
		}
		newUI(cmd, false).Success("%s: tariff %q is valid (%d brackets, %d flags, %d taxes)",
			args[0], s.Name, len(s.Brackets), len(s.Flags), len(s.Taxes))
		return nil
	},
}

func init() {
	tariffShowCmd.Flags().StringVarP(&tariffFormat, "format", "f", "cli", "output format (cli, json, yaml)")
	tariffShowCmd.Flags().StringVarP(&tariffFile, "tariff", "t", "", "tariff schedule file (.hcl, .yaml)")

	tariffCmd.AddCommand(tariffShowCmd)
	tariffCmd.AddCommand(tariffValidateCmd)
}

func runTariffShow(cmd *cobra.Command, args []string) error {
	s, err := activeSchedule(tariffFile)
	if err != nil {
		return err
	}
	newUI(cmd, true).Info("Tarifa %s: %d faixas, %d bandeiras, %d tributos",
		s.Name, len(s.Brackets), len(s.Flags), len(s.Taxes))

	switch tariffFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		return schedule.EncodeYAML(cmd.OutOrStdout(), s)
	case "cli":
		printSchedule(cmd, s)
		return nil
	default:
		return errors.NotSupported("tariff format " + tariffFormat)
	}
}

func printSchedule(cmd *cobra.Command, s tariff.Schedule) {
	w := newUI(cmd, false)
	sym := s.Currency.Symbol()

	w.Header(fmt.Sprintf("Tarifa %s (%s)", s.Name, s.Currency))

	brackets := w.NewTable("Faixa", "Tarifa ("+sym+"/kWh)")
	for _, b := range s.Brackets {
		brackets.AddRow(b.Label(), b.Rate.StringFixed(2))
	}
	brackets.Render()
	w.Println("")

	flags := w.NewTable("Bandeira", "Adicional")
	for _, f := range s.Flags {
		flags.AddRow(output.FlagTitle(f.Name), output.Percent(f.Rate)+"%")
	}
	flags.Render()
	w.Println("")

	taxes := w.NewTable("Imposto", "Alíquota")
	for _, t := range s.Taxes {
		taxes.AddRow(t.Name, output.Percent(t.Rate)+"%")
	}
	taxes.Render()
}
