// Package cmd - calculate command
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy-billing/core/output"
	"energy-billing/internal/config"
	"energy-billing/internal/logging"
)

var (
	outputFormat string
	tariffFile   string
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:     "calculate [consumption] [flag]",
	Aliases: []string{"bill"},
	Short:   "Compute the bill for a monthly consumption",
	Long: `Compute the electricity bill for a consumption in kWh under a tariff flag.

Consumption accepts "," or "." as the decimal separator. The flag is
matched case-insensitively and defaults to the first flag of the tariff.
Without arguments both values are read interactively.

Examples:
  energy-bill calculate 250
  energy-bill calculate 150,5 amarela
  energy-bill calculate --format json 600 VERMELHA
  energy-bill calculate --tariff rural.yaml 80 verde`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	calculateCmd.Flags().StringVarP(&tariffFile, "tariff", "t", "", "tariff schedule file (.hcl, .yaml)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(tariffFile)
	if err != nil {
		return err
	}

	status := newUI(cmd, true)
	flags := eng.Validator().Flags()
	var consumption, flag string
	switch len(args) {
	case 0:
		consumption, flag, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), flags)
		if err != nil {
			return err
		}
	case 1:
		consumption, flag = args[0], flags[0]
		status.Warning("Bandeira não informada, usando %s", flag)
	default:
		consumption, flag = args[0], args[1]
	}

	format := outputFormat
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}

	logging.Debug("calculating bill",
		zap.String("consumption", consumption),
		zap.String("flag", flag),
		zap.String("tariff", eng.Schedule().Name),
	)

	status.Info("Tarifa: %s (tolerância %s)", eng.Schedule().Name, eng.Tolerance())

	bill, err := eng.Calculate(consumption, flag)
	if err != nil {
		return err
	}
	return output.Default().Render(cmd.OutOrStdout(), output.Format(format), bill)
}

// prompt reads consumption and flag the way the bill form asks for them.
// An empty flag answer picks the first flag.
func prompt(in io.Reader, out io.Writer, flags []string) (string, string, error) {
	r := bufio.NewReader(in)

	fmt.Fprint(out, "Consumo (kWh): ")
	consumption, err := readLine(r)
	if err != nil {
		return "", "", err
	}

	fmt.Fprintf(out, "Bandeira Tarifária (%s) [%s]: ", strings.Join(flags, ", "), flags[0])
	flag, err := readLine(r)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(flag) == "" {
		flag = flags[0]
	}
	return consumption, flag, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
