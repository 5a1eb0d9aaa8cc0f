// Package cmd provides the CLI commands for energy-bill.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy-billing/core/ui"
	"energy-billing/internal/config"
	"energy-billing/internal/errors"
	"energy-billing/internal/logging"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "energy-bill",
	Short: "Compute residential electricity bills",
	Long: `energy-bill prices electricity consumption against a tiered tariff.

Consumption is billed per bracket, the tariff flag adds a surcharge on the
subtotal, and taxes are applied on top. Every bill is checked for internal
consistency before it is shown.

Examples:
  energy-bill calculate 250 verde
  energy-bill calculate --format json 1234,5 vermelha
  energy-bill tariff show
  energy-bill serve --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

// ExitCode maps an error to the process exit status:
// 2 for rejected input, 3 for a failed consistency check, 1 otherwise
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsValidation(err):
		return 2
	case errors.IsType(err, errors.TypeInvariant):
		return 3
	default:
		return 1
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.energy-billing/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(tariffCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Warn("failed to initialize logging, keeping defaults", zap.Error(err))
	}
}

func newUI(cmd *cobra.Command, stderr bool) *ui.Writer {
	out := cmd.OutOrStdout()
	if stderr {
		out = cmd.ErrOrStderr()
	}
	w := ui.NewWriter(out, noColor || config.Get().Output.NoColor)
	if verbose {
		w.SetVerbosity(2)
	}
	return w
}

// reportError prints err the way a user should see it: validation
// problems as their plain message, anything else with its class
func reportError(cmd *cobra.Command, err error) {
	w := newUI(cmd, true)
	switch {
	case errors.IsValidation(err):
		e, _ := errors.As(err)
		w.Error("%s", e.Message)
	case errors.IsType(err, errors.TypeInvariant):
		e, _ := errors.As(err)
		w.Error("Erro interno: %s", e.Message)
	default:
		w.Error("%v", err)
	}
}
