// Package cmd - serve command
package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy-billing/api"
	"energy-billing/internal/config"
	"energy-billing/internal/logging"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the billing HTTP API",
	Long: `Serve bill calculations over HTTP.

Endpoints:
  POST /bills     {"consumption": "250", "flag": "verde"}
  GET  /tariff    active tariff schedule
  GET  /health
  GET  /version
  GET  /metrics   Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVarP(&tariffFile, "tariff", "t", "", "tariff schedule file (.hcl, .yaml)")
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(tariffFile)
	if err != nil {
		return err
	}

	cfg := config.Get().Server
	srvCfg := api.DefaultConfig()
	srvCfg.Addr = cfg.Addr
	if serveAddr != "" {
		srvCfg.Addr = serveAddr
	}
	if cfg.ReadTimeoutSeconds > 0 {
		srvCfg.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		srvCfg.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("starting billing API",
		zap.String("addr", srvCfg.Addr),
		zap.String("tariff", eng.Schedule().Name),
		zap.String("version", Version),
	)
	defer logging.Sync()

	if err := api.NewServer(eng, Version).Run(ctx, srvCfg); err != nil {
		logging.Error("billing API stopped", zap.Error(err))
		return err
	}
	return nil
}

