package cmd

import (
	"energy-billing/adapters/schedule"
	"energy-billing/core/engine"
	"energy-billing/core/tariff"
	"energy-billing/internal/config"
	"energy-billing/internal/logging"
)

// activeSchedule resolves the tariff: the --tariff flag wins over the
// config file, and neither means the built-in residential tariff
func activeSchedule(tariffFlag string) (tariff.Schedule, error) {
	path := tariffFlag
	if path == "" {
		path = config.Get().Tariff.File
	}
	return schedule.LoadOrDefault(path)
}

func newEngine(tariffFlag string) (*engine.Engine, error) {
	s, err := activeSchedule(tariffFlag)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(s,
		engine.WithTolerance(config.Get().Billing.InvariantTolerance),
		engine.WithLogger(logging.Named("engine")),
	)
}
