// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"energy-billing/internal/errors"
	"energy-billing/internal/logging"
)

// Environment variables that override file settings
const (
	EnvTariffFile = "ENERGY_BILLING_TARIFF_FILE"
	EnvAddr       = "ENERGY_BILLING_ADDR"
	EnvLogLevel   = "ENERGY_BILLING_LOG_LEVEL"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Tariff selects the rate tables
	Tariff TariffConfig `json:"tariff"`

	// Billing contains calculation settings
	Billing BillingConfig `json:"billing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// TariffConfig contains tariff-related settings
type TariffConfig struct {
	// File is an HCL or YAML schedule; empty means the built-in residential tariff
	File string `json:"file,omitempty"`
}

// BillingConfig contains calculation settings
type BillingConfig struct {
	// InvariantTolerance is the largest accepted gap between the
	// component sum and the bill total
	InvariantTolerance decimal.Decimal `json:"invariant_tolerance"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// NoColor disables ANSI colors in terminal output
	NoColor bool `json:"no_color"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Billing: BillingConfig{
			InvariantTolerance: decimal.New(1, -2),
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns ~/.energy-billing/config.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "energy-billing.json"
	}
	return filepath.Join(homeDir, ".energy-billing", "config.json")
}

// Load loads configuration from a file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config "+path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overlays the ENERGY_BILLING_* environment variables
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvTariffFile); ok {
		c.Tariff.File = v
	}
	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// Validate checks values that would make the engine refuse to start
func (c *Config) Validate() error {
	if c.Billing.InvariantTolerance.IsNegative() {
		return errors.Newf(errors.TypeConfig, "invariant_tolerance must not be negative, got %s", c.Billing.InvariantTolerance)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.TypeConfig, "server addr must not be empty")
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
