// Package config provides unified configuration loading for logswap.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dstolz/logswap/internal/sim"
)

// LogswapConfig contains all logswap configuration settings.
type LogswapConfig struct {
	// Simulation holds the six engine parameters.
	Simulation sim.Config `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// History contains settings for the saved-run store.
	History HistoryConfig `json:"history" yaml:"history"`
}

// LoggingConfig configures logswap's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
}

// HistoryConfig configures where saved runs are kept.
type HistoryConfig struct {
	// Dir is the directory holding the run-history database. Defaults to
	// ~/.logswap.
	Dir string `json:"dir" yaml:"dir"`
}

// Default returns a LogswapConfig with sensible defaults: a modest write
// rate with a month of retention and weekly forced swaps.
func Default() *LogswapConfig {
	return &LogswapConfig{
		Simulation: sim.Config{
			LogsPerDay:                1000,
			LogRetentionDays:          30,
			SimulationDurationDays:    0, // engine defaults to 2x retention
			LogDeleteThresholdPercent: 20,
			MaxSwapIntervalDays:       7,
			MaxDeviationFraction:      0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Dir: defaultHistoryDir(),
		},
	}
}

func defaultHistoryDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".logswap"
	}
	return filepath.Join(homeDir, ".logswap")
}

// Load loads configuration from the default locations and environment
// variables. Order: defaults -> ~/.logswap/config.yaml -> environment.
func Load() (*LogswapConfig, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".logswap", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			cfg = fileConfig
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Environment
// overrides still apply on top.
func LoadFromFile(path string) (*LogswapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid. Simulation parameters
// are checked by the engine's own validation.
func (c *LogswapConfig) Validate() error {
	if err := c.Simulation.WithDefaults().Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *LogswapConfig) {
	if v := os.Getenv("LOGSWAP_LOGS_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.LogsPerDay = n
		}
	}
	if v := os.Getenv("LOGSWAP_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.LogRetentionDays = n
		}
	}
	if v := os.Getenv("LOGSWAP_DURATION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.SimulationDurationDays = n
		}
	}
	if v := os.Getenv("LOGSWAP_DELETE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.LogDeleteThresholdPercent = n
		}
	}
	if v := os.Getenv("LOGSWAP_MAX_SWAP_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.MaxSwapIntervalDays = n
		}
	}
	if v := os.Getenv("LOGSWAP_MAX_DEVIATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.MaxDeviationFraction = f
		}
	}
	if v := os.Getenv("LOGSWAP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOGSWAP_HISTORY_DIR"); v != "" {
		cfg.History.Dir = v
	}
}
