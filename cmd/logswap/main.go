package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dstolz/logswap/internal/config"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "logswap",
		Short: "Capacity simulator for two-table log rotation",
		Long: `logswap models a server that writes log records into an active table
and reclaims expired records by swapping active and inactive tables
instead of deleting rows.

Given a write rate, retention period, and swap policy it predicts how
large the tables grow, how often swaps occur, and how many rows each
swap copies - the dominant cost driver of the real scheme.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newHistoryCmd(),
		newShowCmd(),
		newExportCmd(),
	)

	return rootCmd
}

// loadConfig resolves the effective configuration for a command: an
// explicit --config file if given, otherwise defaults plus
// ~/.logswap/config.yaml plus environment, with --log-level on top.
func loadConfig(cmd *cobra.Command) (*config.LogswapConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.LogswapConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		cfg.Logging.Level = level
	}
	return cfg, nil
}
