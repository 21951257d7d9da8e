package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dstolz/logswap/internal/logging"
	"github.com/dstolz/logswap/internal/report"
	"github.com/dstolz/logswap/internal/sim"
	"github.com/dstolz/logswap/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and report per-day results",
		Long: `Run the two-table rotation simulation with the configured parameters.

Parameters come from the config file and environment, with flags taking
precedence. Results are rendered as a table by default, or exported as
CSV with --csv.

Examples:
  logswap run --logs-per-day 5000 --retention-days 30
  logswap run --duration-days 365 --csv rotation.csv
  logswap run --max-deviation 0.2 --seed 7 --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			simCfg := simConfigFromFlags(cmd, cfg.Simulation)

			jsonOut, _ := cmd.Flags().GetBool("json")
			timing, _ := cmd.Flags().GetBool("timing")
			quiet, _ := cmd.Flags().GetBool("quiet")
			save, _ := cmd.Flags().GetBool("save")
			csvPath, _ := cmd.Flags().GetString("csv")
			tracePath, _ := cmd.Flags().GetString("trace-file")

			opts := []sim.Option{}
			var seed *uint64
			if cmd.Flags().Changed("seed") {
				v, _ := cmd.Flags().GetUint64("seed")
				seed = &v
				opts = append(opts, sim.WithSeed(v))
			}
			if timing {
				opts = append(opts, sim.WithTiming())
			}

			s, err := sim.New(simCfg, opts...)
			if err != nil {
				return err
			}

			log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			log.Debug("starting simulation",
				"logs_per_day", simCfg.LogsPerDay,
				"retention_days", simCfg.LogRetentionDays,
				"duration_days", s.Config().SimulationDurationDays,
				"delete_threshold", simCfg.LogDeleteThresholdPercent,
				"max_swap_interval", simCfg.MaxSwapIntervalDays,
				"max_deviation", simCfg.MaxDeviationFraction,
			)

			var trace *logging.TraceLogger
			if tracePath != "" {
				trace = logging.NewTraceLogger(tracePath)
				if trace == nil {
					log.Warn("trace file could not be opened, continuing without trace", "path", tracePath)
				}
				defer trace.Close()
			}

			var results []sim.DayResult
			for {
				res, ok := s.Next()
				if !ok {
					break
				}
				trace.Log(res)
				results = append(results, res)
			}
			summary := report.Summarize(results)

			var runID string
			if save {
				runID, err = saveRun(cmd, cfg.History.Dir, s.Config(), seed, results)
				if err != nil {
					return err
				}
				log.Info("run saved", "id", runID)
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOut:
				return json.NewEncoder(out).Encode(map[string]any{
					"run_id":  runID,
					"config":  s.Config(),
					"summary": summary,
					"days":    results,
				})
			case csvPath != "":
				// CSV mode keeps stdout clean for piping; the saved-run
				// id goes through the logger instead.
				if err := writeCSVOutput(out, csvPath, results); err != nil {
					return err
				}
			default:
				if !quiet {
					if err := report.RenderTable(out, results); err != nil {
						return err
					}
					fmt.Fprintln(out)
					summary.Render(out)
				}
				if runID != "" {
					fmt.Fprintf(out, "saved run: %s\n", runID)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("logs-per-day", 0, "Baseline log records written per day")
	cmd.Flags().Int("retention-days", 0, "Days a record is kept before expiring")
	cmd.Flags().Int("duration-days", 0, "Days to simulate (default 2x retention)")
	cmd.Flags().Int("delete-threshold", 0, "Percent-not-expired level that triggers a swap (0-100)")
	cmd.Flags().Int("max-swap-interval", 0, "Maximum days between swaps")
	cmd.Flags().Float64("max-deviation", 0, "Fraction of daily volume randomly added or subtracted (0-1)")
	cmd.Flags().Uint64("seed", 0, "Seed for the random deviation source")
	cmd.Flags().Bool("timing", false, "Attach per-day elapsed-time diagnostics")
	cmd.Flags().String("csv", "", "Write results as CSV to a file, or - for stdout")
	cmd.Flags().String("trace-file", "", "Append per-day JSONL trace records to a file")
	cmd.Flags().Bool("save", false, "Persist the run to the history store")
	cmd.Flags().Bool("quiet", false, "Suppress table and summary output")

	return cmd
}

// simConfigFromFlags overlays any explicitly set run flags onto the
// configuration-file values.
func simConfigFromFlags(cmd *cobra.Command, base sim.Config) sim.Config {
	if cmd.Flags().Changed("logs-per-day") {
		base.LogsPerDay, _ = cmd.Flags().GetInt("logs-per-day")
	}
	if cmd.Flags().Changed("retention-days") {
		base.LogRetentionDays, _ = cmd.Flags().GetInt("retention-days")
	}
	if cmd.Flags().Changed("duration-days") {
		base.SimulationDurationDays, _ = cmd.Flags().GetInt("duration-days")
	}
	if cmd.Flags().Changed("delete-threshold") {
		base.LogDeleteThresholdPercent, _ = cmd.Flags().GetInt("delete-threshold")
	}
	if cmd.Flags().Changed("max-swap-interval") {
		base.MaxSwapIntervalDays, _ = cmd.Flags().GetInt("max-swap-interval")
	}
	if cmd.Flags().Changed("max-deviation") {
		base.MaxDeviationFraction, _ = cmd.Flags().GetFloat64("max-deviation")
	}
	return base
}

func saveRun(cmd *cobra.Command, dir string, cfg sim.Config, seed *uint64, results []sim.DayResult) (string, error) {
	st, err := store.Open(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open history store: %w", err)
	}
	defer st.Close()

	id, err := st.SaveRun(cmd.Context(), cfg, seed, results)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// writeCSVOutput writes results to path, or to out when path is "-".
func writeCSVOutput(out io.Writer, path string, results []sim.DayResult) error {
	if path == "-" {
		return report.WriteCSV(out, results)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	if err := report.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
