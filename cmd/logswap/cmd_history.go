package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dstolz/logswap/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			st, err := store.Open(cfg.History.Dir)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer st.Close()

			metas, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				if metas == nil {
					metas = []store.RunMeta{}
				}
				return json.NewEncoder(out).Encode(map[string]any{"runs": metas})
			}

			if len(metas) == 0 {
				fmt.Fprintln(out, "No saved runs. Use 'logswap run --save' to keep one.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tLOGS/DAY\tRETENTION\tDAYS\tTHRESHOLD\tINTERVAL\tDEVIATION\tSWAPS\tROWS COPIED\tPEAK")
			for _, m := range metas {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.2f\t%d\t%d\t%d\n",
					m.ID,
					m.CreatedAt.Local().Format(time.DateTime),
					m.Config.LogsPerDay,
					m.Config.LogRetentionDays,
					m.Config.SimulationDurationDays,
					m.Config.LogDeleteThresholdPercent,
					m.Config.MaxSwapIntervalDays,
					m.Config.MaxDeviationFraction,
					m.Swaps,
					m.TotalRowsCopied,
					m.PeakTotal,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")

	return cmd
}
