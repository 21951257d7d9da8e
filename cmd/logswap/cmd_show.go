package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dstolz/logswap/internal/report"
	"github.com/dstolz/logswap/internal/store"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Re-render a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			st, err := store.Open(cfg.History.Dir)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer st.Close()

			meta, results, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			summary := report.Summarize(results)

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{
					"run":     meta,
					"summary": summary,
					"days":    results,
				})
			}

			if err := report.RenderTable(out, results); err != nil {
				return err
			}
			fmt.Fprintln(out)
			summary.Render(out)
			return nil
		},
	}
}
