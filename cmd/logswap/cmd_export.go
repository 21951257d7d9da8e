package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dstolz/logswap/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a saved run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("out")

			st, err := store.Open(cfg.History.Dir)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer st.Close()

			if outPath == "-" {
				return st.ExportRunCSV(cmd.Context(), args[0], cmd.OutOrStdout())
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create csv file: %w", err)
			}
			if err := st.ExportRunCSV(cmd.Context(), args[0], f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().String("out", "-", "Output file, or - for stdout")

	return cmd
}
