package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dstolz/logswap/internal/sim"
)

// RenderTable writes an aligned text table of the daily results.
func RenderTable(w io.Writer, results []sim.DayResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "DAY\tACTIVE\tINACTIVE\tTOTAL\t%LIVE\tSWAP\tTRIGGER\tPASSES\tCOPIED\tDEADLINE\tOLD-A\tOLD-I\tNEW-I")
	for _, res := range results {
		swap := ""
		if res.TableSwapOccurred {
			swap = "yes"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			res.Day,
			res.ActiveTableSize,
			res.InactiveTableSize,
			res.TotalRecords,
			res.PercentNotExpired,
			swap,
			res.TableSwapTrigger,
			res.TableSwapCount,
			res.RowsCopied,
			res.NextSwapDeadline,
			res.OldestActiveAgeDays,
			res.OldestInactiveAgeDays,
			res.NewestInactiveAgeDays,
		)
	}

	return tw.Flush()
}
