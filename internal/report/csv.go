// Package report renders simulation results for operator consumption:
// CSV export, terminal tables, and run summaries.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dstolz/logswap/internal/sim"
)

// csvHeader is the fixed column set, one column per DayResult field. The
// Elapsed column is appended only when the run captured timing.
var csvHeader = []string{
	"Day",
	"ActiveTableSize",
	"InactiveTableSize",
	"TotalRecords",
	"PercentNotExpired",
	"TableSwapOccurred",
	"TableSwapTrigger",
	"TableSwapCount",
	"RowsCopied",
	"NextSwapDeadline",
	"OldestActiveAgeDays",
	"OldestInactiveAgeDays",
	"NewestInactiveAgeDays",
}

// WriteCSV writes a header row plus one row per daily result. When the
// results carry Elapsed measurements an extra ElapsedNs column is added.
func WriteCSV(w io.Writer, results []sim.DayResult) error {
	withElapsed := len(results) > 0 && results[0].Elapsed != nil

	cw := csv.NewWriter(w)
	header := csvHeader
	if withElapsed {
		header = append(append([]string{}, csvHeader...), "ElapsedNs")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, res := range results {
		row := []string{
			strconv.Itoa(res.Day),
			strconv.Itoa(res.ActiveTableSize),
			strconv.Itoa(res.InactiveTableSize),
			strconv.Itoa(res.TotalRecords),
			strconv.Itoa(res.PercentNotExpired),
			strconv.FormatBool(res.TableSwapOccurred),
			string(res.TableSwapTrigger),
			strconv.Itoa(res.TableSwapCount),
			strconv.Itoa(res.RowsCopied),
			strconv.Itoa(res.NextSwapDeadline),
			strconv.Itoa(res.OldestActiveAgeDays),
			strconv.Itoa(res.OldestInactiveAgeDays),
			strconv.Itoa(res.NewestInactiveAgeDays),
		}
		if withElapsed {
			var ns int64
			if res.Elapsed != nil {
				ns = res.Elapsed.Nanoseconds()
			}
			row = append(row, strconv.FormatInt(ns, 10))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for day %d: %w", res.Day, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
