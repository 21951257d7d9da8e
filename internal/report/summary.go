package report

import (
	"fmt"
	"io"

	"github.com/dstolz/logswap/internal/sim"
)

// Summary aggregates a run into the figures an operator sizes hardware by:
// how big the tables get, how often swaps fire, and how much row copying
// the swaps cost.
type Summary struct {
	Days             int `json:"days"`
	Swaps            int `json:"swaps"`
	ThresholdSwaps   int `json:"threshold_swaps"`
	IntervalSwaps    int `json:"interval_swaps"`
	TotalRowsCopied  int `json:"total_rows_copied"`
	MeanRowsPerSwap  int `json:"mean_rows_per_swap"`
	PeakTotalRecords int `json:"peak_total_records"`
	PeakActiveSize   int `json:"peak_active_size"`
	PeakInactiveSize int `json:"peak_inactive_size"`
	FinalActiveSize  int `json:"final_active_size"`
	FinalInactive    int `json:"final_inactive_size"`
	FinalTotal       int `json:"final_total_records"`
}

// Summarize computes the Summary for a completed run. An empty result set
// yields a zero Summary.
func Summarize(results []sim.DayResult) Summary {
	var s Summary
	s.Days = len(results)

	for _, res := range results {
		if res.TableSwapOccurred {
			s.Swaps++
			s.TotalRowsCopied += res.RowsCopied
		}
		switch res.TableSwapTrigger {
		case sim.TriggerDeleteThreshold:
			s.ThresholdSwaps++
		case sim.TriggerMaxInterval:
			s.IntervalSwaps++
		}
		if res.TotalRecords > s.PeakTotalRecords {
			s.PeakTotalRecords = res.TotalRecords
		}
		if res.ActiveTableSize > s.PeakActiveSize {
			s.PeakActiveSize = res.ActiveTableSize
		}
		if res.InactiveTableSize > s.PeakInactiveSize {
			s.PeakInactiveSize = res.InactiveTableSize
		}
	}

	if s.Swaps > 0 {
		s.MeanRowsPerSwap = s.TotalRowsCopied / s.Swaps
	}
	if s.Days > 0 {
		last := results[len(results)-1]
		s.FinalActiveSize = last.ActiveTableSize
		s.FinalInactive = last.InactiveTableSize
		s.FinalTotal = last.TotalRecords
	}
	return s
}

// Render writes the summary as human-readable lines.
func (s Summary) Render(w io.Writer) {
	fmt.Fprintf(w, "days simulated:     %d\n", s.Days)
	fmt.Fprintf(w, "swaps:              %d (threshold %d, interval %d)\n", s.Swaps, s.ThresholdSwaps, s.IntervalSwaps)
	fmt.Fprintf(w, "rows copied:        %d (mean %d per swap)\n", s.TotalRowsCopied, s.MeanRowsPerSwap)
	fmt.Fprintf(w, "peak records:       %d (active %d, inactive %d)\n", s.PeakTotalRecords, s.PeakActiveSize, s.PeakInactiveSize)
	fmt.Fprintf(w, "final records:      %d (active %d, inactive %d)\n", s.FinalTotal, s.FinalActiveSize, s.FinalInactive)
}
