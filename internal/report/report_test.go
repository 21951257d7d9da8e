package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/dstolz/logswap/internal/sim"
)

func runScenario(t *testing.T, opts ...sim.Option) []sim.DayResult {
	t.Helper()
	s, err := sim.New(sim.Config{
		LogsPerDay:                10,
		LogRetentionDays:          30,
		SimulationDurationDays:    90,
		LogDeleteThresholdPercent: 20,
		MaxSwapIntervalDays:       7,
	}, opts...)
	if err != nil {
		t.Fatalf("sim.New() error = %v", err)
	}
	return s.Run()
}

func TestWriteCSV(t *testing.T) {
	results := runScenario(t)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 91 {
		t.Fatalf("got %d rows, want 91 (header + 90 days)", len(rows))
	}
	if rows[0][0] != "Day" || rows[0][len(rows[0])-1] != "NewestInactiveAgeDays" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if len(rows[0]) != 13 {
		t.Errorf("header has %d columns, want 13", len(rows[0]))
	}

	// Spot-check the forced first-day swap row.
	day1 := rows[1]
	if day1[0] != "1" || day1[5] != "true" || day1[6] != "Day1" {
		t.Errorf("day 1 row = %v, want swap on trigger Day1", day1)
	}
}

func TestWriteCSV_ElapsedColumn(t *testing.T) {
	results := runScenario(t, sim.WithTiming())

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if got := rows[0][len(rows[0])-1]; got != "ElapsedNs" {
		t.Errorf("last header column = %q, want ElapsedNs", got)
	}
	if len(rows[1]) != 14 {
		t.Errorf("data row has %d columns, want 14", len(rows[1]))
	}
}

func TestRenderTable(t *testing.T) {
	results := runScenario(t)

	var buf bytes.Buffer
	if err := RenderTable(&buf, results); err != nil {
		t.Fatalf("RenderTable() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 91 {
		t.Fatalf("got %d lines, want 91", len(lines))
	}
	if !strings.Contains(lines[0], "TRIGGER") {
		t.Errorf("header line missing TRIGGER column: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Day1") {
		t.Errorf("first data line missing Day1 trigger: %q", lines[1])
	}
}

func TestSummarize(t *testing.T) {
	results := []sim.DayResult{
		{Day: 1, ActiveTableSize: 0, InactiveTableSize: 10, TotalRecords: 10, TableSwapOccurred: true, TableSwapTrigger: sim.TriggerDay1, TableSwapCount: 1},
		{Day: 2, ActiveTableSize: 10, InactiveTableSize: 10, TotalRecords: 20},
		{Day: 3, ActiveTableSize: 20, InactiveTableSize: 10, TotalRecords: 30, TableSwapOccurred: true, TableSwapTrigger: sim.TriggerMaxInterval, TableSwapCount: 2, RowsCopied: 30},
		{Day: 4, ActiveTableSize: 5, InactiveTableSize: 20, TotalRecords: 25, TableSwapOccurred: true, TableSwapTrigger: sim.TriggerDeleteThreshold, TableSwapCount: 1, RowsCopied: 6},
	}

	s := Summarize(results)
	if s.Days != 4 {
		t.Errorf("Days = %d, want 4", s.Days)
	}
	if s.Swaps != 3 || s.ThresholdSwaps != 1 || s.IntervalSwaps != 1 {
		t.Errorf("swap counts = %d/%d/%d, want 3/1/1", s.Swaps, s.ThresholdSwaps, s.IntervalSwaps)
	}
	if s.TotalRowsCopied != 36 {
		t.Errorf("TotalRowsCopied = %d, want 36", s.TotalRowsCopied)
	}
	if s.MeanRowsPerSwap != 12 {
		t.Errorf("MeanRowsPerSwap = %d, want 12", s.MeanRowsPerSwap)
	}
	if s.PeakTotalRecords != 30 || s.PeakActiveSize != 20 || s.PeakInactiveSize != 20 {
		t.Errorf("peaks = %d/%d/%d, want 30/20/20", s.PeakTotalRecords, s.PeakActiveSize, s.PeakInactiveSize)
	}
	if s.FinalTotal != 25 || s.FinalActiveSize != 5 || s.FinalInactive != 20 {
		t.Errorf("finals = %d/%d/%d, want 25/5/20", s.FinalTotal, s.FinalActiveSize, s.FinalInactive)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero value", s)
	}
}

func TestElapsedDoesNotChangeRows(t *testing.T) {
	// Same scenario with and without timing must agree on every
	// simulated column.
	plain := runScenario(t)
	timed := runScenario(t, sim.WithTiming())

	for i := range plain {
		timed[i].Elapsed = nil
	}
	var a, b bytes.Buffer
	if err := WriteCSV(&a, plain); err != nil {
		t.Fatal(err)
	}
	if err := WriteCSV(&b, timed); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("timing changed the exported simulated values")
	}
}
