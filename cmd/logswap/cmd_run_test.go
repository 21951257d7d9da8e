package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dstolz/logswap/internal/sim"
)

// isolateEnv points HOME and the history directory at temp dirs so tests
// never touch the user's ~/.logswap.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	historyDir := t.TempDir()
	t.Setenv("LOGSWAP_HISTORY_DIR", historyDir)
	return historyDir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCmd_CSVToStdout(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t,
		"run",
		"--logs-per-day", "10",
		"--retention-days", "30",
		"--duration-days", "90",
		"--delete-threshold", "20",
		"--max-swap-interval", "7",
		"--csv", "-",
	)
	if err != nil {
		t.Fatalf("run --csv - error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 91 {
		t.Fatalf("csv output has %d lines, want 91", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Day,ActiveTableSize") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Day1") {
		t.Errorf("first data line missing Day1 trigger: %q", lines[1])
	}
}

func TestRunCmd_JSON(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t,
		"run", "--json",
		"--logs-per-day", "10",
		"--retention-days", "30",
		"--duration-days", "90",
		"--delete-threshold", "20",
		"--max-swap-interval", "7",
	)
	if err != nil {
		t.Fatalf("run --json error = %v", err)
	}

	var payload struct {
		Config  sim.Config      `json:"config"`
		Days    []sim.DayResult `json:"days"`
		Summary struct {
			Swaps int `json:"swaps"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(payload.Days) != 90 {
		t.Errorf("got %d days, want 90", len(payload.Days))
	}
	if payload.Summary.Swaps != 14 {
		t.Errorf("summary swaps = %d, want 14", payload.Summary.Swaps)
	}
	if payload.Days[0].TableSwapTrigger != sim.TriggerDay1 {
		t.Errorf("day 1 trigger = %q, want Day1", payload.Days[0].TableSwapTrigger)
	}
}

func TestRunCmd_InvalidConfig(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "run", "--logs-per-day", "0", "--retention-days", "30", "--max-swap-interval", "7")
	if err == nil {
		t.Fatal("run with zero logs-per-day succeeded")
	}
	if !strings.Contains(err.Error(), "logs_per_day") {
		t.Errorf("error does not name the bad field: %v", err)
	}
}

func TestRunCmd_SeededRunsMatch(t *testing.T) {
	isolateEnv(t)

	args := []string{
		"run", "--csv", "-",
		"--logs-per-day", "100",
		"--retention-days", "10",
		"--duration-days", "40",
		"--delete-threshold", "30",
		"--max-swap-interval", "5",
		"--max-deviation", "0.5",
		"--seed", "11",
	}
	a, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("first seeded run error = %v", err)
	}
	b, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("second seeded run error = %v", err)
	}
	if a != b {
		t.Error("two runs with the same seed produced different CSV")
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if payload["version"] != version {
		t.Errorf("version = %q, want %q", payload["version"], version)
	}
}
