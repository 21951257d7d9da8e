package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/dstolz/logswap/internal/store"
)

func saveScenarioRun(t *testing.T) string {
	t.Helper()
	out, _, err := execute(t,
		"run", "--json", "--save",
		"--logs-per-day", "10",
		"--retention-days", "30",
		"--duration-days", "90",
		"--delete-threshold", "20",
		"--max-swap-interval", "7",
	)
	if err != nil {
		t.Fatalf("run --save error = %v", err)
	}
	var payload struct {
		RunID string `json:"run_id"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if payload.RunID == "" {
		t.Fatal("run --save returned no run id")
	}
	return payload.RunID
}

func TestHistoryCmd(t *testing.T) {
	isolateEnv(t)
	id := saveScenarioRun(t)

	out, _, err := execute(t, "history", "--json")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var payload struct {
		Runs []store.RunMeta `json:"runs"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(payload.Runs) != 1 {
		t.Fatalf("history lists %d runs, want 1", len(payload.Runs))
	}
	if payload.Runs[0].ID != id {
		t.Errorf("listed id = %q, want %q", payload.Runs[0].ID, id)
	}
	if payload.Runs[0].Swaps != 14 {
		t.Errorf("listed swaps = %d, want 14", payload.Runs[0].Swaps)
	}
}

func TestHistoryCmd_Empty(t *testing.T) {
	isolateEnv(t)

	out, _, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "No saved runs") {
		t.Errorf("empty history output = %q", out)
	}
}

func TestShowCmd(t *testing.T) {
	isolateEnv(t)
	id := saveScenarioRun(t)

	out, _, err := execute(t, "show", id)
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "Day1") {
		t.Errorf("show output missing Day1 trigger:\n%s", out)
	}
	if !strings.Contains(out, "days simulated") {
		t.Errorf("show output missing summary:\n%s", out)
	}
}

func TestShowCmd_Missing(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "show", "deadbeef0000")
	if err == nil {
		t.Fatal("show of missing run succeeded")
	}
}

func TestExportCmd(t *testing.T) {
	isolateEnv(t)
	id := saveScenarioRun(t)

	out, _, err := execute(t, "export", id)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 91 {
		t.Fatalf("exported csv has %d lines, want 91", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Day,") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}
