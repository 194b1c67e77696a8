package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"convertts/internal/runner"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestScanCommand(t *testing.T) {
	root := t.TempDir()
	for name, size := range map[string]int{"movie.ts": 2048, "inproc-stale.ts": 10, "notes.txt": 1} {
		if err := os.WriteFile(filepath.Join(root, name), make([]byte, size), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "movie.mp4"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := execute(t, "scan", root, filepath.Join(root, "missing"))

	for _, want := range []string{
		"Queue (1 of 4 files)",
		filepath.Join(root, "movie.ts"),
		"exists",
		"Files left in process",
		"inproc-stale.ts",
		"missing is not a valid directory.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scan output missing %q:\n%s", want, out)
		}
	}
}

func TestConvertWithNothingQueued(t *testing.T) {
	out := execute(t, t.TempDir())
	if !strings.Contains(out, "Number of files = 0") {
		t.Fatalf("output = %q", out)
	}
}

func TestSummaryRows(t *testing.T) {
	rows := summaryRows(runner.Summary{Queued: 3, Converted: 1, Dropped: 2, BytesIn: 2000, BytesOut: 500})
	values := map[string]string{}
	for _, r := range rows {
		values[r.Label] = r.Value
	}
	if values["Not started"] != "2" {
		t.Fatalf("rows = %+v", rows)
	}
	if values["Space saved"] != "1.5 kB" {
		t.Fatalf("space saved = %q", values["Space saved"])
	}

	rows = summaryRows(runner.Summary{Converted: 1, BytesIn: 100, BytesOut: 300})
	found := false
	for _, r := range rows {
		if r.Label == "Space grown" && r.Value == "200 B" {
			found = true
		}
	}
	if !found {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable("Title", []string{"A", "B"}, [][]string{{"1"}, {"2", "two"}}, 1)
	for _, want := range []string{"Title", "A", "two"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
