package tui

import (
	"strings"
	"testing"
)

func TestRenderSummaryAligns(t *testing.T) {
	out := RenderSummary([]SummaryRow{
		{Label: "Converted", Value: "3"},
		{Label: "Skipped (not found)", Value: "12"},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(out, "Skipped (not found) | 12") {
		t.Fatalf("summary = %q", out)
	}
	if !strings.Contains(out, "Converted"+strings.Repeat(" ", 10)+" | 3") {
		t.Fatalf("label not padded: %q", out)
	}
}
