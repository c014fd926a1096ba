package visuals

import (
	"strings"
	"testing"

	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"
)

func TestGenerateRatioChart(t *testing.T) {
	if GenerateRatioChart(nil) != "" {
		t.Error("Expected empty chart for no data")
	}

	chart := GenerateRatioChart([]stats.Summary{
		{GroupKey: stats.GroupKey{Group: "CON"}, Min: stats.Known(0.8), MostLikely: stats.Known(1.05), Max: stats.Known(2.45)},
		{GroupKey: stats.GroupKey{Group: "ENG", Location: "Site \"A\""}, Min: stats.Known(0.9), MostLikely: stats.Unknown, Max: stats.Known(1.2)},
	})

	for _, want := range []string{
		"xychart-beta",
		`x-axis ["CON", "ENG / Site 'A'"]`,
		"y-axis \"Ratio\" 0 --> 2.5",
		"line [0.8000, 0.9000]",
		"bar [1.0500, 0]",
		"line [2.4500, 1.2000]",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("Expected chart to contain %q, got:\n%s", want, chart)
		}
	}
}

func TestGenerateProbabilityChart(t *testing.T) {
	chart := GenerateProbabilityChart([]simulation.Result{
		{Summary: stats.Summary{GroupKey: stats.GroupKey{Group: "CON"}}, ProbabilityOnTime: stats.Known(0.45)},
		{Summary: stats.Summary{GroupKey: stats.GroupKey{Group: "ENG"}}},
	})

	if !strings.Contains(chart, "bar [0.4500, 0]") {
		t.Errorf("Expected probabilities in chart, got:\n%s", chart)
	}
	if !strings.HasPrefix(chart, "```mermaid") {
		t.Errorf("Expected a fenced mermaid block, got:\n%s", chart)
	}
}
