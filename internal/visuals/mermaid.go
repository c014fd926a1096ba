package visuals

import (
	"fmt"
	"math"
	"strings"

	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"
)

// GenerateRatioChart creates a Mermaid xychart-beta with the Min / Most Likely / Max ratios per group.
func GenerateRatioChart(summary []stats.Summary) string {
	if len(summary) == 0 {
		return ""
	}

	var labels, mins, likely, maxes []string
	maxY := 2.0

	for _, s := range summary {
		labels = append(labels, fmt.Sprintf("%q", label(s.GroupKey)))
		mins = append(mins, ratioPoint(s.Min))
		likely = append(likely, ratioPoint(s.MostLikely))
		maxes = append(maxes, ratioPoint(s.Max))
		if s.Max.Valid && s.Max.Value > maxY {
			maxY = s.Max.Value
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Schedule Performance Ratios (Actual / Original Duration)\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Ratio\" 0 --> %.1f\n", math.Ceil(maxY*10)/10))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(mins, ", ")))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(likely, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(maxes, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateProbabilityChart creates a Mermaid bar chart of the on-time probability per group.
// Groups without a probability are plotted at zero.
func GenerateProbabilityChart(results []simulation.Result) string {
	if len(results) == 0 {
		return ""
	}

	var labels, values []string
	for _, r := range results {
		labels = append(labels, fmt.Sprintf("%q", label(r.GroupKey)))
		values = append(values, ratioPoint(r.ProbabilityOnTime))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Probability of Finishing On Time\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Probability\" 0 --> 1\n")
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func label(k stats.GroupKey) string {
	parts := []string{k.Group}
	for _, p := range []string{k.Region, k.Division, k.Location} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ReplaceAll(strings.Join(parts, " / "), `"`, "'")
}

func ratioPoint(r stats.Ratio) string {
	if !r.Valid {
		return "0"
	}
	return fmt.Sprintf("%.4f", r.Value)
}
