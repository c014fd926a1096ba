package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"resp-analyzer/internal/pipeline"
	"resp-analyzer/internal/schedule"
	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"
)

func renderReport(w io.Writer, rep *pipeline.Report, byLocation bool) error {
	fmt.Fprintf(w, "%s (%d of %d rows used)\n", rep.Source, rep.Filter.Output, rep.Filter.Input)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	cols := []string{schedule.FieldGroup}
	if byLocation {
		cols = append(cols, schedule.FieldRegion, schedule.FieldDivision, schedule.FieldLocation)
	}
	cols = append(cols, "Activities", "Min", "Most Likely", "Max")
	if len(rep.Simulation) > 0 {
		cols = append(cols, "P(on time)")
	}
	fmt.Fprintln(tw, strings.Join(cols, "\t"))

	for i, s := range rep.Summary {
		cells := keyCells(s.GroupKey, byLocation)
		cells = append(cells, fmt.Sprint(s.Activities), s.Min.String(), s.MostLikely.String(), s.Max.String())
		if i < len(rep.Simulation) {
			cells = append(cells, rep.Simulation[i].ProbabilityOnTime.String())
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func renderResults(w io.Writer, results []simulation.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "G - Resp\tMin\tMax\tMethod\tP(on time)\tExpected")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Group, r.Min, r.Max, r.Method, r.ProbabilityOnTime, r.Expected)
	}
	return tw.Flush()
}

func keyCells(k stats.GroupKey, byLocation bool) []string {
	if !byLocation {
		return []string{k.Group}
	}
	return []string{k.Group, k.Region, k.Division, k.Location}
}
