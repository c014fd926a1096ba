package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"resp-analyzer/internal/pipeline"
	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/visuals"
	"resp-analyzer/internal/workbook"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	minActivities int
	byLocation    bool
	simulate      bool
	lambda        float64
	size          int
	seed          uint64
	sheet         string
	out           string
	export        bool
	chart         bool
	json          bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE.xlsx [FILE.xlsx...]",
	Short: "Compute Min / Most Likely / Max ratios per RESP group",
	Long: `Copy and paste the schedule from P6 into an .xlsx file, and make sure it includes the columns:
  - Original Duration
  - Actual Duration
  - Activity Status
  - Resp (this one could be project specific, like Resp6)
For --by-location the columns Region, Division and Location are required as well.

How the ratios are calculated (actual durations are capped at 2x the original duration):
  - Min:         sum(Actual Duration) / sum(Original Duration) of activities that finished early (1 if none)
  - Most Likely: sum(Actual Duration) / sum(Original Duration) of all completed activities
  - Max:         sum(Actual Duration) / sum(Original Duration) of activities that finished late (2 if none)

Every file is processed independently; a file without usable RESP data is skipped with a warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts := pipeline.Options{
		MinActivities: cfg.MinActivities,
		ByLocation:    analyzeFlags.byLocation,
		Simulate:      analyzeFlags.simulate,
		Simulation: simulation.Config{
			Lambda: cfg.Lambda,
			Size:   cfg.SimulationSize,
			Seed:   cfg.Seed,
		},
	}
	if analyzeFlags.byLocation {
		opts.MinActivities = cfg.LocationMinActivities
	}
	flags := cmd.Flags()
	if flags.Changed("min-activities") {
		opts.MinActivities = analyzeFlags.minActivities
	}
	if flags.Changed("lambda") {
		opts.Simulation.Lambda = analyzeFlags.lambda
	}
	if flags.Changed("size") {
		opts.Simulation.Size = analyzeFlags.size
	}
	if flags.Changed("seed") {
		opts.Simulation.Seed = analyzeFlags.seed
	}
	if err := opts.WithDefaults().Validate(); err != nil {
		return err
	}

	datasets := make([]pipeline.Dataset, 0, len(args))
	for _, path := range args {
		table, err := workbook.Load(path, analyzeFlags.sheet)
		if err != nil {
			// One unreadable file must not hide the results of the others.
			log.Error().Err(err).Str("path", path).Msg("Failed to load workbook")
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", path, err)
			continue
		}
		datasets = append(datasets, pipeline.Dataset{Name: path, Table: table})
	}

	reports, err := pipeline.AnalyzeAll(cmd.Context(), datasets, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}

	for _, rep := range reports {
		for _, w := range rep.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %s\n", rep.Source, w)
		}
		if rep.Skipped {
			continue
		}

		if !analyzeFlags.json {
			if err := renderReport(out, rep, opts.ByLocation); err != nil {
				return err
			}
			if analyzeFlags.chart || cfg.EnableMermaidCharts {
				fmt.Fprintln(out, visuals.GenerateRatioChart(rep.Summary))
				if chart := visuals.GenerateProbabilityChart(rep.Simulation); chart != "" {
					fmt.Fprintln(out, chart)
				}
			}
		}

		if analyzeFlags.export && len(rep.Summary) > 0 {
			path := exportPath(rep.Source, len(reports) > 1)
			exp := workbook.Export{Summary: rep.Summary, Simulation: rep.Simulation, ByLocation: opts.ByLocation}
			if err := exp.Save(path); err != nil {
				return err
			}
			log.Info().Str("path", path).Str("run_id", rep.RunID).Msg("Summary exported")
		}
	}

	return nil
}

// exportPath resolves the summary file for a dataset. Batches get one file per input.
func exportPath(source string, batch bool) string {
	if analyzeFlags.out != "" && !batch {
		return analyzeFlags.out
	}

	dir := cfg.OutputDir
	if analyzeFlags.out != "" {
		dir = analyzeFlags.out
	}
	if !batch {
		return filepath.Join(dir, workbook.DefaultFileName)
	}
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(dir, stem+"-"+workbook.DefaultFileName)
}

func init() {
	f := analyzeCmd.Flags()
	f.IntVar(&analyzeFlags.minActivities, "min-activities", 50, "minimum # of completed activities per RESP group (default 5 with --by-location)")
	f.BoolVar(&analyzeFlags.byLocation, "by-location", false, "split RESP groups by Region, Division and Location")
	f.BoolVar(&analyzeFlags.simulate, "simulate", false, "estimate the on-time probability with a Beta-PERT Monte-Carlo simulation")
	f.Float64Var(&analyzeFlags.lambda, "lambda", simulation.DefaultLambda, "PERT shape parameter")
	f.IntVar(&analyzeFlags.size, "size", simulation.DefaultSize, "Monte-Carlo samples per group")
	f.Uint64Var(&analyzeFlags.seed, "seed", 0, "random seed (0 = time based)")
	f.StringVar(&analyzeFlags.sheet, "sheet", "", "sheet to read (default: first sheet)")
	f.StringVarP(&analyzeFlags.out, "out", "o", "", "summary file (single input) or directory (several inputs)")
	f.BoolVar(&analyzeFlags.export, "export", true, "write the summary workbook")
	f.BoolVar(&analyzeFlags.chart, "chart", false, "print Mermaid charts")
	f.BoolVar(&analyzeFlags.json, "json", false, "print reports as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
