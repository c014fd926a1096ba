package commands

import (
	"encoding/json"

	"resp-analyzer/internal/pipeline"
	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"

	"github.com/spf13/cobra"
)

var simulateFlags struct {
	group  string
	min    float64
	max    float64
	lambda float64
	size   int
	seed   uint64
	json   bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate the on-time probability for a single Min / Max ratio pair",
	Long: `Fits a Beta-PERT distribution on [min, max] with the most likely ratio fixed at 1.0 and
reports the share of Monte-Carlo samples that finish on time (ratio <= 1.0).
Omitting --min or --max yields an undefined probability.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := simulation.Config{Lambda: cfg.Lambda, Size: cfg.SimulationSize, Seed: cfg.Seed}
		flags := cmd.Flags()
		if flags.Changed("lambda") {
			c.Lambda = simulateFlags.lambda
		}
		if flags.Changed("size") {
			c.Size = simulateFlags.size
		}
		if flags.Changed("seed") {
			c.Seed = simulateFlags.seed
		}
		if err := (pipeline.Options{MinActivities: 1, Simulate: true, Simulation: c}).Validate(); err != nil {
			return err
		}

		row := stats.Summary{GroupKey: stats.GroupKey{Group: simulateFlags.group}}
		if flags.Changed("min") {
			row.Min = stats.Known(simulateFlags.min)
		}
		if flags.Changed("max") {
			row.Max = stats.Known(simulateFlags.max)
		}

		results, err := simulation.NewEngine(c).Run(cmd.Context(), []stats.Summary{row})
		if err != nil {
			return err
		}

		if simulateFlags.json {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		return renderResults(cmd.OutOrStdout(), results)
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.group, "group", "", "label of the RESP group")
	f.Float64Var(&simulateFlags.min, "min", 0, "Min ratio")
	f.Float64Var(&simulateFlags.max, "max", 0, "Max ratio")
	f.Float64Var(&simulateFlags.lambda, "lambda", simulation.DefaultLambda, "PERT shape parameter")
	f.IntVar(&simulateFlags.size, "size", simulation.DefaultSize, "Monte-Carlo samples")
	f.Uint64Var(&simulateFlags.seed, "seed", 0, "random seed (0 = time based)")
	f.BoolVar(&simulateFlags.json, "json", false, "print the result as JSON")

	rootCmd.AddCommand(simulateCmd)
}
