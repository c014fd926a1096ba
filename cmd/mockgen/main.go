package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"resp-analyzer/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Distribution to use: uniform, weibull")
	outDir := flag.String("out", "./.cache", "Output directory for mock files")
	count := flag.Int("count", 120, "Number of activities per RESP group")
	groups := flag.String("groups", "CON,ENG,PROC", "Comma separated RESP groups")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Count:        *count,
		Groups:       strings.Split(*groups, ","),
		Seed:         *seed,
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Count: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Count, *outDir)

	table := engine.Generate(cfg)

	name := fmt.Sprintf("schedule_%s_%s", cfg.Scenario, cfg.Distribution)
	path, err := engine.Save(*outDir, name, table)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %s\n", path)
}
