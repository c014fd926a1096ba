package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"resp-analyzer/internal/schedule"
	"resp-analyzer/internal/workbook"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "chaos" or "drift"
	Distribution string // "uniform" or "weibull"
	Count        int    // activities per RESP group
	Groups       []string
	Seed         uint64
}

// Columns mimic a P6 copy/paste, including padding and placeholder columns the normalizer must cope with.
var Columns = []string{
	"Activity ID",
	"Activity Name",
	" Original Duration(d) ",
	"Actual Duration(d)",
	"Activity Status",
	"G - Resp",
	"Resp6",
	"Resp Discipline",
	"Region",
	"Division",
	"Location",
}

var (
	regions   = []string{"North", "South"}
	divisions = []string{"Civil", "Structural", "MEP"}
	locations = []string{"Site A", "Site B"}
)

// Generate builds a synthetic schedule table.
func Generate(cfg GeneratorConfig) *schedule.Table {
	if len(cfg.Groups) == 0 {
		cfg.Groups = []string{"CON", "ENG", "PROC"}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewPCG(seed, 0xC0FFEE))

	rows := make([][]string, 0, cfg.Count*len(cfg.Groups))
	for g, group := range cfg.Groups {
		for i := 0; i < cfg.Count; i++ {
			id := fmt.Sprintf("A%d%04d", g+1, i+1)

			// 1. Planned duration in whole days
			od := float64(1 + rng.IntN(40))

			// 2. Performance ratio
			ratio := sampleRatio(cfg, rng, i)

			// 3. Status
			status := schedule.StatusCompleted
			actual := strconv.FormatFloat(math.Round(od*ratio), 'f', -1, 64)
			switch p := rng.Float64(); {
			case p < 0.05:
				status = "Not Started"
				actual = ""
			case p < 0.20:
				status = "In Progress"
				actual = strconv.FormatFloat(math.Round(od*ratio*rng.Float64()), 'f', -1, 64)
			}

			rows = append(rows, []string{
				id,
				fmt.Sprintf("%s activity %d", group, i+1),
				strconv.FormatFloat(od, 'f', -1, 64),
				actual,
				status,
				"",
				group,
				"",
				regions[rng.IntN(len(regions))],
				divisions[rng.IntN(len(divisions))],
				locations[rng.IntN(len(locations))],
			})
		}
	}

	return schedule.NewTable(Columns, rows)
}

func sampleRatio(cfg GeneratorConfig, rng *rand.Rand, i int) float64 {
	// Mild: centered slightly above 1.0
	k, lambda := 4.0, 1.1
	switch cfg.Scenario {
	case "chaos":
		k = 1.5
	case "drift":
		progress := float64(i) / float64(cfg.Count)
		lambda = 1.0 + 0.5*progress
	}

	var ratio float64
	if cfg.Distribution == "weibull" {
		ratio = weibullSample(rng, k, lambda)
	} else {
		ratio = 0.6 + rng.Float64()*0.8
		if cfg.Scenario == "drift" {
			ratio *= lambda
		}
	}

	if cfg.Scenario == "chaos" && rng.Float64() < 0.1 {
		ratio *= 3 // overruns beyond the clamp
	}
	return ratio
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

// Save writes the table as <name>.xlsx into outDir and returns the path.
func Save(outDir, name string, t *schedule.Table) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, name+".xlsx")
	if err := workbook.SaveTable(path, "TASK", t); err != nil {
		return "", err
	}
	return path, nil
}
