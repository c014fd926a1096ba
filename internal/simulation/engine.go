package simulation

import (
	"context"
	"math/rand/v2"
	"runtime"
	"time"

	"resp-analyzer/internal/stats"

	"golang.org/x/sync/errgroup"
)

// Defaults for the PERT Monte-Carlo estimator.
const (
	DefaultLambda = 4.0
	DefaultSize   = 10000
	// OnTimeMode is the most-likely ratio: actual equals planned.
	OnTimeMode = 1.0
)

// Method tells how a probability was obtained.
type Method string

const (
	MethodMonteCarlo Method = "monte_carlo"
	MethodDegenerate Method = "degenerate" // min == max
	MethodBounded    Method = "bounded"    // the whole range sits on one side of 1.0
	MethodSkipped    Method = "skipped"
)

// Config holds the estimator parameters.
type Config struct {
	Lambda float64 `json:"lambda" validate:"gt=0"`
	Size   int     `json:"size" validate:"min=1"`
	// Seed makes runs reproducible. Zero seeds from the clock.
	Seed uint64 `json:"seed,omitempty"`
}

// DefaultConfig returns lambda 4 and 10,000 samples.
func DefaultConfig() Config {
	return Config{Lambda: DefaultLambda, Size: DefaultSize}
}

// Result is a ratio summary extended with the on-time probability.
type Result struct {
	stats.Summary
	ProbabilityOnTime stats.Ratio `json:"probability_on_time"`
	Expected          stats.Ratio `json:"expected_probability"` // analytic CDF at 1.0
	Method            Method      `json:"method"`
	Reason            string      `json:"reason,omitempty"`
}

// Engine performs the Beta-PERT Monte-Carlo estimation.
type Engine struct {
	cfg  Config
	seed uint64
}

func NewEngine(cfg Config) *Engine {
	if cfg.Lambda <= 0 {
		cfg.Lambda = DefaultLambda
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Engine{cfg: cfg, seed: seed}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Run estimates every row independently. Rows are evaluated concurrently; the output keeps
// input order. A row without usable bounds yields a null probability and never fails the batch.
func (e *Engine) Run(ctx context.Context, rows []stats.Summary) ([]Result, error) {
	results := make([]Result, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Estimate(i, row)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Estimate computes the on-time probability for one row. The index selects the row's own
// random stream.
func (e *Engine) Estimate(index int, row stats.Summary) Result {
	res := Result{Summary: row}

	if !row.Min.Valid || !row.Max.Valid {
		res.Method = MethodSkipped
		res.Reason = "min or max ratio undefined"
		return res
	}

	lo, hi := row.Min.Value, row.Max.Value

	switch {
	case lo == hi:
		p := 0.0
		if lo <= OnTimeMode {
			p = 1
		}
		res.ProbabilityOnTime = stats.Known(p)
		res.Expected = stats.Known(p)
		res.Method = MethodDegenerate
		return res
	case lo > hi:
		res.Method = MethodSkipped
		res.Reason = "min ratio exceeds max ratio"
		return res
	case hi <= OnTimeMode:
		res.ProbabilityOnTime = stats.Known(1)
		res.Expected = stats.Known(1)
		res.Method = MethodBounded
		return res
	case lo > OnTimeMode:
		res.ProbabilityOnTime = stats.Known(0)
		res.Expected = stats.Known(0)
		res.Method = MethodBounded
		return res
	}

	pert, err := NewPERT(lo, OnTimeMode, hi, e.cfg.Lambda, rand.NewPCG(e.seed, uint64(index)))
	if err != nil {
		res.Method = MethodSkipped
		res.Reason = err.Error()
		return res
	}

	onTime := 0
	for i := 0; i < e.cfg.Size; i++ {
		if pert.Rand() <= OnTimeMode {
			onTime++
		}
	}

	res.ProbabilityOnTime = stats.Known(stats.Round4(float64(onTime) / float64(e.cfg.Size)))
	res.Expected = stats.Known(stats.Round4(pert.CDF(OnTimeMode)))
	res.Method = MethodMonteCarlo
	return res
}
