// Package pipeline runs the schedule analysis end to end:
// normalize columns, filter and clamp records, aggregate per group and, optionally,
// estimate on-time probabilities with a Beta-PERT Monte-Carlo simulation.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"resp-analyzer/internal/schedule"
	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WarningNoRespData is shown when a dataset had to be skipped.
const WarningNoRespData = "No valid RESP data found in uploaded file."

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options configures one analysis run.
type Options struct {
	MinActivities int               `json:"min_activities" validate:"min=1"`
	ByLocation    bool              `json:"by_location"`
	Simulate      bool              `json:"simulate"`
	Simulation    simulation.Config `json:"simulation" validate:"-"`
}

// DefaultOptions returns the defaults of the simple (non-location) flow.
func DefaultOptions() Options {
	return Options{
		MinActivities: stats.DefaultMinActivities,
		Simulation:    simulation.DefaultConfig(),
	}
}

// WithDefaults fills unset (zero) parameters with their defaults.
func (o Options) WithDefaults() Options {
	if o.MinActivities == 0 {
		o.MinActivities = stats.DefaultMinActivities
		if o.ByLocation {
			o.MinActivities = stats.DefaultLocationMinActivities
		}
	}
	if o.Simulation.Lambda == 0 {
		o.Simulation.Lambda = simulation.DefaultLambda
	}
	if o.Simulation.Size == 0 {
		o.Simulation.Size = simulation.DefaultSize
	}
	return o
}

// Validate checks the scalar parameters.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if o.Simulate {
		if err := validate.Struct(o.Simulation); err != nil {
			return fmt.Errorf("invalid simulation options: %w", err)
		}
	}
	return nil
}

// Dataset is one named table handed over by a loader.
type Dataset struct {
	Name  string
	Table *schedule.Table
}

// Report is the outcome of analysing one dataset.
type Report struct {
	RunID      string                 `json:"run_id"`
	Source     string                 `json:"source"`
	Skipped    bool                   `json:"skipped"`
	Columns    schedule.ColumnMapping `json:"columns"`
	Filter     schedule.FilterStats   `json:"filter"`
	Summary    []stats.Summary        `json:"summary"`
	Simulation []simulation.Result    `json:"simulation,omitempty"`
	Warnings   []string               `json:"warnings,omitempty"`
}

// Analyze runs the pipeline on a single dataset. An unusable dataset is not an error:
// the report is marked as skipped and carries a warning.
func Analyze(ctx context.Context, ds Dataset, opts Options) (*Report, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if ds.Table == nil {
		return nil, fmt.Errorf("dataset %q has no table", ds.Name)
	}

	rep := &Report{
		RunID:   uuid.NewString(),
		Source:  ds.Name,
		Summary: []stats.Summary{},
	}
	logger := log.With().Str("run_id", rep.RunID).Str("source", ds.Name).Logger()

	// 1. Normalize columns
	normalized, mapping, err := schedule.Normalize(ds.Table, schedule.NormalizeOptions{ByLocation: opts.ByLocation})
	rep.Columns = mapping
	if err != nil {
		if errors.Is(err, schedule.ErrUnusableDataset) {
			logger.Warn().Err(err).Msg("Skipping dataset")
			rep.Skipped = true
			rep.Warnings = append(rep.Warnings, WarningNoRespData, err.Error())
			return rep, nil
		}
		return nil, err
	}
	for _, c := range mapping.Conflicts {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("Column %q ignored: its canonical field is already mapped.", c))
	}

	// 2. Filter and clamp
	records, fs := schedule.Clean(normalized)
	rep.Filter = fs
	logger.Debug().
		Int("input", fs.Input).
		Int("kept", fs.Output).
		Int("clamped", fs.Clamped).
		Msg("Records cleaned")

	// 3. Aggregate
	rep.Summary = stats.Aggregate(records, stats.AggregateOptions{
		MinActivities: opts.MinActivities,
		ByLocation:    opts.ByLocation,
	})
	if len(rep.Summary) == 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("No RESP group has at least %d completed activities.", opts.MinActivities))
	}

	// 4. Simulate
	if opts.Simulate && len(rep.Summary) > 0 {
		engine := simulation.NewEngine(opts.Simulation)
		results, err := engine.Run(ctx, rep.Summary)
		if err != nil {
			return nil, fmt.Errorf("simulation failed: %w", err)
		}
		rep.Simulation = results
	}

	logger.Info().
		Int("groups", len(rep.Summary)).
		Bool("simulated", opts.Simulate).
		Msg("Dataset analyzed")

	return rep, nil
}

// AnalyzeAll processes each dataset independently. A skipped dataset never stops the batch;
// only invalid options or cancellation abort it.
func AnalyzeAll(ctx context.Context, datasets []Dataset, opts Options) ([]*Report, error) {
	reports := make([]*Report, 0, len(datasets))
	for _, ds := range datasets {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rep, err := Analyze(ctx, ds, opts)
		if err != nil {
			return reports, fmt.Errorf("analyze %s: %w", ds.Name, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
