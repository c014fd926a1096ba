package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"resp-analyzer/internal/pipeline"
	"resp-analyzer/internal/simulation"
	"resp-analyzer/internal/stats"
	"resp-analyzer/internal/visuals"
	"resp-analyzer/internal/workbook"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleAnalyzeSchedule(ctx context.Context, _ *mcpsdk.CallToolRequest, in AnalyzeScheduleInput) (*mcpsdk.CallToolResult, any, error) {
	env, err := s.analyzeSchedule(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := env.toResult()
	return res, nil, err
}

func (s *Server) handleSimulateRatios(ctx context.Context, _ *mcpsdk.CallToolRequest, in SimulateRatiosInput) (*mcpsdk.CallToolResult, any, error) {
	env, err := s.simulateRatios(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	res, err := env.toResult()
	return res, nil, err
}

func (s *Server) analyzeSchedule(ctx context.Context, in AnalyzeScheduleInput) (ResponseEnvelope, error) {
	if in.Path == "" {
		return ResponseEnvelope{}, fmt.Errorf("path is required")
	}

	table, err := workbook.Load(in.Path, in.Sheet)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	opts := s.defaultOptions(in.ByLocation)
	opts.ByLocation = in.ByLocation
	opts.Simulate = in.Simulate
	if in.MinActivities != 0 {
		opts.MinActivities = in.MinActivities
	}
	if in.Lambda != 0 {
		opts.Simulation.Lambda = in.Lambda
	}
	if in.Size != 0 {
		opts.Simulation.Size = in.Size
	}
	if in.Seed != 0 {
		opts.Simulation.Seed = in.Seed
	}

	rep, err := pipeline.Analyze(ctx, pipeline.Dataset{Name: filepath.Base(in.Path), Table: table}, opts)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	env := WrapResponse(rep, rep.Warnings)
	if rep.Skipped {
		env.Guardrails = append(env.Guardrails, "The dataset was skipped. Do not estimate ratios for it.")
		return env, nil
	}

	if in.Export {
		path := filepath.Join(s.outputDir(), workbook.DefaultFileName)
		exp := workbook.Export{Summary: rep.Summary, Simulation: rep.Simulation, ByLocation: opts.ByLocation}
		if err := exp.Save(path); err != nil {
			return ResponseEnvelope{}, err
		}
		log.Info().Str("path", path).Str("run_id", rep.RunID).Msg("Summary exported")
		env.Warnings = append(env.Warnings, fmt.Sprintf("Summary written to %s", path))
	}

	if s.chartsEnabled() {
		env = WrapResponse(env.Data, env.Warnings,
			visuals.GenerateRatioChart(rep.Summary),
			visuals.GenerateProbabilityChart(rep.Simulation))
	}
	return env, nil
}

func (s *Server) simulateRatios(ctx context.Context, in SimulateRatiosInput) (ResponseEnvelope, error) {
	if len(in.Rows) == 0 {
		return ResponseEnvelope{}, fmt.Errorf("rows must not be empty")
	}

	cfg := s.defaultOptions(false).Simulation
	if in.Lambda != 0 {
		cfg.Lambda = in.Lambda
	}
	if in.Size != 0 {
		cfg.Size = in.Size
	}
	if in.Seed != 0 {
		cfg.Seed = in.Seed
	}
	if err := (pipeline.Options{MinActivities: 1, Simulate: true, Simulation: cfg}).Validate(); err != nil {
		return ResponseEnvelope{}, err
	}

	rows := make([]stats.Summary, len(in.Rows))
	for i, r := range in.Rows {
		rows[i] = stats.Summary{
			GroupKey:   stats.GroupKey{Group: r.Group},
			Min:        stats.FromPtr(r.Min),
			MostLikely: stats.FromPtr(r.MostLikely),
			Max:        stats.FromPtr(r.Max),
		}
	}

	results, err := simulation.NewEngine(cfg).Run(ctx, rows)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	var warnings []string
	for _, r := range results {
		if r.Method == simulation.MethodSkipped {
			warnings = append(warnings, fmt.Sprintf("Group %q: probability undefined (%s).", r.Group, r.Reason))
		}
	}

	var chart string
	if s.chartsEnabled() {
		chart = visuals.GenerateProbabilityChart(results)
	}
	return WrapResponse(results, warnings, chart), nil
}

func (s *Server) defaultOptions(byLocation bool) pipeline.Options {
	opts := pipeline.DefaultOptions()
	if s.cfg == nil {
		return opts
	}
	opts.MinActivities = s.cfg.MinActivities
	if byLocation {
		opts.MinActivities = s.cfg.LocationMinActivities
	}
	opts.Simulation = simulation.Config{
		Lambda: s.cfg.Lambda,
		Size:   s.cfg.SimulationSize,
		Seed:   s.cfg.Seed,
	}
	return opts
}

func (s *Server) outputDir() string {
	if s.cfg == nil || s.cfg.OutputDir == "" {
		return "."
	}
	return s.cfg.OutputDir
}

func (s *Server) chartsEnabled() bool {
	return s.cfg != nil && s.cfg.EnableMermaidCharts
}
