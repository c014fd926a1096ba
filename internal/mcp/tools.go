package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const ratioExplanation = "Ratios are Actual Duration / Original Duration, summed per group (weighted, not averaged):\n" +
	"- Min: activities that finished early (default 1 when none did).\n" +
	"- Most Likely: all completed activities.\n" +
	"- Max: activities that finished late (default 2 when none did).\n" +
	"Actual durations are capped at twice the original duration before summing."

// AnalyzeScheduleInput are the arguments of analyze_schedule.
type AnalyzeScheduleInput struct {
	Path          string  `json:"path" jsonschema:"Path to the .xlsx schedule export (P6 copy/paste with Original Duration, Actual Duration, Activity Status and a Resp column)"`
	Sheet         string  `json:"sheet,omitempty" jsonschema:"Optional sheet name. Default: the first sheet"`
	MinActivities int     `json:"min_activities,omitempty" jsonschema:"Minimum number of completed activities per RESP group. Default: 50 (5 when by_location is set)"`
	ByLocation    bool    `json:"by_location,omitempty" jsonschema:"Split each RESP group by Region, Division and Location"`
	Simulate      bool    `json:"simulate,omitempty" jsonschema:"Run the Beta-PERT Monte-Carlo simulation for every group"`
	Lambda        float64 `json:"lambda,omitempty" jsonschema:"PERT shape parameter. Default: 4"`
	Size          int     `json:"size,omitempty" jsonschema:"Number of Monte-Carlo samples per group. Default: 10000"`
	Seed          uint64  `json:"seed,omitempty" jsonschema:"Optional random seed for reproducible simulations"`
	Export        bool    `json:"export,omitempty" jsonschema:"Also write Resp-Ratios.xlsx into the configured output directory"`
}

// RatioRow is one three-point row handed to simulate_ratios. Missing bounds are allowed.
type RatioRow struct {
	Group      string   `json:"group" jsonschema:"RESP group identifier"`
	Min        *float64 `json:"min,omitempty" jsonschema:"Min ratio"`
	MostLikely *float64 `json:"most_likely,omitempty" jsonschema:"Most Likely ratio (informational; the PERT mode is fixed at 1.0)"`
	Max        *float64 `json:"max,omitempty" jsonschema:"Max ratio"`
}

// SimulateRatiosInput are the arguments of simulate_ratios.
type SimulateRatiosInput struct {
	Rows   []RatioRow `json:"rows" jsonschema:"Three-point ratio rows, e.g. taken from analyze_schedule"`
	Lambda float64    `json:"lambda,omitempty" jsonschema:"PERT shape parameter. Default: 4"`
	Size   int        `json:"size,omitempty" jsonschema:"Number of Monte-Carlo samples per row. Default: 10000"`
	Seed   uint64     `json:"seed,omitempty" jsonschema:"Optional random seed for reproducible simulations"`
}

// inputSchema infers the schema of T and adds the numeric bounds the tags cannot express.
func inputSchema[T any](bounds func(props map[string]*jsonschema.Schema)) *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}
	bounds(schema.Properties)
	return schema
}

func simulationBounds(props map[string]*jsonschema.Schema) {
	zero, one := 0.0, 1.0
	props["lambda"].ExclusiveMinimum = &zero
	props["size"].Minimum = &one
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.server, &mcpsdk.Tool{
		Name: "analyze_schedule",
		InputSchema: inputSchema[AnalyzeScheduleInput](func(props map[string]*jsonschema.Schema) {
			one := 1.0
			props["min_activities"].Minimum = &one
			simulationBounds(props)
		}),
		Description: "Compute the three-point (Min / Most Likely / Max) schedule performance ratios per RESP group " +
			"from a schedule export, optionally with the probability of finishing on time.\n\n" + ratioExplanation + "\n\n" +
			"STRICT GUARDRAIL: if the dataset is skipped (no usable RESP data), report the warning and DO NOT invent ratios.",
	}, s.handleAnalyzeSchedule)

	mcpsdk.AddTool(s.server, &mcpsdk.Tool{
		Name:        "simulate_ratios",
		InputSchema: inputSchema[SimulateRatiosInput](simulationBounds),
		Description: "Estimate the probability of finishing on time (ratio <= 1.0) for each three-point row using a " +
			"Beta-PERT distribution with the mode fixed at 1.0. Rows without Min or Max yield a null probability.",
	}, s.handleSimulateRatios)
}
