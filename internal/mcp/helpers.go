package mcp

import (
	"encoding/json"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResponseEnvelope wraps every tool result.
type ResponseEnvelope struct {
	Data       any      `json:"data"`
	Warnings   []string `json:"warnings,omitempty"`
	Guardrails []string `json:"guardrails,omitempty"`
	Charts     []string `json:"-"`
}

// WrapResponse builds an envelope and drops empty charts.
func WrapResponse(data any, warnings []string, charts ...string) ResponseEnvelope {
	env := ResponseEnvelope{Data: data, Warnings: warnings}
	for _, c := range charts {
		if c != "" {
			env.Charts = append(env.Charts, c)
		}
	}
	return env
}

func (e ResponseEnvelope) toResult() (*mcpsdk.CallToolResult, error) {
	out, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, err
	}

	content := []mcpsdk.Content{&mcpsdk.TextContent{Text: string(out)}}
	for _, c := range e.Charts {
		content = append(content, &mcpsdk.TextContent{Text: c})
	}
	return &mcpsdk.CallToolResult{Content: content}, nil
}
