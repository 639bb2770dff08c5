package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// BackendStatusInput is the input for backend_status.
type BackendStatusInput struct{}

// BackendStatusOutput is the output for backend_status.
type BackendStatusOutput struct {
	Reachable bool     `json:"reachable"`
	Version   string   `json:"version,omitempty"`
	Models    []string `json:"models,omitzero"`
	Error     string   `json:"error,omitempty"`
}

// ToolBackendStatus probes the Ollama backend: server version plus installed
// models. Unreachable backends report through the output, not a tool error,
// so agents can branch on it.
func ToolBackendStatus(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input BackendStatusInput) (*sdkmcp.CallToolResult, BackendStatusOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input BackendStatusInput) (*sdkmcp.CallToolResult, BackendStatusOutput, error) {
		probeCtx, cancel := context.WithTimeout(ctx, d.Config.BackendProbeTimeout)
		defer cancel()

		version, err := d.Ollama.Version(probeCtx)
		if err != nil {
			return nil, BackendStatusOutput{Reachable: false, Error: err.Error()}, nil
		}

		out := BackendStatusOutput{Reachable: true, Version: version}
		models, err := d.Ollama.ListModels(probeCtx)
		if err != nil {
			out.Error = err.Error()
			return nil, out, nil
		}
		for _, m := range models {
			out.Models = append(out.Models, m.Name)
		}
		return nil, out, nil
	}
}
