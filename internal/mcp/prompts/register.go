// Package prompts contains the MCP prompts served alongside the tools.
package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "classification_guide",
		Description: "RECOMMENDED: How to pick a classification schema and interpret results. Start here - explains the accuracy/latency tradeoff across schemas and the failure envelope without trial-and-error tool calls.",
	}, HandleClassificationGuide())
}
