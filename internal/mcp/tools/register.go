package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: classify_input
	AddTool(srv, &sdkmcp.Tool{
		Name:        "classify_input",
		Description: "Classify input text as prompt (single-step request) or workflow (multi-step orchestrated task) using a local model with structured function calling. Returns a ClassificationResult with the classified fields, latency_ms, and a success flag; failures are reported inside the envelope with error_message, never as a protocol error. schema_name selects the output contract (see list_schemas).",
		InputSchema: classifyInputSchema[ClassifyInput](),
	}, ToolClassifyInput(d))

	// Tool 2: classify_batch
	AddTool(srv, &sdkmcp.Tool{
		Name:        "classify_batch",
		Description: "Classify several input texts in one call with bounded parallelism. Results align positionally with input_texts; each item gets its own independent ClassificationResult, so one failure never affects the rest.",
		InputSchema: classifyInputSchema[ClassifyBatchInput](),
	}, ToolClassifyBatch(d))

	// Tool 3: list_schemas
	AddTool(srv, &sdkmcp.Tool{
		Name:        "list_schemas",
		Description: "List all available classification schemas and the default. minimal is fastest (type + confidence only); standard adds reasoning; detailed adds indicators and a complexity score; optimized adds a task-step estimate; context_aware adds conversation context analysis.",
	}, ToolListSchemas(d))

	// Tool 4: backend_status
	AddTool(srv, &sdkmcp.Tool{
		Name:        "backend_status",
		Description: "Check whether the Ollama backend is reachable and list the locally installed models. Use this before classify_input when diagnosing BACKEND_UNAVAILABLE failures.",
	}, ToolBackendStatus(d))
}
