package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskclass/internal/schema"
)

// HandleClassificationGuide serves the schema selection and usage guide.
func HandleClassificationGuide() func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Classification Guide\n\n")
		sb.WriteString("`classify_input` labels free text as **prompt** (single-step request) or **workflow** (multi-step orchestrated task) via a local model with structured function calling.\n\n")

		// --- Schema Decision Table ---
		sb.WriteString("## Schema Decision Table\n\n")
		sb.WriteString("| Schema | Extra fields | When to use |\n")
		sb.WriteString("|--------|--------------|-------------|\n")
		sb.WriteString("| `minimal` | none | Lowest latency, routing only |\n")
		sb.WriteString("| `standard` | reasoning | Default: label + short justification |\n")
		sb.WriteString("| `detailed` | reasoning, indicators, complexity_score | Audits, debugging misclassifications |\n")
		sb.WriteString("| `optimized` | reasoning, task_steps | Step estimation for planners |\n")
		sb.WriteString("| `context_aware` | reasoning, conversation_context, step_count, requires_coordination | Conversation-aware routing |\n")

		sb.WriteString("\n**Key rules**:\n")
		sb.WriteString("- Every result carries `type` and `confidence` (0.0-1.0); richer schemas cost more latency\n")
		fmt.Fprintf(&sb, "- `schema_name` defaults to `%s`; valid names: %s\n",
			schema.DefaultName, strings.Join(schema.List(), ", "))
		sb.WriteString("- `success: false` means `result` is empty and `error_message` explains why; the call itself never errors\n")
		sb.WriteString("- Error codes: UNKNOWN_SCHEMA, MISSING_REQUIRED_FIELD, NO_TOOL_INVOCATION, TIMEOUT, BACKEND_UNAVAILABLE\n")

		// --- Recommended Workflow ---
		sb.WriteString("\n## Recommended Workflow\n")
		sb.WriteString("1. `backend_status` once, to confirm the model backend is up and the model is installed\n")
		sb.WriteString("2. `classify_input(input_text: \"...\")` per item, or `classify_batch` for many items\n")
		sb.WriteString("3. On BACKEND_UNAVAILABLE, re-run `backend_status` before retrying\n")

		return &sdkmcp.GetPromptResult{
			Description: "Classification schema selection and usage guide",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
