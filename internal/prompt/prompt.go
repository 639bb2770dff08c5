// Package prompt renders classification prompts.
package prompt

import (
	"fmt"
	"strings"

	"taskclass/internal/schema"
)

// CallName is the structured call the prompt instructs the model to invoke.
// It must match the name declared by the tool adapter.
const CallName = "classify_text"

// Build renders the classification prompt for one input under the given
// definition. Deterministic: same inputs always produce the same string. The
// input text is embedded verbatim; callers own any truncation policy.
//
// The closing instruction deliberately biases ambiguous inputs toward
// "prompt". Simple requests misrouted into workflow orchestration cost far
// more than workflows answered directly, so ties break cheap.
func Build(inputText string, def *schema.Definition) string {
	var sb strings.Builder

	sb.WriteString(`You are a text classifier. Analyze the following input and classify it as either "prompt" or "workflow".`)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "**Input to classify:** \"%s\"\n\n", inputText)

	sb.WriteString(`**Classification Rules:**
- **PROMPT**: Single-step requests, questions, greetings, simple tasks that can be completed directly
  Examples: "hi", "what is recursion?", "write a function", "explain this concept"

- **WORKFLOW**: Multi-step tasks requiring coordination, orchestration, or sequential operations
  Examples: "create a new project with tests and documentation", "fix bugs and deploy", "analyze codebase and suggest improvements"

**Key Indicators:**
- Look for multiple actions: "and", "then", "also", "with", "plus"
- File operations: "create", "update", "fix" + file references
- Testing requirements: "with tests", "run tests", "verify"
- Coordination needs: multiple systems, tools, or sequential steps`)

	if def.Addendum != "" {
		sb.WriteString("\n\n")
		sb.WriteString(def.Addendum)
	}

	sb.WriteString("\n\n**Instructions:**\n")
	sb.WriteString("1. Analyze the input text carefully\n")
	sb.WriteString("2. Determine if it's a single-step (prompt) or multi-step (workflow) request\n")
	sb.WriteString("3. Provide a confidence score between 0.0 and 1.0\n")
	fmt.Fprintf(&sb, "4. Use the %s function with your analysis\n", CallName)
	sb.WriteString("\nRemember: When in doubt, prefer \"prompt\" for simple requests and \"workflow\" only for clearly multi-step tasks.")

	return sb.String()
}
