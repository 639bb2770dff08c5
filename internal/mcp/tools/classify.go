package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskclass/internal/classify"
	"taskclass/internal/schema"
)

// ClassifyInput is the input for classify_input.
type ClassifyInput struct {
	InputText   string   `json:"input_text"`
	SchemaName  string   `json:"schema_name,omitempty"`
	ModelID     string   `json:"model_id,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TimeoutMs   int      `json:"timeout_ms,omitempty"`
}

func (in ClassifyInput) request() classify.Request {
	return classify.Request{
		InputText:   in.InputText,
		SchemaName:  in.SchemaName,
		ModelID:     in.ModelID,
		Temperature: in.Temperature,
		Timeout:     time.Duration(in.TimeoutMs) * time.Millisecond,
	}
}

// ToolClassifyInput classifies one input text. Failures come back inside the
// result envelope, never as a tool error: callers always get a well-formed
// ClassificationResult.
func ToolClassifyInput(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyInput) (*sdkmcp.CallToolResult, classify.Result, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyInput) (*sdkmcp.CallToolResult, classify.Result, error) {
		return nil, d.Classifier.Classify(ctx, input.request()), nil
	}
}

// classifyInputSchema infers the input schema for T and constrains
// schema_name to the registered names, so agents see the valid values in the
// tool listing instead of discovering them through a failed call.
func classifyInputSchema[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](&jsonschema.ForOptions{})
	if err != nil {
		panic(fmt.Sprintf("inferring input schema: %v", err))
	}
	names := schema.List()
	enum := make([]any, len(names))
	for i, name := range names {
		enum[i] = name
	}
	s.Properties["schema_name"].Enum = enum
	return s
}

// ClassifyBatchInput is the input for classify_batch.
type ClassifyBatchInput struct {
	InputTexts  []string `json:"input_texts"`
	SchemaName  string   `json:"schema_name,omitempty"`
	ModelID     string   `json:"model_id,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TimeoutMs   int      `json:"timeout_ms,omitempty"`
}

// ClassifyBatchOutput is the output for classify_batch.
type ClassifyBatchOutput struct {
	Results []classify.Result `json:"results,omitzero"`
	Count   int               `json:"count"`
}

// ToolClassifyBatch classifies several inputs with bounded parallelism.
// Results align positionally with input_texts.
func ToolClassifyBatch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyBatchInput) (*sdkmcp.CallToolResult, ClassifyBatchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyBatchInput) (*sdkmcp.CallToolResult, ClassifyBatchOutput, error) {
		reqs := make([]classify.Request, len(input.InputTexts))
		for i, text := range input.InputTexts {
			reqs[i] = classify.Request{
				InputText:   text,
				SchemaName:  input.SchemaName,
				ModelID:     input.ModelID,
				Temperature: input.Temperature,
				Timeout:     time.Duration(input.TimeoutMs) * time.Millisecond,
			}
		}

		results := d.Classifier.ClassifyBatch(ctx, reqs)
		return nil, ClassifyBatchOutput{Results: results, Count: len(results)}, nil
	}
}
