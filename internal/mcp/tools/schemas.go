package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskclass/internal/schema"
)

// ListSchemasInput is the input for list_schemas.
type ListSchemasInput struct{}

// ListSchemasOutput is the output for list_schemas.
type ListSchemasOutput struct {
	AvailableSchemas []string `json:"available_schemas,omitzero"`
	DefaultSchema    string   `json:"default_schema"`
}

// ToolListSchemas enumerates the classification schemas.
func ToolListSchemas(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSchemasInput) (*sdkmcp.CallToolResult, ListSchemasOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ListSchemasInput) (*sdkmcp.CallToolResult, ListSchemasOutput, error) {
		return nil, ListSchemasOutput{
			AvailableSchemas: schema.List(),
			DefaultSchema:    schema.DefaultName,
		}, nil
	}
}
