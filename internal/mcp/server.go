// Package mcp wires the classification tools into an MCP server.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskclass/internal/mcp/prompts"
	"taskclass/internal/mcp/tools"
	"taskclass/internal/toolcall"
)

// Server wraps the MCP server with the classifier components.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps
}

// NewServer creates the MCP server, verifies the structured-call
// declarations, and registers all tools and prompts.
func NewServer(deps *tools.Deps) (*Server, error) {
	if deps == nil {
		return nil, fmt.Errorf("deps is required")
	}

	// A malformed declaration should kill the process at boot, not a
	// classification mid-session.
	if err := toolcall.VerifyDeclarations(); err != nil {
		return nil, fmt.Errorf("verifying declarations: %w", err)
	}

	s := &Server{
		deps: deps,
		mcpServer: sdkmcp.NewServer(
			&sdkmcp.Implementation{
				Name:    "taskclass",
				Version: "1.0.0",
			},
			nil,
		),
	}

	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())
	tools.Register(s.mcpServer, deps)
	prompts.Register(s.mcpServer)

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server for testing.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
