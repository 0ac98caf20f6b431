package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPServer exposes the dispatcher's tools over the MCP protocol. Every
// tool funnels into the same generic handler; results are always text
// content, and argument problems come back as tool errors rather than
// protocol errors.
func NewMCPServer(d *Dispatcher, version string) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("crud-mcp", version,
		mcpserver.WithToolCapabilities(false),
	)
	for _, name := range d.order {
		s.AddTool(d.tools[name].mcpTool(), d.handleToolCall)
	}
	return s
}

func (d *Dispatcher) handleToolCall(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := d.Call(ctx, req.Params.Name, req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
