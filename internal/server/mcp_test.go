package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestHandleToolCallReturnsText(t *testing.T) {
	d := newTestDispatcher(t, respond(http.StatusNotFound, `{"detail": "Not Found"}`))

	res, err := d.handleToolCall(context.Background(),
		callToolRequest("get_movie", map[string]any{"movie_id": float64(42)}))
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Movie 42 not found.", text.Text)
}

func TestHandleToolCallArgumentErrorIsToolError(t *testing.T) {
	d := newTestDispatcher(t, respond(http.StatusOK, "{}"))

	res, err := d.handleToolCall(context.Background(), callToolRequest("get_movie", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNewMCPServerRegistersAllTools(t *testing.T) {
	d := newTestDispatcher(t, respond(http.StatusOK, "{}"))
	s := NewMCPServer(d, "test")
	require.NotNil(t, s)
}

func TestMCPToolDeclarations(t *testing.T) {
	create := toolDef{res: Movies, op: opCreate}
	tool := create.mcpTool()
	assert.Equal(t, "create_movie", tool.Name)
	assert.Contains(t, tool.InputSchema.Properties, "title")
	assert.Contains(t, tool.InputSchema.Properties, "year")
	assert.Contains(t, tool.InputSchema.Properties, "rating")
	assert.NotContains(t, tool.InputSchema.Properties, "movie_id")

	del := toolDef{res: Tasks, op: opDelete}
	tool = del.mcpTool()
	assert.Equal(t, "delete_task", tool.Name)
	assert.Contains(t, tool.InputSchema.Properties, "task_id")
	assert.Equal(t, []string{"task_id"}, tool.InputSchema.Required)
}
