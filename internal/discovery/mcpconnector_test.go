package discovery

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

// setupInMemoryConnection starts an MCP server over in-memory transports and
// returns a connected mcpConnection.
func setupInMemoryConnection(t *testing.T) *mcpConnection {
	t.Helper()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "test-server",
		Version: "1.0.0",
	}, nil)

	server.AddTool(&mcp.Tool{
		Name:        "echo",
		Description: "Echo input back",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"msg":{"type":"string"}}}`),
	}, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(req.Params.Arguments)}},
		}, nil
	})

	server.AddTool(&mcp.Tool{
		Name:        "broken",
		Description: "Always fails",
		InputSchema: json.RawMessage(`{"type":"object"}`),
	}, func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "boom"}},
			IsError: true,
		}, nil
	})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	conn := &mcpConnection{session: session}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestMCPConnectionListTools(t *testing.T) {
	conn := setupInMemoryConnection(t)

	tools, err := conn.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)

	byName := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	echo, ok := byName["echo"]
	require.True(t, ok)
	assert.Equal(t, "Echo input back", echo.Description)
	assert.NotNil(t, echo.Handler)
	assert.NotEmpty(t, echo.InputSchema)
}

func TestMCPConnectionToolHandlerRoundTrip(t *testing.T) {
	conn := setupInMemoryConnection(t)

	tools, err := conn.ListTools(context.Background())
	require.NoError(t, err)

	var echo Tool
	for _, tool := range tools {
		if tool.Name == "echo" {
			echo = tool
		}
	}
	require.NotNil(t, echo.Handler)

	text, err := echo.Handler(context.Background(), json.RawMessage(`{"msg":"hello"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"msg":"hello"}`, text)
}

func TestMCPConnectionToolError(t *testing.T) {
	conn := setupInMemoryConnection(t)

	_, err := conn.callTool(context.Background(), "broken", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestMCPConnectorRejectsUnknownTransport(t *testing.T) {
	t.Parallel()

	_, err := NewMCPConnector().Connect(context.Background(), "srv", &config.ConnectionParams{
		Transport: "telegraph",
	})

	var unsupported *errors.UnsupportedTransportError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "srv", unsupported.Server)
}
