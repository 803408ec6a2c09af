package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

// clientName identifies this host in the MCP initialize handshake.
const clientName = "mcp-orchestrator"

// clientVersion is reported alongside clientName.
const clientVersion = "0.1.0"

// MCPConnector dials real MCP servers with the official Go SDK. Process
// transports spawn the server as a child and talk stdio; network transports
// reach an already-running server over SSE.
type MCPConnector struct{}

var _ Connector = (*MCPConnector)(nil)

// NewMCPConnector returns the default connector.
func NewMCPConnector() *MCPConnector {
	return &MCPConnector{}
}

// Connect opens a session to the server described by params. The SDK runs
// the initialize handshake as part of Connect, so a returned connection is
// ready for tool listing immediately.
func (c *MCPConnector) Connect(
	ctx context.Context,
	serverName string,
	params *config.ConnectionParams,
) (Connection, error) {
	var transport mcp.Transport

	switch params.Transport {
	case config.TransportProcess:
		transport = &mcp.CommandTransport{
			Command: exec.Command(params.Command, params.Args...), //nolint:gosec // command comes from the operator's config
		}
	case config.TransportNetwork:
		transport = &mcp.SSEClientTransport{Endpoint: params.URL}
	default:
		return nil, &errors.UnsupportedTransportError{
			Server:    serverName,
			Transport: string(params.Transport),
		}
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, &errors.ConnectionError{Server: serverName, Err: err}
	}

	return &mcpConnection{session: session}, nil
}

// mcpConnection wraps an SDK client session as a discovery Connection.
type mcpConnection struct {
	session *mcp.ClientSession
}

var _ Connection = (*mcpConnection)(nil)

func (c *mcpConnection) ListTools(ctx context.Context) ([]Tool, error) {
	result, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	tools := make([]Tool, 0, len(result.Tools))

	for _, sdkTool := range result.Tools {
		tool, err := c.fromSDKTool(sdkTool)
		if err != nil {
			return nil, fmt.Errorf("convert tool %q: %w", sdkTool.Name, err)
		}

		tools = append(tools, tool)
	}

	return tools, nil
}

// Close shuts down the session. For process transports the SDK closes the
// server's stdin, waits, and escalates to SIGTERM/SIGKILL if needed.
func (c *mcpConnection) Close() error {
	return c.session.Close()
}

// fromSDKTool converts an SDK tool to a discovery Tool whose handler calls
// back through this connection.
func (c *mcpConnection) fromSDKTool(sdkTool *mcp.Tool) (Tool, error) {
	schema, err := json.Marshal(sdkTool.InputSchema)
	if err != nil {
		return Tool{}, fmt.Errorf("marshal input schema: %w", err)
	}

	name := sdkTool.Name

	return Tool{
		Name:        sdkTool.Name,
		Description: sdkTool.Description,
		InputSchema: schema,
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			return c.callTool(ctx, name, input)
		},
	}, nil
}

// callTool invokes a named tool and flattens its text content.
func (c *mcpConnection) callTool(ctx context.Context, name string, input json.RawMessage) (string, error) {
	var args map[string]any

	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return "", fmt.Errorf("unmarshal arguments: %w", err)
		}
	}

	result, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("call tool %q: %w", name, err)
	}

	text := extractText(result)

	if result.IsError {
		return "", fmt.Errorf("tool %q failed: %s", name, text)
	}

	return text, nil
}

// extractText joins the TextContent items of a result with newlines.
func extractText(result *mcp.CallToolResult) string {
	var texts []string

	for _, item := range result.Content {
		if tc, ok := item.(*mcp.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}

	return strings.Join(texts, "\n")
}
