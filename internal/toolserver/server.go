package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps an MCP SDK server for the bundled tool servers. It can serve
// over stdio for process transports or as an HTTP handler for network
// transports.
type Server struct {
	server *mcp.Server
}

// NewServer creates a tool server with the given identity.
func NewServer(name, version string) *Server {
	return &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
	}
}

// AddTool registers a tool with the server.
func (s *Server) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.server.AddTool(tool, handler)
}

// ServeStdio serves MCP requests over stdin/stdout until ctx is cancelled
// or the transport closes. This is the entry point for process transports.
func (s *Server) ServeStdio(ctx context.Context) error {
	transport := &mcp.IOTransport{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}

	return s.server.Run(ctx, transport)
}

// Run serves MCP requests over the given transport. Tests use this with
// in-memory transports.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// HTTPHandler returns an SSE handler serving this server, for network
// transports.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// SimpleSchema creates a jsonschema.Schema from a simple type map.
//
// Input format: {"value": "float64", "name": "string"}. Every property is
// required.
func SimpleSchema(props map[string]string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	required := make([]string, 0, len(props))

	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
		required = append(required, name)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int32", "int64":
		return &jsonschema.Schema{Type: "integer"}
	case "float32", "float64", "number":
		return &jsonschema.Schema{Type: "number"}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	default:
		if len(goType) > 2 && goType[:2] == "[]" {
			return &jsonschema.Schema{
				Type:  "array",
				Items: goTypeToJSONSchema(goType[2:]),
			}
		}

		return &jsonschema.Schema{Type: "string"}
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult creates a CallToolResult with the value rendered as JSON text.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("marshal result: " + err.Error())
	}

	return TextResult(string(data))
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("unmarshal arguments: %w", err)
	}

	return args, nil
}
