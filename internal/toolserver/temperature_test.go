package toolserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectClient connects an in-memory client session to the server.
func connectClient(t *testing.T, s *Server) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- s.Run(ctx, serverTransport)
	}()
	t.Cleanup(func() {
		cancel()
		<-serverDone
	})

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

// callTool invokes a tool and decodes its JSON text payload.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)

	var text string
	for _, item := range result.Content {
		if tc, ok := item.(*mcp.TextContent); ok {
			text = tc.Text
		}
	}

	return result, text
}

func TestTemperatureServerListsSixTools(t *testing.T) {
	session := connectClient(t, NewTemperatureServer())

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 6)

	names := make(map[string]bool, len(result.Tools))
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}

	for _, want := range []string{
		"celsius_to_fahrenheit", "fahrenheit_to_celsius",
		"celsius_to_kelvin", "kelvin_to_celsius",
		"fahrenheit_to_kelvin", "kelvin_to_fahrenheit",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestTemperatureConversions(t *testing.T) {
	session := connectClient(t, NewTemperatureServer())

	tests := []struct {
		tool    string
		input   float64
		want    float64
		scale   string
		formula string
	}{
		{"celsius_to_fahrenheit", 100, 212, "F", "F = (C * 9/5) + 32"},
		{"fahrenheit_to_celsius", 32, 0, "C", "C = (F - 32) * 5/9"},
		{"celsius_to_kelvin", 0, 273.15, "K", "K = C + 273.15"},
		{"kelvin_to_celsius", 273.15, 0, "C", "C = K - 273.15"},
		{"fahrenheit_to_kelvin", 32, 273.15, "K", "K = (F - 32) * 5/9 + 273.15"},
		{"kelvin_to_fahrenheit", 273.15, 32, "F", "F = (K - 273.15) * 9/5 + 32"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			result, text := callTool(t, session, tt.tool, map[string]any{"temperature": tt.input})
			require.False(t, result.IsError, "unexpected tool error: %s", text)

			var conv Conversion
			require.NoError(t, json.Unmarshal([]byte(text), &conv))

			assert.InDelta(t, tt.input, conv.OriginalValue, 1e-9)
			assert.InDelta(t, tt.want, conv.ConvertedValue, 1e-9)
			assert.Equal(t, tt.scale, conv.ConvertedScale)
			assert.Equal(t, tt.formula, conv.Formula)
		})
	}
}

func TestTemperatureRangeValidation(t *testing.T) {
	session := connectClient(t, NewTemperatureServer())

	result, text := callTool(t, session, "celsius_to_fahrenheit", map[string]any{"temperature": -300.0})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "between")

	result, _ = callTool(t, session, "celsius_to_kelvin", map[string]any{"temperature": 200000.0})
	assert.True(t, result.IsError)
}

func TestTemperatureRejectsNonNumber(t *testing.T) {
	session := connectClient(t, NewTemperatureServer())

	result, text := callTool(t, session, "celsius_to_fahrenheit", map[string]any{"temperature": "hot"})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "number")
}
