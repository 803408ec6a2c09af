package mcporch

import (
	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/correlate"
	"github.com/unimcp/mcp-orchestrator-go/internal/discovery"
	"github.com/unimcp/mcp-orchestrator-go/internal/engine"
	"github.com/unimcp/mcp-orchestrator-go/internal/stream"
)

// Re-export configuration types from internal packages.

// Transport identifies how a tool server is reached.
type Transport = config.Transport

const (
	// TransportProcess spawns the server as a child process over stdio.
	TransportProcess = config.TransportProcess
	// TransportNetwork connects to an already-running server over a URL.
	TransportNetwork = config.TransportNetwork
)

// ServerDescriptor describes one configured tool server.
type ServerDescriptor = config.ServerDescriptor

// ValidationResult reports the outcome of validating one descriptor.
type ValidationResult = config.ValidationResult

// ValidateServer checks a descriptor against its transport's required fields.
func ValidateServer(name string, desc *ServerDescriptor) ValidationResult {
	return config.Validate(name, desc)
}

// Re-export discovery types.

// Tool is one callable tool exposed by a connected server.
type Tool = discovery.Tool

// Toolset is the set of tools one server contributed.
type Toolset = discovery.Toolset

// ConnectionStatus records the discovery outcome for a single server.
type ConnectionStatus = discovery.ConnectionStatus

// ConnectionState tracks where a server is in its connection lifecycle.
type ConnectionState = discovery.ConnectionState

const (
	StateConnected        = discovery.StateConnected
	StateInvalidConfig    = discovery.StateInvalidConfig
	StateNoToolsFound     = discovery.StateNoToolsFound
	StateConnectionError  = discovery.StateConnectionError
	StateConnectionFailed = discovery.StateConnectionFailed
)

// Connector opens tool-server connections. The default implementation dials
// real MCP servers; substitute a fake for tests.
type Connector = discovery.Connector

// Re-export engine boundary types.

// Engine executes one user turn against the bound toolsets.
type Engine = engine.Engine

// EngineFactory constructs an engine from a binding.
type EngineFactory = engine.Factory

// EngineBinding carries the toolsets, system prompt, and session identity
// handed to an engine factory.
type EngineBinding = engine.Binding

// TurnRequest carries one user turn into the engine.
type TurnRequest = engine.TurnRequest

// EngineEvent is one raw engine emission during a turn.
type EngineEvent = engine.Event

// ToolResult is one completed tool invocation inside an engine event.
type ToolResult = engine.ToolResult

// Re-export stream types.

// ResponseEvent is one classified event delivered to the turn's consumer.
type ResponseEvent = stream.ResponseEvent

// ToolResponse is a completed tool invocation inside a classified event.
type ToolResponse = stream.ToolResponse

// DebugRecord is the diagnostic rendering of one classified event.
type DebugRecord = stream.Record

// DebugObserver receives a diagnostic record per classified event when
// debug mode is on.
type DebugObserver = stream.Observer

// Re-export correlation types.

// Correlator matches outbound requests with responses and routes inbound
// messages to handlers.
type Correlator = correlate.Correlator

// Message is one inbound or outbound exchange unit.
type Message = correlate.Message

// Response answers a correlated request.
type Response = correlate.Response

// MessageHandler processes one inbound request or notification.
type MessageHandler = correlate.Handler

// Dialer opens correlated-exchange connections to servers.
type Dialer = correlate.Dialer

// CorrelatedConn performs the wire exchange for one correlated connection.
type CorrelatedConn = correlate.Conn

// ConnectionParams are the resolved parameters for reaching one server.
type ConnectionParams = config.ConnectionParams

// ConnectionInfo records the observed state of one correlated connection.
type ConnectionInfo = correlate.ConnectionInfo
