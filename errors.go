package mcporch

import "github.com/unimcp/mcp-orchestrator-go/internal/errors"

// Re-export error types from internal package

// OrchestratorError is the base interface for all orchestration errors.
type OrchestratorError = errors.OrchestratorError

// ValidationError reports a descriptor that failed validation.
type ValidationError = errors.ValidationError

// MissingFieldError reports a descriptor missing a required field.
type MissingFieldError = errors.MissingFieldError

// UnsupportedTransportError reports a descriptor naming an unknown transport.
type UnsupportedTransportError = errors.UnsupportedTransportError

// ConnectionError reports a failed connection to one server.
type ConnectionError = errors.ConnectionError

// EngineInitError reports that the execution engine could not be built.
type EngineInitError = errors.EngineInitError

// Re-export sentinel errors from internal package.
var (
	// ErrNotInitialized indicates the session has not reached ready.
	ErrNotInitialized = errors.ErrNotInitialized

	// ErrSessionTerminated indicates the session was shut down.
	ErrSessionTerminated = errors.ErrSessionTerminated

	// ErrTurnInProgress indicates another turn is still being served.
	ErrTurnInProgress = errors.ErrTurnInProgress

	// ErrNoActiveConnection indicates a request targeted a server with no
	// live connection.
	ErrNoActiveConnection = errors.ErrNoActiveConnection

	// ErrConnectionTimeout indicates a connection attempt timed out.
	ErrConnectionTimeout = errors.ErrConnectionTimeout
)
