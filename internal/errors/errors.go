package errors

import (
	"errors"
	"fmt"
)

// OrchestratorError is the base interface for all SDK errors.
type OrchestratorError interface {
	error
	IsOrchestratorError() bool
}

// Compile-time verification that all error types implement OrchestratorError.
var (
	_ OrchestratorError = (*MissingFieldError)(nil)
	_ OrchestratorError = (*UnsupportedTransportError)(nil)
	_ OrchestratorError = (*ValidationError)(nil)
	_ OrchestratorError = (*ConnectionError)(nil)
	_ OrchestratorError = (*EngineInitError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotInitialized indicates the session has not reached the ready state.
	ErrNotInitialized = errors.New("session not initialized")

	// ErrSessionTerminated indicates the session has been shut down and cannot
	// be reused. A terminated session is also not initialized, so checks
	// against ErrNotInitialized match it too.
	ErrSessionTerminated = fmt.Errorf("session terminated, sessions are single-use: %w", ErrNotInitialized)

	// ErrTurnInProgress indicates another turn is still being served.
	ErrTurnInProgress = errors.New("turn already in progress")

	// ErrNoActiveConnection indicates no connection exists for the named server.
	ErrNoActiveConnection = errors.New("no active connection")

	// ErrConnectionTimeout indicates a connection attempt timed out.
	ErrConnectionTimeout = errors.New("connection timeout")

	// ErrNoHandler indicates no handler is registered for an inbound method.
	ErrNoHandler = errors.New("no handler registered")
)

// MissingFieldError indicates a server descriptor lacks a required field.
type MissingFieldError struct {
	Server string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("server %q: missing required field %q", e.Server, e.Field)
}

// IsOrchestratorError implements OrchestratorError.
func (e *MissingFieldError) IsOrchestratorError() bool { return true }

// UnsupportedTransportError indicates a descriptor names a transport the SDK
// does not support. Transport carries the offending value for diagnostics.
type UnsupportedTransportError struct {
	Server    string
	Transport string
}

func (e *UnsupportedTransportError) Error() string {
	return fmt.Sprintf("server %q: unsupported transport %q", e.Server, e.Transport)
}

// IsOrchestratorError implements OrchestratorError.
func (e *UnsupportedTransportError) IsOrchestratorError() bool { return true }

// ValidationError aggregates the missing and invalid fields of one descriptor.
type ValidationError struct {
	Server        string
	MissingFields []string
	InvalidFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("server %q configuration invalid: missing %v, invalid %v",
		e.Server, e.MissingFields, e.InvalidFields)
}

// IsOrchestratorError implements OrchestratorError.
func (e *ValidationError) IsOrchestratorError() bool { return true }

// ConnectionError indicates a failure opening or using a server connection.
type ConnectionError struct {
	Server string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("server %q: connection failed: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsOrchestratorError implements OrchestratorError.
func (e *ConnectionError) IsOrchestratorError() bool { return true }

// EngineInitError indicates the execution engine could not be constructed.
// This is the only fatal discovery-time failure.
type EngineInitError struct {
	Err error
}

func (e *EngineInitError) Error() string {
	return fmt.Sprintf("engine initialization failed: %v", e.Err)
}

func (e *EngineInitError) Unwrap() error {
	return e.Err
}

// IsOrchestratorError implements OrchestratorError.
func (e *EngineInitError) IsOrchestratorError() bool { return true }
