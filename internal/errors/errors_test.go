package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFieldError(t *testing.T) {
	err := &MissingFieldError{Server: "temperature", Field: "url"}

	assert.Contains(t, err.Error(), "temperature")
	assert.Contains(t, err.Error(), "url")
	assert.True(t, err.IsOrchestratorError())
}

func TestUnsupportedTransportError(t *testing.T) {
	err := &UnsupportedTransportError{Server: "weird", Transport: "carrier-pigeon"}

	assert.Contains(t, err.Error(), "carrier-pigeon")
	assert.True(t, err.IsOrchestratorError())
}

func TestConnectionError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &ConnectionError{Server: "terminal", Err: cause}

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "terminal")
}

func TestEngineInitError_Unwrap(t *testing.T) {
	cause := errors.New("bad model")
	err := &EngineInitError{Err: cause}

	require.ErrorIs(t, err, cause)
}

func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("process turn: %w", ErrNotInitialized)

	assert.ErrorIs(t, wrapped, ErrNotInitialized)
	assert.NotErrorIs(t, wrapped, ErrSessionTerminated)
}

func TestSessionTerminatedImpliesNotInitialized(t *testing.T) {
	// A terminated session must also fail checks for "not initialized":
	// callers probing only the broader condition still catch it.
	assert.ErrorIs(t, ErrSessionTerminated, ErrNotInitialized)

	wrapped := fmt.Errorf("process turn: %w", ErrSessionTerminated)
	assert.ErrorIs(t, wrapped, ErrNotInitialized)
	assert.ErrorIs(t, wrapped, ErrSessionTerminated)
}
