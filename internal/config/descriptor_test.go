package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProcessDescriptor(t *testing.T) {
	t.Parallel()

	result := Validate("weather", &ServerDescriptor{
		Transport:   TransportProcess,
		Description: "Weather tools",
		Command:     "python3",
		Args:        []string{"server.py"},
	})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.MissingFields)
	assert.Empty(t, result.InvalidFields)
}

func TestValidateNetworkDescriptor(t *testing.T) {
	t.Parallel()

	result := Validate("remote", &ServerDescriptor{
		Transport:   TransportNetwork,
		Description: "Remote tools",
		URL:         "http://localhost:8080/sse",
	})

	assert.True(t, result.IsValid)
}

func TestValidateMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    *ServerDescriptor
		missing []string
		invalid []string
	}{
		{
			name:    "nil descriptor",
			desc:    nil,
			missing: []string{"transport", "description"},
		},
		{
			name:    "process without command",
			desc:    &ServerDescriptor{Transport: TransportProcess, Description: "x"},
			missing: []string{"command"},
		},
		{
			name:    "network without url",
			desc:    &ServerDescriptor{Transport: TransportNetwork, Description: "x"},
			missing: []string{"url"},
		},
		{
			name:    "missing description",
			desc:    &ServerDescriptor{Transport: TransportProcess, Command: "python3"},
			missing: []string{"description"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate("srv", tt.desc)

			assert.False(t, result.IsValid)
			for _, field := range tt.missing {
				assert.Contains(t, result.MissingFields, field)
			}
			for _, field := range tt.invalid {
				assert.Contains(t, result.InvalidFields, field)
			}
		})
	}
}

func TestValidateUnsupportedTransport(t *testing.T) {
	t.Parallel()

	result := Validate("srv", &ServerDescriptor{
		Transport:   "carrier-pigeon",
		Description: "x",
	})

	require.False(t, result.IsValid)
	require.Len(t, result.InvalidFields, 1)
	assert.Contains(t, result.InvalidFields[0], "carrier-pigeon")
}

func TestValidateEmptyTransportCountsTwice(t *testing.T) {
	t.Parallel()

	// An absent transport is reported both as missing and as unsupported so
	// the caller sees the full picture in a single pass.
	result := Validate("srv", &ServerDescriptor{Description: "x"})

	assert.Contains(t, result.MissingFields, "transport")
	require.Len(t, result.InvalidFields, 1)
}
