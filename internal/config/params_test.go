package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

func TestBuildConnectionParamsProcess(t *testing.T) {
	t.Parallel()

	params, err := BuildConnectionParams("weather", &ServerDescriptor{
		Transport: TransportProcess,
		Command:   "python3",
		Args:      []string{"servers/weather.py", "--verbose"},
	}, "/opt/project", 0)
	require.NoError(t, err)

	assert.Equal(t, TransportProcess, params.Transport)
	assert.Equal(t, "python3", params.Command)
	assert.Equal(t, DefaultConnectTimeout, params.Timeout)
	assert.Equal(t, []string{
		filepath.Join("/opt/project", "servers/weather.py"),
		"--verbose",
	}, params.Args)
}

func TestBuildConnectionParamsNetwork(t *testing.T) {
	t.Parallel()

	params, err := BuildConnectionParams("remote", &ServerDescriptor{
		Transport: TransportNetwork,
		URL:       "http://localhost:8080/sse",
	}, "", 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, TransportNetwork, params.Transport)
	assert.Equal(t, "http://localhost:8080/sse", params.URL)
	assert.Equal(t, 5*time.Second, params.Timeout)
}

func TestBuildConnectionParamsErrors(t *testing.T) {
	t.Parallel()

	t.Run("process missing command", func(t *testing.T) {
		t.Parallel()

		_, err := BuildConnectionParams("srv", &ServerDescriptor{
			Transport: TransportProcess,
		}, "", 0)

		var missing *errors.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "command", missing.Field)
	})

	t.Run("network missing url", func(t *testing.T) {
		t.Parallel()

		_, err := BuildConnectionParams("srv", &ServerDescriptor{
			Transport: TransportNetwork,
		}, "", 0)

		var missing *errors.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "url", missing.Field)
	})

	t.Run("unsupported transport", func(t *testing.T) {
		t.Parallel()

		_, err := BuildConnectionParams("srv", &ServerDescriptor{
			Transport: "smoke-signal",
		}, "", 0)

		var unsupported *errors.UnsupportedTransportError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "smoke-signal", unsupported.Transport)
	})
}

func TestResolveScriptArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		projectRoot string
		want        []string
	}{
		{
			name:        "relative script resolved",
			args:        []string{"server.js"},
			projectRoot: "/root/app",
			want:        []string{filepath.Join("/root/app", "server.js")},
		},
		{
			name:        "absolute script untouched",
			args:        []string{"/usr/lib/server.py"},
			projectRoot: "/root/app",
			want:        []string{"/usr/lib/server.py"},
		},
		{
			name:        "non-script flag untouched",
			args:        []string{"--port=8080"},
			projectRoot: "/root/app",
			want:        []string{"--port=8080"},
		},
		{
			name: "empty args",
			args: nil,
			want: nil,
		},
		{
			name:        "no project root leaves args alone",
			args:        []string{"server.py"},
			projectRoot: "",
			want:        []string{"server.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, resolveScriptArgs(tt.args, tt.projectRoot))
		})
	}
}
