package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoaderServersJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "servers.json", `{
		"mcpServers": {
			"weather": {
				"transport": "process",
				"description": "Weather tools",
				"command": "python3",
				"args": ["weather.py"]
			},
			"remote": {
				"transport": "network",
				"description": "Remote tools",
				"url": "http://localhost:8080/sse"
			}
		}
	}`)

	loader := NewLoader(testLogger(), path)

	servers, err := loader.Servers()
	require.NoError(t, err)
	require.Len(t, servers, 2)

	assert.Equal(t, TransportProcess, servers["weather"].Transport)
	assert.Equal(t, []string{"weather.py"}, servers["weather"].Args)
	assert.Equal(t, "http://localhost:8080/sse", servers["remote"].URL)
}

func TestLoaderServersYAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "servers.yaml", `
mcpServers:
  calc:
    transport: process
    description: Calculator tools
    command: ./calc
`)

	loader := NewLoader(testLogger(), path)

	servers, err := loader.Servers()
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "Calculator tools", servers["calc"].Description)
}

func TestLoaderMissingServerSection(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "empty.json", `{"logging": {"level": "debug"}}`)

	servers, err := NewLoader(testLogger(), path).Servers()
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	loader := NewLoader(testLogger(), filepath.Join(t.TempDir(), "absent.json"))

	_, err := loader.Load()
	require.Error(t, err)
}

func TestLoaderCachesAndReloads(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "servers.json", `{"mcpServers": {}}`)
	loader := NewLoader(testLogger(), path)

	_, err := loader.Load()
	require.NoError(t, err)

	// A cached loader does not see file changes until Reload.
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mcpServers": {
			"new": {"transport": "network", "description": "x", "url": "http://x"}
		}
	}`), 0o644))

	servers, err := loader.Servers()
	require.NoError(t, err)
	assert.Empty(t, servers)

	_, err = loader.Reload()
	require.NoError(t, err)

	servers, err = loader.Servers()
	require.NoError(t, err)
	assert.Len(t, servers, 1)
}

func TestLoaderValue(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "servers.json", `{
		"mcpServers": {},
		"logging": {"level": "debug"}
	}`)
	loader := NewLoader(testLogger(), path)

	assert.Equal(t, "debug", loader.Value("logging.level", "info"))
	assert.Equal(t, "info", loader.Value("logging.missing", "info"))
	assert.Equal(t, 42, loader.Value("absent.path", 42))
}

func TestLoaderPathResolution(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/mcporch/servers.yaml")

	assert.Equal(t, "/etc/mcporch/servers.yaml", NewLoader(testLogger(), "").Path())
	assert.Equal(t, "explicit.json", NewLoader(testLogger(), "explicit.json").Path())
}
