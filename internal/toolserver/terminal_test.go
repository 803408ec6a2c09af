package toolserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(t *testing.T) (*TerminalServer, string) {
	t.Helper()

	workspace := t.TempDir()

	srv, err := NewTerminalServer(workspace)
	require.NoError(t, err)

	return srv, workspace
}

func TestTerminalRunCommand(t *testing.T) {
	srv, workspace := newTestTerminal(t)
	session := connectClient(t, srv.Server)

	result, text := callTool(t, session, "run_command", map[string]any{"command": "echo hello"})
	require.False(t, result.IsError, text)

	var cmdResult CommandResult
	require.NoError(t, json.Unmarshal([]byte(text), &cmdResult))

	assert.Equal(t, 0, cmdResult.ExitCode)
	assert.Equal(t, "hello\n", cmdResult.Stdout)
	assert.Equal(t, workspace, cmdResult.WorkingDirectory)
	assert.GreaterOrEqual(t, cmdResult.ExecutionTime, 0.0)
}

func TestTerminalRunCommandFailureExitCode(t *testing.T) {
	srv, _ := newTestTerminal(t)
	session := connectClient(t, srv.Server)

	_, text := callTool(t, session, "run_command", map[string]any{"command": "exit 3"})

	var cmdResult CommandResult
	require.NoError(t, json.Unmarshal([]byte(text), &cmdResult))
	assert.Equal(t, 3, cmdResult.ExitCode)
}

func TestTerminalRunCommandEmptyRejected(t *testing.T) {
	srv, _ := newTestTerminal(t)
	session := connectClient(t, srv.Server)

	result, text := callTool(t, session, "run_command", map[string]any{"command": "   "})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "empty")
}

func TestTerminalFileRoundTrip(t *testing.T) {
	srv, workspace := newTestTerminal(t)
	session := connectClient(t, srv.Server)

	result, _ := callTool(t, session, "write_file", map[string]any{
		"path":    "notes.txt",
		"content": "line one\n",
	})
	require.False(t, result.IsError)

	data, err := os.ReadFile(filepath.Join(workspace, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "line one\n", string(data))

	result, text := callTool(t, session, "read_file", map[string]any{"path": "notes.txt"})
	require.False(t, result.IsError)
	assert.Equal(t, "line one\n", text)

	_, text = callTool(t, session, "list_directory", map[string]any{"path": "."})

	var names []string
	require.NoError(t, json.Unmarshal([]byte(text), &names))
	assert.Contains(t, names, "notes.txt")
}

func TestTerminalRejectsWorkspaceEscape(t *testing.T) {
	srv, _ := newTestTerminal(t)
	session := connectClient(t, srv.Server)

	for _, path := range []string{"../outside.txt", "../../etc/passwd"} {
		result, text := callTool(t, session, "read_file", map[string]any{"path": path})
		assert.True(t, result.IsError, "path %s should be rejected", path)
		assert.Contains(t, text, "workspace")
	}
}

func TestTerminalWorkspaceCreated(t *testing.T) {
	t.Parallel()

	workspace := filepath.Join(t.TempDir(), "nested", "ws")

	srv, err := NewTerminalServer(workspace)
	require.NoError(t, err)

	info, err := os.Stat(srv.Workspace())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
