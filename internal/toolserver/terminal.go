package toolserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// commandTimeout bounds one shell command execution.
const commandTimeout = 30 * time.Second

// maxCommandLength caps accepted command strings.
const maxCommandLength = 1000

// CommandResult is the structured outcome of one shell command.
type CommandResult struct {
	Command          string  `json:"command"`
	ExitCode         int     `json:"exit_code"`
	Stdout           string  `json:"stdout"`
	Stderr           string  `json:"stderr"`
	WorkingDirectory string  `json:"working_directory"`
	ExecutionTime    float64 `json:"execution_time"`
}

// TerminalServer serves file and shell tools restricted to one workspace
// directory. Commands run with the workspace as their working directory and
// file tools refuse paths that escape it.
type TerminalServer struct {
	*Server

	workspace string
}

// NewTerminalServer creates the terminal tool server rooted at workspace.
// The directory is created if it does not exist.
func NewTerminalServer(workspace string) (*TerminalServer, error) {
	abs, err := filepath.Abs(workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	t := &TerminalServer{
		Server:    NewServer("terminal-server", "1.0.0"),
		workspace: abs,
	}

	t.AddTool(&mcp.Tool{
		Name:        "run_command",
		Description: "Execute shell commands within a secure workspace environment. Ideal for file operations, text processing, and system administration tasks.",
		InputSchema: SimpleSchema(map[string]string{"command": "string"}),
	}, t.runCommand)

	t.AddTool(&mcp.Tool{
		Name:        "list_directory",
		Description: "List directory contents within the workspace",
		InputSchema: SimpleSchema(map[string]string{"path": "string"}),
	}, t.listDirectory)

	t.AddTool(&mcp.Tool{
		Name:        "read_file",
		Description: "Read file contents from the workspace",
		InputSchema: SimpleSchema(map[string]string{"path": "string"}),
	}, t.readFile)

	t.AddTool(&mcp.Tool{
		Name:        "write_file",
		Description: "Write content to a file in the workspace",
		InputSchema: SimpleSchema(map[string]string{"path": "string", "content": "string"}),
	}, t.writeFile)

	return t, nil
}

// Workspace returns the absolute workspace directory.
func (t *TerminalServer) Workspace() string {
	return t.workspace
}

func (t *TerminalServer) runCommand(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	command, _ := args["command"].(string)
	command = strings.TrimSpace(command)

	if command == "" {
		return ErrorResult("Command cannot be empty"), nil
	}

	if len(command) > maxCommandLength {
		return ErrorResult("Command exceeds maximum length"), nil
	}

	execCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = t.workspace

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start).Seconds()

	result := &CommandResult{
		Command:          command,
		Stdout:           stdout.String(),
		Stderr:           stderr.String(),
		WorkingDirectory: t.workspace,
		ExecutionTime:    elapsed,
	}

	switch {
	case errors.Is(execCtx.Err(), context.DeadlineExceeded):
		result.ExitCode = -1
		result.Stderr = fmt.Sprintf("Command execution timed out after %s", commandTimeout)
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Stderr = "Command execution failed: " + err.Error()
		}
	}

	return JSONResult(result), nil
}

func (t *TerminalServer) listDirectory(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, result := t.resolvePath(req, "path")
	if result != nil {
		return result, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return ErrorResult("list directory: " + err.Error()), nil
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}

		names = append(names, name)
	}

	sort.Strings(names)

	return JSONResult(names), nil
}

func (t *TerminalServer) readFile(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, result := t.resolvePath(req, "path")
	if result != nil {
		return result, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ErrorResult("read file: " + err.Error()), nil
	}

	return TextResult(string(data)), nil
}

func (t *TerminalServer) writeFile(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, result := t.resolvePath(req, "path")
	if result != nil {
		return result, nil
	}

	args, err := ParseArguments(req)
	if err != nil {
		return ErrorResult(err.Error()), nil
	}

	content, _ := args["content"].(string)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return ErrorResult("write file: " + err.Error()), nil
	}

	return TextResult(fmt.Sprintf("Wrote %d bytes to %s", len(content), filepath.Base(path))), nil
}

// resolvePath extracts a path argument and confines it to the workspace.
// A non-nil result is the error to return to the caller.
func (t *TerminalServer) resolvePath(req *mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	args, err := ParseArguments(req)
	if err != nil {
		return "", ErrorResult(err.Error())
	}

	rel, _ := args[key].(string)
	if rel == "" {
		rel = "."
	}

	abs := filepath.Join(t.workspace, rel)

	if abs != t.workspace && !strings.HasPrefix(abs, t.workspace+string(filepath.Separator)) {
		return "", ErrorResult("path escapes the workspace")
	}

	return abs, nil
}
