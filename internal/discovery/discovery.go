package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

// ConnectionState tracks where a server is in its connection lifecycle.
type ConnectionState string

const (
	StateDisconnected     ConnectionState = "disconnected"
	StateConnecting       ConnectionState = "connecting"
	StateConnected        ConnectionState = "connected"
	StateInvalidConfig    ConnectionState = "invalid_configuration"
	StateNoToolsFound     ConnectionState = "no_tools_found"
	StateConnectionError  ConnectionState = "connection_error"
	StateConnectionFailed ConnectionState = "connection_failed"
)

// ConnectionStatus records the discovery outcome for a single server.
type ConnectionStatus struct {
	Name         string          `json:"name"`
	State        ConnectionState `json:"state"`
	ToolCount    int             `json:"toolCount"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	ConnectedAt  time.Time       `json:"connectedAt,omitzero"`
}

// Tool is one callable tool exposed by a connected server. Handler closes
// over the server connection, so calling it routes the invocation back to
// the server that advertised the tool.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     func(ctx context.Context, input json.RawMessage) (string, error)
}

// Toolset is the set of tools one server contributed, together with the
// live connection they execute against.
type Toolset struct {
	ServerName string
	Tools      []Tool

	conn Connection
}

// Close releases the server connection backing this toolset.
func (t *Toolset) Close() error {
	if t.conn == nil {
		return nil
	}

	return t.conn.Close()
}

// Connection is a live link to one tool server.
type Connection interface {
	// ListTools fetches the tools the server advertises.
	ListTools(ctx context.Context) ([]Tool, error)
	// Close tears the connection down, terminating a spawned server process.
	Close() error
}

// Connector opens connections from built connection parameters. The default
// implementation dials real MCP servers; tests substitute fakes.
type Connector interface {
	Connect(ctx context.Context, serverName string, params *config.ConnectionParams) (Connection, error)
}

// Options tunes a Discoverer.
type Options struct {
	// ProjectRoot anchors relative tool-server script paths.
	ProjectRoot string
	// ConnectTimeout bounds each server connection attempt. Zero means
	// config.DefaultConnectTimeout.
	ConnectTimeout time.Duration
	// PermittedTools, when non-empty, restricts the discovered tools to the
	// named ones. Servers whose tools are all filtered out report
	// no_tools_found.
	PermittedTools []string
}

// Discoverer connects to every configured server and collects toolsets. Each
// server is handled independently: one bad descriptor or unreachable server
// never blocks the others.
type Discoverer struct {
	log       *slog.Logger
	connector Connector
	opts      Options
	permitted map[string]bool
}

// New creates a Discoverer using the given connector.
func New(log *slog.Logger, connector Connector, opts Options) *Discoverer {
	var permitted map[string]bool

	if len(opts.PermittedTools) > 0 {
		permitted = make(map[string]bool, len(opts.PermittedTools))
		for _, name := range opts.PermittedTools {
			permitted[name] = true
		}
	}

	return &Discoverer{
		log:       log.With("component", "discovery"),
		connector: connector,
		opts:      opts,
		permitted: permitted,
	}
}

// DiscoverAll validates, connects, and lists tools for every descriptor
// concurrently. It always returns one status per descriptor, and only the
// toolsets of servers that reached the connected state. Per-server failures
// live in the status map and never cross server boundaries.
func (d *Discoverer) DiscoverAll(
	ctx context.Context,
	descriptors map[string]*config.ServerDescriptor,
) ([]*Toolset, map[string]*ConnectionStatus) {
	statuses := make(map[string]*ConnectionStatus, len(descriptors))
	toolsets := make([]*Toolset, 0, len(descriptors))

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	for name, desc := range descriptors {
		g.Go(func() error {
			toolset, status := d.discoverOne(ctx, name, desc)

			mu.Lock()
			defer mu.Unlock()

			statuses[name] = status
			if toolset != nil {
				toolsets = append(toolsets, toolset)
			}

			return nil
		})
	}

	// Workers never return errors; per-server failures are captured in the
	// status entries instead.
	_ = g.Wait()

	sort.Slice(toolsets, func(i, j int) bool {
		return toolsets[i].ServerName < toolsets[j].ServerName
	})

	return toolsets, statuses
}

// discoverOne runs the validate-connect-list pipeline for a single server.
func (d *Discoverer) discoverOne(
	ctx context.Context,
	name string,
	desc *config.ServerDescriptor,
) (*Toolset, *ConnectionStatus) {
	status := &ConnectionStatus{Name: name, State: StateConnecting}

	result := config.Validate(name, desc)
	if !result.IsValid {
		d.log.Warn("Skipping server with invalid configuration",
			"server", name,
			"missing", result.MissingFields,
			"invalid", result.InvalidFields)

		status.State = StateInvalidConfig
		status.ErrorMessage = validationMessage(result)

		return nil, status
	}

	params, err := config.BuildConnectionParams(name, desc, d.opts.ProjectRoot, d.opts.ConnectTimeout)
	if err != nil {
		status.State = StateConnectionFailed
		status.ErrorMessage = err.Error()

		return nil, status
	}

	connectCtx, cancel := context.WithTimeout(ctx, params.Timeout)
	defer cancel()

	conn, err := d.connector.Connect(connectCtx, name, params)
	if err != nil {
		if connectCtx.Err() != nil && ctx.Err() == nil {
			err = fmt.Errorf("%w after %s: %w", errors.ErrConnectionTimeout, params.Timeout, err)
		}

		d.log.Error("Could not connect to server", "server", name, "error", err)

		status.State = StateConnectionError
		status.ErrorMessage = err.Error()

		return nil, status
	}

	tools, err := conn.ListTools(connectCtx)
	if err != nil {
		d.log.Error("Could not list tools", "server", name, "error", err)

		_ = conn.Close()

		status.State = StateConnectionError
		status.ErrorMessage = err.Error()

		return nil, status
	}

	tools = d.filterTools(name, tools)
	if len(tools) == 0 {
		d.log.Warn("Server exposes no usable tools", "server", name)

		_ = conn.Close()

		status.State = StateNoToolsFound

		return nil, status
	}

	status.State = StateConnected
	status.ToolCount = len(tools)
	status.ConnectedAt = time.Now()

	d.log.Info("Discovered tools", "server", name, "count", len(tools))

	return &Toolset{ServerName: name, Tools: tools, conn: conn}, status
}

// filterTools applies the permitted-tools allow list.
func (d *Discoverer) filterTools(server string, tools []Tool) []Tool {
	if d.permitted == nil {
		return tools
	}

	kept := make([]Tool, 0, len(tools))

	for _, tool := range tools {
		if d.permitted[tool.Name] {
			kept = append(kept, tool)
		} else {
			d.log.Debug("Filtered tool not on allow list", "server", server, "tool", tool.Name)
		}
	}

	return kept
}

// validationMessage flattens a validation result into one error string.
func validationMessage(result config.ValidationResult) string {
	msg := "invalid configuration"

	for _, field := range result.MissingFields {
		msg += "; missing " + field
	}

	for _, field := range result.InvalidFields {
		msg += "; " + field
	}

	return msg
}
