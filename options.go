package mcporch

import (
	"log/slog"
	"time"
)

// SessionOptions holds the full session configuration. Most callers build
// it through functional options passed to New.
type SessionOptions struct {
	// Logger receives structured logs. Nil disables logging.
	Logger *slog.Logger

	// AppName identifies the application owning the session.
	AppName string

	// UserID identifies the user the session serves.
	UserID string

	// SystemPrompt is the instruction text handed to the engine. May be
	// empty for engines that carry their own framing.
	SystemPrompt string

	// ConfigPath locates the server configuration file. Empty falls back
	// to the MCPORCH_CONFIG environment variable, then config/servers.json.
	ConfigPath string

	// Servers supplies descriptors directly, bypassing the config file.
	Servers map[string]*ServerDescriptor

	// ProjectRoot anchors relative tool-server script paths.
	ProjectRoot string

	// ConnectTimeout bounds each server connection attempt.
	ConnectTimeout time.Duration

	// PermittedTools restricts discovery to the named tools. Empty keeps all.
	PermittedTools []string

	// Debug starts the session with verbose event diagnostics enabled.
	Debug bool

	// Observer receives a diagnostic record per classified event while
	// debug mode is on.
	Observer DebugObserver

	// Connector overrides how tool-server connections are opened.
	Connector Connector

	// Dialer overrides how correlated-exchange connections are opened.
	Dialer Dialer
}

// Option configures SessionOptions using the functional options pattern.
type Option func(*SessionOptions)

// applySessionOptions applies functional options to a SessionOptions struct.
func applySessionOptions(opts []Option) *SessionOptions {
	options := &SessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for structured output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *SessionOptions) {
		o.Logger = logger
	}
}

// WithAppName identifies the owning application in logs and status output.
func WithAppName(name string) Option {
	return func(o *SessionOptions) {
		o.AppName = name
	}
}

// WithUserID identifies the user the session serves.
func WithUserID(id string) Option {
	return func(o *SessionOptions) {
		o.UserID = id
	}
}

// WithSystemPrompt sets the instruction text handed to the engine.
func WithSystemPrompt(prompt string) Option {
	return func(o *SessionOptions) {
		o.SystemPrompt = prompt
	}
}

// WithConfigPath sets the server configuration file path.
func WithConfigPath(path string) Option {
	return func(o *SessionOptions) {
		o.ConfigPath = path
	}
}

// WithServers supplies server descriptors directly instead of loading a
// configuration file.
func WithServers(servers map[string]*ServerDescriptor) Option {
	return func(o *SessionOptions) {
		o.Servers = servers
	}
}

// WithProjectRoot sets the directory relative tool-server script paths are
// resolved against.
func WithProjectRoot(root string) Option {
	return func(o *SessionOptions) {
		o.ProjectRoot = root
	}
}

// WithConnectTimeout bounds each server connection attempt.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(o *SessionOptions) {
		o.ConnectTimeout = timeout
	}
}

// WithPermittedTools restricts discovery to the named tools.
// An empty list keeps every discovered tool.
func WithPermittedTools(tools ...string) Option {
	return func(o *SessionOptions) {
		o.PermittedTools = tools
	}
}

// WithDebug starts the session with verbose event diagnostics enabled.
// The flag can be flipped later with Session.SetDebug.
func WithDebug(debug bool) Option {
	return func(o *SessionOptions) {
		o.Debug = debug
	}
}

// WithDebugObserver registers a receiver for per-event diagnostic records.
// Records flow only while debug mode is on.
func WithDebugObserver(observer DebugObserver) Option {
	return func(o *SessionOptions) {
		o.Observer = observer
	}
}

// WithConnector overrides how tool-server connections are opened.
// The default dials real MCP servers.
func WithConnector(connector Connector) Option {
	return func(o *SessionOptions) {
		o.Connector = connector
	}
}

// WithDialer overrides how correlated-exchange connections are opened.
func WithDialer(dialer Dialer) Option {
	return func(o *SessionOptions) {
		o.Dialer = dialer
	}
}
