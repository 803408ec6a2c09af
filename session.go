package mcporch

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/correlate"
	"github.com/unimcp/mcp-orchestrator-go/internal/discovery"
	"github.com/unimcp/mcp-orchestrator-go/internal/engine"
	"github.com/unimcp/mcp-orchestrator-go/internal/orchestrator"
	"github.com/unimcp/mcp-orchestrator-go/internal/stream"
)

// SessionStatus is a read-only snapshot of a session for display by any
// front-end.
type SessionStatus struct {
	AppName      string
	UserID       string
	SessionID    string
	Ready        bool
	State        string
	DebugEnabled bool
	Toolsets     int

	// Servers has one entry per configured server from the last Start.
	Servers map[string]*ConnectionStatus
}

// Session binds discovered toolsets to an execution engine and serves user
// turns against it. Sessions are single-use: after Shutdown, create a new
// one with New.
//
// A session serves one turn at a time; starting a turn while another is in
// flight fails with ErrTurnInProgress rather than queueing.
type Session struct {
	log  *slog.Logger
	opts *SessionOptions
	id   string

	orch *orchestrator.Orchestrator
	corr *correlate.Correlator
	proc *stream.Processor

	debug  atomic.Bool
	turnMu sync.Mutex
}

// New creates a Session that builds its engine through factory once Start
// has discovered the toolsets.
func New(factory EngineFactory, opts ...Option) *Session {
	options := applySessionOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	connector := options.Connector
	if connector == nil {
		connector = discovery.NewMCPConnector()
	}

	dialer := options.Dialer
	if dialer == nil {
		dialer = unconfiguredDialer{}
	}

	discoverer := discovery.New(log, connector, discovery.Options{
		ProjectRoot:    options.ProjectRoot,
		ConnectTimeout: options.ConnectTimeout,
		PermittedTools: options.PermittedTools,
	})

	id := ulid.Make().String()

	s := &Session{
		log:  log.With("component", "session", "session_id", id),
		opts: options,
		id:   id,
		orch: orchestrator.New(log, discoverer, factory, engine.Binding{
			SystemPrompt: options.SystemPrompt,
			AppName:      options.AppName,
			UserID:       options.UserID,
			SessionID:    id,
		}),
		corr: correlate.New(log, dialer),
		proc: stream.New(log, options.Observer),
	}
	s.debug.Store(options.Debug)

	return s
}

// ID returns the unique identifier assigned to this session at creation.
func (s *Session) ID() string {
	return s.id
}

// Start discovers toolsets from the configured servers and binds them to a
// fresh engine. Per-server failures degrade capability without failing the
// start; only engine construction failure does. Start on an already ready
// session is a no-op.
func (s *Session) Start(ctx context.Context) error {
	descriptors := s.opts.Servers

	if descriptors == nil {
		loader := config.NewLoader(s.log, s.opts.ConfigPath)

		servers, err := loader.Servers()
		if err != nil {
			return fmt.Errorf("load server configuration: %w", err)
		}

		descriptors = servers
	}

	return s.orch.Start(ctx, descriptors)
}

// ProcessTurn runs one user turn and returns its classified event stream.
// The sequence is lazy, finite, and single-use: it ends at the first final
// event or when the engine's stream does. A session that is not ready
// yields a single error; so does starting a turn while one is in flight.
func (s *Session) ProcessTurn(ctx context.Context, prompt string) iter.Seq2[*ResponseEvent, error] {
	return func(yield func(*ResponseEvent, error) bool) {
		eng, err := s.orch.Engine()
		if err != nil {
			yield(nil, err)

			return
		}

		if !s.turnMu.TryLock() {
			yield(nil, ErrTurnInProgress)

			return
		}
		defer s.turnMu.Unlock()

		debug := s.debug.Load()

		s.log.Debug("Processing turn", "debug", debug)

		source := eng.Run(ctx, &engine.TurnRequest{Prompt: prompt, Debug: debug})

		for ev, err := range s.proc.Process(source, debug) {
			if !yield(ev, err) {
				return
			}

			if err != nil {
				return
			}
		}
	}
}

// SetDebug flips verbose event diagnostics. The change is observable in the
// next turn and in the status snapshot immediately.
func (s *Session) SetDebug(enabled bool) {
	s.debug.Store(enabled)
	s.log.Info("Debug mode changed", "enabled", enabled)
}

// DebugEnabled reports whether verbose diagnostics are on.
func (s *Session) DebugEnabled() bool {
	return s.debug.Load()
}

// Status returns a point-in-time snapshot of the session.
func (s *Session) Status() SessionStatus {
	orchStatus := s.orch.Status()

	return SessionStatus{
		AppName:      s.opts.AppName,
		UserID:       s.opts.UserID,
		SessionID:    s.id,
		Ready:        orchStatus.Ready,
		State:        string(orchStatus.State),
		DebugEnabled: s.debug.Load(),
		Toolsets:     orchStatus.Toolsets,
		Servers:      orchStatus.Servers,
	}
}

// Toolsets returns the live toolsets bound to the session's engine.
func (s *Session) Toolsets() []*Toolset {
	return s.orch.Toolsets()
}

// Correlator exposes the session's message correlator for discrete
// request/response exchanges outside the turn's streaming channel.
func (s *Session) Correlator() *Correlator {
	return s.corr
}

// Shutdown releases every connection and the engine, then terminates the
// session. Individual close failures are logged, not returned. Shutdown is
// idempotent and a no-op on a session that never started.
func (s *Session) Shutdown(ctx context.Context) error {
	s.corr.ShutdownAll()

	return s.orch.Shutdown(ctx)
}

// unconfiguredDialer is the default correlate.Dialer. Sessions that never
// set WithDialer record failed correlator connections instead of dialing.
type unconfiguredDialer struct{}

func (unconfiguredDialer) Dial(_ context.Context, serverName string, _ *config.ConnectionParams) (correlate.Conn, error) {
	return nil, fmt.Errorf("no dialer configured for server %q", serverName)
}
