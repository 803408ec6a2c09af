package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/discovery"
	"github.com/unimcp/mcp-orchestrator-go/internal/engine"
	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

// State is the orchestrator lifecycle phase.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateDiscovering   State = "discovering"
	StateReady         State = "ready"
	StateFailed        State = "failed"
	StateTerminated    State = "terminated"
)

// shutdownGrace gives spawned server processes a moment to exit after their
// connections close before shutdown returns.
const shutdownGrace = 500 * time.Millisecond

// Status is a point-in-time snapshot of the orchestrator.
type Status struct {
	State    State
	Ready    bool
	Servers  map[string]*discovery.ConnectionStatus
	Toolsets int
}

// Orchestrator drives a session through its lifecycle: discover toolsets,
// bind them to a fresh engine, and tear everything down at shutdown.
//
// The state machine is uninitialized, then discovering, then ready or
// failed; ready transitions only to terminated, and terminated is absorbing.
type Orchestrator struct {
	log        *slog.Logger
	discoverer *discovery.Discoverer
	factory    engine.Factory
	base       engine.Binding

	mu       sync.Mutex
	state    State
	toolsets []*discovery.Toolset
	statuses map[string]*discovery.ConnectionStatus
	eng      engine.Engine
}

// New creates an Orchestrator in the uninitialized state. base carries the
// session identity and system prompt handed to the engine at every Start;
// its Toolsets field is overwritten by discovery.
func New(log *slog.Logger, discoverer *discovery.Discoverer, factory engine.Factory, base engine.Binding) *Orchestrator {
	return &Orchestrator{
		log:        log.With("component", "orchestrator"),
		discoverer: discoverer,
		factory:    factory,
		base:       base,
		state:      StateUninitialized,
		statuses:   make(map[string]*discovery.ConnectionStatus),
	}
}

// Start discovers toolsets for the given descriptors and binds them to a new
// engine. Per-server discovery failures degrade capability but do not fail
// the start; only an engine construction failure does. Starting an already
// ready orchestrator is a warning no-op.
func (o *Orchestrator) Start(ctx context.Context, descriptors map[string]*config.ServerDescriptor) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateReady:
		o.log.Warn("Start called on a ready session")

		return nil
	case StateTerminated:
		return errors.ErrSessionTerminated
	case StateDiscovering:
		return errors.ErrNotInitialized
	case StateUninitialized, StateFailed:
	}

	o.state = StateDiscovering
	o.log.Info("Starting session", "servers", len(descriptors))

	toolsets, statuses := o.discoverer.DiscoverAll(ctx, descriptors)

	if len(toolsets) == 0 {
		o.log.Warn("Session starting with no toolsets, capability is degraded")
	}

	binding := o.base
	binding.Toolsets = toolsets

	eng, err := o.factory(ctx, &binding)
	if err != nil {
		o.log.Error("Engine construction failed", "error", err)

		o.closeToolsetsLocked(toolsets)
		o.state = StateFailed

		return &errors.EngineInitError{Err: err}
	}

	o.toolsets = toolsets
	o.statuses = statuses
	o.eng = eng
	o.state = StateReady

	o.log.Info("Session ready", "toolsets", len(toolsets))

	return nil
}

// Shutdown releases every toolset connection and the engine, then moves to
// terminated. Individual close failures are logged and do not stop the rest.
// Shutdown on an uninitialized or already terminated orchestrator is a
// no-op.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateUninitialized || o.state == StateTerminated {
		return nil
	}

	o.log.Info("Shutting down session")

	o.closeToolsetsLocked(o.toolsets)
	o.toolsets = nil

	if o.eng != nil {
		if err := o.eng.Close(); err != nil {
			o.log.Warn("Error closing engine", "error", err)
		}

		o.eng = nil
	}

	// Let spawned server processes notice their closed stdin and exit.
	select {
	case <-time.After(shutdownGrace):
	case <-ctx.Done():
	}

	o.state = StateTerminated
	o.log.Info("Session terminated")

	return nil
}

// Engine returns the bound engine, or an error when the orchestrator is not
// ready for turns.
func (o *Orchestrator) Engine() (engine.Engine, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateReady:
		return o.eng, nil
	case StateTerminated:
		return nil, errors.ErrSessionTerminated
	default:
		return nil, errors.ErrNotInitialized
	}
}

// Status snapshots the current state. The servers map always covers every
// configured descriptor from the last Start.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()

	servers := make(map[string]*discovery.ConnectionStatus, len(o.statuses))
	for name, status := range o.statuses {
		copied := *status
		servers[name] = &copied
	}

	return Status{
		State:    o.state,
		Ready:    o.state == StateReady,
		Servers:  servers,
		Toolsets: len(o.toolsets),
	}
}

// Toolsets returns the live toolsets. The slice must not be mutated.
func (o *Orchestrator) Toolsets() []*discovery.Toolset {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.toolsets
}

// closeToolsetsLocked closes toolset connections best-effort. Caller must
// hold o.mu.
func (o *Orchestrator) closeToolsetsLocked(toolsets []*discovery.Toolset) {
	for _, ts := range toolsets {
		if err := ts.Close(); err != nil {
			o.log.Warn("Error closing toolset", "server", ts.ServerName, "error", err)
		}
	}
}
