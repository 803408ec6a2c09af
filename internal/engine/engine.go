package engine

import (
	"context"
	"iter"

	"github.com/unimcp/mcp-orchestrator-go/internal/discovery"
)

// Engine executes one user turn against the bound toolsets and streams the
// resulting events. Implementations wrap whatever reasoning backend drives
// the tools; the orchestration layer treats them as opaque.
type Engine interface {
	// Run starts one turn and returns a live event stream. The stream ends
	// when the engine finishes the turn or ctx is cancelled.
	Run(ctx context.Context, req *TurnRequest) iter.Seq2[*Event, error]

	// Close releases engine resources. Called once at session shutdown.
	Close() error
}

// Binding is everything the orchestration layer hands an engine at
// construction: the aggregated toolsets, the system instruction, and the
// identifiers of the session the engine serves.
type Binding struct {
	Toolsets []*discovery.Toolset

	// SystemPrompt is the instruction text framing every turn. May be empty.
	SystemPrompt string

	AppName   string
	UserID    string
	SessionID string
}

// Factory constructs an engine from a binding. An empty toolset slice is
// valid: the engine runs with degraded capability. A factory failure is the
// one hard failure in session startup.
type Factory func(ctx context.Context, binding *Binding) (Engine, error)

// TurnRequest carries one user turn into the engine.
type TurnRequest struct {
	Prompt string
	// Debug asks the engine for any extra diagnostics it can attach.
	Debug bool
}

// Event is one raw engine emission during a turn. Zero or more intermediate
// events precede at most one final event.
type Event struct {
	// Content is the textual fragment this event carries, if any.
	Content string

	// ToolCalls names the tools the engine invoked in this step.
	ToolCalls []string

	// ToolResults reports completed tool invocations.
	ToolResults []ToolResult

	// IsFinal marks the turn's terminal event. Content on a final event is
	// the turn's answer text.
	IsFinal bool
}

// ToolResult is one completed tool invocation inside an event.
type ToolResult struct {
	Name    string
	IsError bool
	Output  string
}
