package stream

import (
	"iter"
	"log/slog"
	"time"

	"github.com/unimcp/mcp-orchestrator-go/internal/engine"
)

// ResponseEvent is one classified event delivered to the turn's consumer.
// Exactly one final event ends a turn; a source that ends without one leaves
// the caller with no answer, which is not an error.
type ResponseEvent struct {
	// SequenceNumber starts at 1 and is strictly increasing within a turn.
	SequenceNumber int

	// ToolCalls names the tools invoked in this step.
	ToolCalls []string

	// ToolResponses reports completed tool invocations.
	ToolResponses []ToolResponse

	// Content is an intermediate fragment on non-final events and the
	// turn's answer text on the final one.
	Content string

	IsFinal bool
}

// ToolResponse is a completed tool invocation inside a classified event.
type ToolResponse struct {
	Name    string
	Success bool
}

// Record is the diagnostic rendering of one classified event, emitted on
// the debug side channel. It mirrors the event without altering it.
type Record struct {
	Success   bool           `json:"success"`
	Timestamp time.Time      `json:"timestamp"`
	Data      *ResponseEvent `json:"data"`
	Message   string         `json:"message,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Observer receives a diagnostic record per classified event when debug
// mode is on. Observers must not mutate the event.
type Observer func(rec *Record)

// Processor turns a raw engine event stream into the classified sequence a
// caller consumes. Instances are cheap and stateless between turns.
type Processor struct {
	log      *slog.Logger
	observer Observer
}

// New creates a Processor. observer may be nil.
func New(log *slog.Logger, observer Observer) *Processor {
	return &Processor{
		log:      log.With("component", "stream"),
		observer: observer,
	}
}

// Process consumes source lazily and yields classified events, stopping
// after the first final event or when the source ends. The returned
// sequence is single-use.
//
// Non-final events that carry neither tool activity nor content are
// dropped; when debug is off, content-only intermediate fragments are
// dropped too, since they exist only for diagnostic display.
func (p *Processor) Process(source iter.Seq2[*engine.Event, error], debug bool) iter.Seq2[*ResponseEvent, error] {
	return func(yield func(*ResponseEvent, error) bool) {
		seq := 0

		for ev, err := range source {
			if err != nil {
				p.log.Error("Event source failed", "error", err)

				yield(nil, err)

				return
			}

			classified := classify(ev)
			if classified == nil {
				continue
			}

			if !debug && !classified.IsFinal &&
				len(classified.ToolCalls) == 0 && len(classified.ToolResponses) == 0 {
				continue
			}

			seq++
			classified.SequenceNumber = seq

			p.observe(classified, debug)

			if !yield(classified, nil) {
				return
			}

			if classified.IsFinal {
				return
			}
		}

		p.log.Debug("Event source ended without a final event")
	}
}

// classify resolves one raw event into a tagged ResponseEvent, or nil for
// events with nothing observable.
func classify(ev *engine.Event) *ResponseEvent {
	out := &ResponseEvent{IsFinal: ev.IsFinal}

	if len(ev.ToolCalls) > 0 {
		out.ToolCalls = append(out.ToolCalls, ev.ToolCalls...)
	}

	for _, result := range ev.ToolResults {
		out.ToolResponses = append(out.ToolResponses, ToolResponse{
			Name:    result.Name,
			Success: !result.IsError,
		})
	}

	out.Content = ev.Content

	if !out.IsFinal && len(out.ToolCalls) == 0 && len(out.ToolResponses) == 0 && out.Content == "" {
		return nil
	}

	return out
}

// observe emits the diagnostic record for a classified event.
func (p *Processor) observe(ev *ResponseEvent, debug bool) {
	if !debug || p.observer == nil {
		return
	}

	success := true

	for _, resp := range ev.ToolResponses {
		if !resp.Success {
			success = false

			break
		}
	}

	p.observer(&Record{
		Success:   success,
		Timestamp: time.Now().UTC(),
		Data:      ev,
		Metadata: map[string]any{
			"sequence": ev.SequenceNumber,
			"final":    ev.IsFinal,
		},
	})
}
