package mcporch

import (
	"iter"
)

// EventsFromSlice creates an engine event stream from fixed events.
// This is useful for engines that compute their whole turn up front.
func EventsFromSlice(events ...*EngineEvent) iter.Seq2[*EngineEvent, error] {
	return func(yield func(*EngineEvent, error) bool) {
		for _, ev := range events {
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// EventsFromChannel creates an engine event stream from a channel.
// This is useful for engines that produce events over time. The stream
// completes when the channel is closed.
func EventsFromChannel(ch <-chan *EngineEvent) iter.Seq2[*EngineEvent, error] {
	return func(yield func(*EngineEvent, error) bool) {
		for ev := range ch {
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// FinalEvent creates the terminal event of a turn carrying its answer text.
func FinalEvent(content string) *EngineEvent {
	return &EngineEvent{Content: content, IsFinal: true}
}
