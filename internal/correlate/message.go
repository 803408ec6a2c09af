package correlate

import "time"

// Message is one inbound or outbound exchange unit. A message with an ID and
// a method is a request; with an ID and no method, a response; with no ID, a
// fire-and-forget notification.
type Message struct {
	ID     string         `json:"id,omitempty"`
	Method string         `json:"method,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// Response answers a correlated request. Exactly one of Result and Error is
// meaningful.
type Response struct {
	ID     string         `json:"id"`
	Result map[string]any `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// IsError reports whether the response carries a failure.
func (r *Response) IsError() bool {
	return r.Error != ""
}

// Handler processes one inbound request or notification. The returned
// payload becomes the response result for requests and is discarded for
// notifications.
type Handler func(params map[string]any) (map[string]any, error)

// ConnState tracks a recorded connection's status.
type ConnState string

const (
	ConnStateConnected    ConnState = "connected"
	ConnStateFailed       ConnState = "failed"
	ConnStateDisconnected ConnState = "disconnected"
)

// ConnectionInfo is the correlator's record of one server connection.
type ConnectionInfo struct {
	Name         string
	Type         string
	Status       ConnState
	ConnectedAt  time.Time
	LastActivity time.Time
}

// PendingMessage tracks one outstanding request awaiting its response.
type PendingMessage struct {
	ID     string
	Server string
	Method string
	SentAt time.Time
}
