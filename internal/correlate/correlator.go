package correlate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

// DefaultRequestTimeout bounds one correlated request/response exchange.
const DefaultRequestTimeout = 30 * time.Second

// Conn performs the wire exchange with one server. The correlator owns
// correlation IDs and pending-request bookkeeping; the Conn owns the bytes.
type Conn interface {
	// Exchange sends a correlated request and blocks for its response.
	Exchange(ctx context.Context, msg *Message) (*Response, error)
	// Notify sends a message that expects no reply.
	Notify(ctx context.Context, msg *Message) error
	Close() error
}

// Dialer opens Conns from connection parameters. Tests substitute fakes.
type Dialer interface {
	Dial(ctx context.Context, serverName string, params *config.ConnectionParams) (Conn, error)
}

// Correlator manages per-server connections and request/response
// correlation. It generates unique IDs for outbound requests, tracks them in
// a pending table until their exchange completes, and dispatches inbound
// requests and notifications to registered method handlers.
//
// A Correlator is private to one session; connections are never shared
// across sessions.
type Correlator struct {
	log    *slog.Logger
	dialer Dialer

	// counter feeds the monotonic half of correlation IDs.
	counter atomic.Uint64

	connsMu sync.RWMutex
	conns   map[string]*activeConn

	pendingMu sync.RWMutex
	pending   map[string]*PendingMessage

	handlersMu sync.RWMutex
	handlers   map[string]Handler
}

// activeConn pairs a live Conn with its recorded info.
type activeConn struct {
	conn Conn
	info ConnectionInfo
}

// New creates a Correlator that opens connections through dialer.
func New(log *slog.Logger, dialer Dialer) *Correlator {
	return &Correlator{
		log:      log.With("component", "correlator"),
		dialer:   dialer,
		conns:    make(map[string]*activeConn, 4),
		pending:  make(map[string]*PendingMessage, 10),
		handlers: make(map[string]Handler, 10),
	}
}

// Connect establishes a connection to the named server and records it.
// Failures are recorded as a failed ConnectionInfo and reported as false;
// nothing propagates past this boundary.
func (c *Correlator) Connect(ctx context.Context, serverName string, params *config.ConnectionParams) bool {
	info := ConnectionInfo{
		Name: serverName,
		Type: string(params.Transport),
	}

	conn, err := c.dialer.Dial(ctx, serverName, params)
	if err != nil {
		c.log.Error("Could not connect to server", "server", serverName, "error", err)

		info.Status = ConnStateFailed

		c.connsMu.Lock()
		c.conns[serverName] = &activeConn{info: info}
		c.connsMu.Unlock()

		return false
	}

	now := time.Now()
	info.Status = ConnStateConnected
	info.ConnectedAt = now
	info.LastActivity = now

	c.connsMu.Lock()
	c.conns[serverName] = &activeConn{conn: conn, info: info}
	c.connsMu.Unlock()

	c.log.Info("Connected to server", "server", serverName, "transport", params.Transport)

	return true
}

// SendRequest sends a correlated request to the named server and waits for
// its response. The request gets a fresh correlation ID and an entry in the
// pending table for the duration of the exchange.
func (c *Correlator) SendRequest(
	ctx context.Context,
	serverName, method string,
	params map[string]any,
) (*Response, error) {
	conn := c.liveConn(serverName)
	if conn == nil {
		c.log.Warn("Request without active connection", "server", serverName, "method", method)

		return nil, fmt.Errorf("server %q: %w", serverName, errors.ErrNoActiveConnection)
	}

	id := c.nextID()

	c.pendingMu.Lock()
	c.pending[id] = &PendingMessage{
		ID:     id,
		Server: serverName,
		Method: method,
		SentAt: time.Now(),
	}
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	c.touch(serverName)

	c.log.Debug("Sending request", "server", serverName, "method", method, "id", id)

	exchangeCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	resp, err := conn.Exchange(exchangeCtx, &Message{ID: id, Method: method, Params: params})
	if err != nil {
		c.log.Warn("Request failed", "server", serverName, "method", method, "id", id, "error", err)

		return nil, fmt.Errorf("request %s to %q: %w", method, serverName, err)
	}

	c.touch(serverName)

	return resp, nil
}

// SendNotification sends a fire-and-forget message. Failures are logged and
// swallowed; the caller gets no delivery guarantee by contract.
func (c *Correlator) SendNotification(ctx context.Context, serverName, method string, params map[string]any) {
	conn := c.liveConn(serverName)
	if conn == nil {
		c.log.Warn("Notification without active connection", "server", serverName, "method", method)

		return
	}

	c.touch(serverName)

	if err := conn.Notify(ctx, &Message{Method: method, Params: params}); err != nil {
		c.log.Warn("Notification failed", "server", serverName, "method", method, "error", err)
	}
}

// RegisterHandler associates an inbound method with a handler. Registering
// the same method again replaces the previous handler.
func (c *Correlator) RegisterHandler(method string, handler Handler) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()

	c.log.Debug("Registering handler", "method", method)
	c.handlers[method] = handler
}

// DispatchIncoming routes one inbound message. A message with an ID is a
// request: the matching handler's result is wrapped in a response correlated
// by that ID, and a handler failure becomes an error response. A message
// without an ID is a notification: the handler runs for its side effects and
// the return is always nil.
//
// A request with no registered handler yields nil, not an error response;
// the peer sees silence and must apply its own timeout.
func (c *Correlator) DispatchIncoming(msg *Message) *Response {
	c.handlersMu.RLock()
	handler, exists := c.handlers[msg.Method]
	c.handlersMu.RUnlock()

	if msg.ID == "" {
		if !exists {
			c.log.Warn("No handler for notification", "method", msg.Method)

			return nil
		}

		if _, err := handler(msg.Params); err != nil {
			c.log.Warn("Notification handler failed", "method", msg.Method, "error", err)
		}

		return nil
	}

	if !exists {
		c.log.Warn("No handler for request", "method", msg.Method, "id", msg.ID, "error", errors.ErrNoHandler)

		return nil
	}

	result, err := handler(msg.Params)
	if err != nil {
		c.log.Warn("Request handler failed", "method", msg.Method, "id", msg.ID, "error", err)

		return &Response{ID: msg.ID, Error: err.Error()}
	}

	return &Response{ID: msg.ID, Result: result}
}

// Disconnect closes the named connection and marks it disconnected.
// Disconnecting a server with no active connection is a no-op.
func (c *Correlator) Disconnect(serverName string) {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()

	active, exists := c.conns[serverName]
	if !exists || active.conn == nil {
		c.log.Warn("Disconnect for unknown server", "server", serverName)

		return
	}

	if err := active.conn.Close(); err != nil {
		c.log.Warn("Error closing connection", "server", serverName, "error", err)
	}

	active.conn = nil
	active.info.Status = ConnStateDisconnected

	c.log.Info("Disconnected from server", "server", serverName)
}

// ShutdownAll disconnects every active connection. Safe to call repeatedly.
func (c *Correlator) ShutdownAll() {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()

	for name, active := range c.conns {
		if active.conn == nil {
			continue
		}

		if err := active.conn.Close(); err != nil {
			c.log.Warn("Error closing connection", "server", name, "error", err)
		}

		active.conn = nil
		active.info.Status = ConnStateDisconnected
	}
}

// Connections returns a snapshot of all recorded connection info.
func (c *Correlator) Connections() map[string]ConnectionInfo {
	c.connsMu.RLock()
	defer c.connsMu.RUnlock()

	infos := make(map[string]ConnectionInfo, len(c.conns))
	for name, active := range c.conns {
		infos[name] = active.info
	}

	return infos
}

// PendingCount reports the number of requests awaiting responses.
func (c *Correlator) PendingCount() int {
	c.pendingMu.RLock()
	defer c.pendingMu.RUnlock()

	return len(c.pending)
}

// nextID allocates a correlation ID. The monotonic counter orders IDs within
// one process; the ULID suffix keeps them unique across restarts that share
// a log.
func (c *Correlator) nextID() string {
	return fmt.Sprintf("req-%d-%s", c.counter.Add(1), ulid.Make().String())
}

// liveConn returns the active Conn for a server, or nil.
func (c *Correlator) liveConn(serverName string) Conn {
	c.connsMu.RLock()
	defer c.connsMu.RUnlock()

	active, exists := c.conns[serverName]
	if !exists || active.conn == nil || active.info.Status != ConnStateConnected {
		return nil
	}

	return active.conn
}

// touch bumps a connection's last-activity timestamp.
func (c *Correlator) touch(serverName string) {
	c.connsMu.Lock()
	defer c.connsMu.Unlock()

	if active, exists := c.conns[serverName]; exists {
		active.info.LastActivity = time.Now()
	}
}
