// Package orchestrator owns the session lifecycle state machine. It runs
// toolset discovery, binds the result to an execution engine built through
// an injected factory, and releases everything at shutdown. Sessions are
// single-use: a terminated orchestrator never restarts.
package orchestrator
