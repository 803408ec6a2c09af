// Package discovery connects to configured tool servers and collects the
// tools each one advertises.
//
// DiscoverAll fans out over all descriptors concurrently and reports one
// ConnectionStatus per server regardless of outcome, so a caller can always
// answer "what happened to server X". Failures are isolated: an invalid
// descriptor or a dead server produces a failed status entry and nothing
// else, and every other server proceeds normally.
package discovery
