package mcporch

import (
	"log/slog"
)

// NopLogger returns a logger that drops every record. It is the default when
// no WithLogger option is given, keeping the session silent.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
