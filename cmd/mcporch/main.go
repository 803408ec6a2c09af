package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool
)

func main() {
	// Optional .env for MCPORCH_CONFIG and friends.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:     "mcporch",
		Short:   "Session orchestrator for MCP tool servers",
		Long:    "mcporch connects to configured MCP tool servers, aggregates their tools, and serves interactive turns against them.",
		Version: version,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to server config (default: $MCPORCH_CONFIG, then config/servers.json)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(chatCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger honoring --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
