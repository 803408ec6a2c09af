package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/unimcp/mcp-orchestrator-go/internal/toolserver"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run one of the bundled tool servers",
	}

	cmd.AddCommand(serveTemperatureCmd())
	cmd.AddCommand(serveTerminalCmd())

	return cmd
}

func serveTemperatureCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "temperature",
		Short: "Serve the temperature conversion tools",
		Long:  "Serves the six temperature conversion tools over stdio, or over HTTP with --http.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := toolserver.NewTemperatureServer()

			if httpAddr == "" {
				return srv.ServeStdio(cmd.Context())
			}

			return serveHTTP(cmd.Context(), httpAddr, srv.HTTPHandler())
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve over HTTP on this address instead of stdio (e.g. :8765)")

	return cmd
}

func serveTerminalCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "terminal",
		Short: "Serve the workspace-confined terminal tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if workspace == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve working directory: %w", err)
				}

				workspace = cwd
			}

			srv, err := toolserver.NewTerminalServer(workspace)
			if err != nil {
				return fmt.Errorf("init terminal server: %w", err)
			}

			return srv.ServeStdio(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "directory commands are confined to (default: current directory)")

	return cmd
}

// serveHTTP runs an HTTP server until the context is cancelled or a signal
// arrives, then shuts it down gracefully.
func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Fprintf(os.Stderr, "serving on %s\n", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
