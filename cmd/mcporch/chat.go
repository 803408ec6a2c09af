package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	mcporch "github.com/unimcp/mcp-orchestrator-go"
)

func chatCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session against the configured servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd.Context(), debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "start with verbose event diagnostics")

	return cmd
}

func runChat(ctx context.Context, debug bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := mcporch.New(newRoutingEngine,
		mcporch.WithAppName("mcporch"),
		mcporch.WithLogger(newLogger()),
		mcporch.WithConfigPath(configPath),
		mcporch.WithDebug(debug),
		mcporch.WithDebugObserver(printDebugRecord),
	)
	defer func() { _ = session.Shutdown(context.Background()) }()

	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	printStatus(session)

	fmt.Println("\nSession ready. Commands:")
	fmt.Println("  - convert / run / call to invoke tools (try 'help')")
	fmt.Println("  - 'status' - display per-server connection state")
	fmt.Println("  - 'debug on/off' - toggle verbose event diagnostics")
	fmt.Println("  - 'quit', 'exit', ':q' - terminate the session")
	fmt.Println()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "You: ",
		HistoryFile:     filepath.Join(os.TempDir(), ".mcporch_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nSession interrupted. Goodbye!")

			return nil
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Println("Goodbye!")

			return nil
		} else if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch {
		case input == "quit" || input == "exit" || input == ":q":
			fmt.Println("Session terminated. Goodbye!")

			return nil

		case input == "status":
			printStatus(session)

			continue

		case strings.HasPrefix(strings.ToLower(input), "debug"):
			handleDebugCommand(session, input)

			continue
		}

		processTurn(ctx, session, input)
	}
}

// processTurn runs one turn and renders its events.
func processTurn(ctx context.Context, session *mcporch.Session, input string) {
	fmt.Println("\nAssistant: Processing your request...")

	var final *mcporch.ResponseEvent

	eventCount := 0

	for ev, err := range session.ProcessTurn(ctx, input) {
		if err != nil {
			fmt.Printf("Error: %v\n\n", err)

			return
		}

		eventCount++

		for _, call := range ev.ToolCalls {
			fmt.Printf("  -> invoking %s\n", call)
		}

		for _, resp := range ev.ToolResponses {
			marker := "ok"
			if !resp.Success {
				marker = "error"
			}

			fmt.Printf("  <- %s (%s)\n", resp.Name, marker)
		}

		if ev.IsFinal {
			final = ev
		}
	}

	if final != nil && final.Content != "" {
		fmt.Printf("\nFinal Agent Response:\n%s\n\n", final.Content)
	} else {
		fmt.Println("No final response received from agent")
		fmt.Println()
	}

	if session.DebugEnabled() {
		fmt.Printf("Total events processed: %d\n\n", eventCount)
	}
}

// handleDebugCommand flips debug mode from "debug on" / "debug off".
func handleDebugCommand(session *mcporch.Session, input string) {
	switch strings.TrimSpace(strings.TrimPrefix(strings.ToLower(input), "debug")) {
	case "on":
		session.SetDebug(true)
		fmt.Println("Verbose debugging enabled - all events will be displayed")
	case "off":
		session.SetDebug(false)
		fmt.Println("Verbose debugging disabled - only final responses will be displayed")
	default:
		fmt.Printf("Debug mode is %s. Use 'debug on' or 'debug off'.\n", onOff(session.DebugEnabled()))
	}
}

// printStatus renders the session status snapshot.
func printStatus(session *mcporch.Session) {
	status := session.Status()

	fmt.Println("\nSystem Status")
	fmt.Printf("  Session: %s\n", status.SessionID)
	fmt.Printf("  State:   %s\n", status.State)
	fmt.Printf("  Ready:   %t\n", status.Ready)
	fmt.Printf("  Debug:   %s\n", onOff(status.DebugEnabled))
	fmt.Printf("  Servers: %d configured, %d contributing tools\n", len(status.Servers), status.Toolsets)

	names := make([]string, 0, len(status.Servers))
	for name := range status.Servers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		server := status.Servers[name]

		line := fmt.Sprintf("    %-14s %s", name, server.State)
		if server.ToolCount > 0 {
			line += fmt.Sprintf(" (%d tools)", server.ToolCount)
		}

		if server.ErrorMessage != "" {
			line += " - " + server.ErrorMessage
		}

		fmt.Println(line)
	}
}

// printDebugRecord renders one diagnostic record as indented JSON.
func printDebugRecord(rec *mcporch.DebugRecord) {
	data, err := json.MarshalIndent(rec, "  ", "  ")
	if err != nil {
		return
	}

	fmt.Printf("  [debug] %s\n", data)
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}

	return "off"
}
