package main

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"

	mcporch "github.com/unimcp/mcp-orchestrator-go"
)

// routingEngine is a deterministic execution engine that routes commands
// straight to discovered tools. It understands three forms:
//
//	convert <value> <from> <to>   temperature conversion, e.g. "convert 100 C F"
//	run <shell command>           terminal execution via run_command
//	call <tool> [json-args]      invoke any tool directly
//
// Anything else yields a help text listing the available tools. It stands in
// for an LLM-backed engine while exercising the full turn pipeline.
type routingEngine struct {
	tools map[string]mcporch.Tool
}

// scaleNames maps accepted scale spellings to the single-letter form used
// in tool names.
var scaleNames = map[string]string{
	"c": "celsius", "celsius": "celsius",
	"f": "fahrenheit", "fahrenheit": "fahrenheit",
	"k": "kelvin", "kelvin": "kelvin",
}

// newRoutingEngine is the EngineFactory for the CLI.
func newRoutingEngine(_ context.Context, binding *mcporch.EngineBinding) (mcporch.Engine, error) {
	tools := make(map[string]mcporch.Tool)

	for _, ts := range binding.Toolsets {
		for _, tool := range ts.Tools {
			tools[tool.Name] = tool
		}
	}

	return &routingEngine{tools: tools}, nil
}

func (e *routingEngine) Run(ctx context.Context, req *mcporch.TurnRequest) iter.Seq2[*mcporch.EngineEvent, error] {
	return func(yield func(*mcporch.EngineEvent, error) bool) {
		name, args, err := e.route(req.Prompt)
		if err != nil {
			yield(mcporch.FinalEvent(err.Error()), nil)

			return
		}

		if name == "" {
			yield(mcporch.FinalEvent(e.helpText()), nil)

			return
		}

		tool, ok := e.tools[name]
		if !ok {
			yield(mcporch.FinalEvent(fmt.Sprintf("no such tool: %s\n\n%s", name, e.helpText())), nil)

			return
		}

		if !yield(&mcporch.EngineEvent{ToolCalls: []string{name}}, nil) {
			return
		}

		output, err := tool.Handler(ctx, args)
		result := mcporch.ToolResult{Name: name, Output: output}

		if err != nil {
			result.IsError = true
			result.Output = err.Error()
		}

		if !yield(&mcporch.EngineEvent{ToolResults: []mcporch.ToolResult{result}}, nil) {
			return
		}

		yield(mcporch.FinalEvent(result.Output), nil)
	}
}

func (e *routingEngine) Close() error { return nil }

// route parses one prompt into a tool name and its JSON arguments. An empty
// name with nil error means "show help".
func (e *routingEngine) route(prompt string) (string, json.RawMessage, error) {
	fields := strings.Fields(strings.TrimSpace(prompt))
	if len(fields) == 0 {
		return "", nil, nil
	}

	switch strings.ToLower(fields[0]) {
	case "convert":
		return routeConversion(fields[1:])

	case "run":
		if len(fields) < 2 {
			return "", nil, fmt.Errorf("usage: run <shell command>")
		}

		args, err := json.Marshal(map[string]any{
			"command": strings.Join(fields[1:], " "),
		})
		if err != nil {
			return "", nil, err
		}

		return "run_command", args, nil

	case "call":
		if len(fields) < 2 {
			return "", nil, fmt.Errorf("usage: call <tool> [json-args]")
		}

		raw := strings.TrimSpace(strings.Join(fields[2:], " "))
		if raw == "" {
			raw = "{}"
		}

		if !json.Valid([]byte(raw)) {
			return "", nil, fmt.Errorf("arguments are not valid JSON: %s", raw)
		}

		return fields[1], json.RawMessage(raw), nil

	default:
		return "", nil, nil
	}
}

// routeConversion turns "convert 100 C F" into a temperature tool call.
func routeConversion(fields []string) (string, json.RawMessage, error) {
	if len(fields) != 3 {
		return "", nil, fmt.Errorf("usage: convert <value> <from-scale> <to-scale>")
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("not a number: %s", fields[0])
	}

	from, ok := scaleNames[strings.ToLower(fields[1])]
	if !ok {
		return "", nil, fmt.Errorf("unknown scale: %s", fields[1])
	}

	to, ok := scaleNames[strings.ToLower(fields[2])]
	if !ok {
		return "", nil, fmt.Errorf("unknown scale: %s", fields[2])
	}

	if from == to {
		return "", nil, fmt.Errorf("scales must differ")
	}

	args, err := json.Marshal(map[string]any{"temperature": value})
	if err != nil {
		return "", nil, err
	}

	return from + "_to_" + to, args, nil
}

// helpText lists the reachable tools.
func (e *routingEngine) helpText() string {
	var b strings.Builder

	b.WriteString("Commands:\n")
	b.WriteString("  convert <value> <from> <to>  temperature conversion, e.g. convert 100 C F\n")
	b.WriteString("  run <shell command>          execute in the workspace\n")
	b.WriteString("  call <tool> [json-args]      invoke any tool directly\n")

	if len(e.tools) == 0 {
		b.WriteString("\nNo tools available (no servers connected).")

		return b.String()
	}

	b.WriteString("\nAvailable tools:\n")

	names := make([]string, 0, len(e.tools))
	for name := range e.tools {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&b, "  %-24s %s\n", name, e.tools[name].Description)
	}

	return b.String()
}
