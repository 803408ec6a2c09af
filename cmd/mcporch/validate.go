package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/unimcp/mcp-orchestrator-go/internal/config"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the server configuration without connecting",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runValidate()
		},
	}
}

func runValidate() error {
	loader := config.NewLoader(newLogger(), configPath)

	servers, err := loader.Servers()
	if err != nil {
		return fmt.Errorf("load config %s: %w", loader.Path(), err)
	}

	fmt.Printf("Validating %d server(s) from %s\n\n", len(servers), loader.Path())

	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}

	sort.Strings(names)

	invalid := 0

	for _, name := range names {
		result := config.Validate(name, servers[name])
		if result.IsValid {
			fmt.Printf("  ok      %s (%s)\n", name, servers[name].Transport)

			continue
		}

		invalid++

		fmt.Printf("  invalid %s\n", name)

		for _, field := range result.MissingFields {
			fmt.Printf("          missing field: %s\n", field)
		}

		for _, field := range result.InvalidFields {
			fmt.Printf("          invalid field: %s\n", field)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d server(s) failed validation", invalid, len(servers))
	}

	fmt.Printf("\nAll %d server(s) valid.\n", len(servers))

	return nil
}
