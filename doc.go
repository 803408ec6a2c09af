// Package mcporch orchestrates sessions against a heterogeneous set of MCP
// tool servers. It validates server configurations, connects over process
// or network transports, aggregates the discovered tools into a unified
// toolset, and binds that toolset to a pluggable execution engine.
//
// # Basic Usage
//
// Create a session with an engine factory, start it, and process turns:
//
//	session := mcporch.New(factory,
//	    mcporch.WithConfigPath("config/servers.json"),
//	    mcporch.WithLogger(slog.Default()),
//	)
//	defer session.Shutdown(ctx)
//
//	if err := session.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	for ev, err := range session.ProcessTurn(ctx, "convert 100C to F") {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if ev.IsFinal {
//	        fmt.Println(ev.Content)
//	    }
//	}
//
// Sessions are single-use: after Shutdown, create a new one with New.
// Per-server connection failures never fail a start; they are visible
// through Status, and the session runs with whatever tools it could reach.
package mcporch
