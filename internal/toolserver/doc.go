// Package toolserver hosts the bundled MCP tool servers: temperature scale
// conversions and workspace-confined terminal operations. Both are built on
// the official MCP Go SDK and can serve over stdio for process transports
// or as an HTTP SSE handler for network transports.
package toolserver
