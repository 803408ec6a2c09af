package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/unimcp/mcp-orchestrator-go/internal/errors"
)

// DefaultConnectTimeout is the session-wide timeout for opening a connection
// to one tool server.
const DefaultConnectTimeout = 30 * time.Second

// scriptExtensions marks arguments that refer to tool-server scripts.
// Relative paths with one of these extensions are resolved against the
// project root before being handed to the spawned process.
var scriptExtensions = []string{".py", ".js", ".go"}

// ConnectionParams carries the transport-specific parameters needed to open
// a connection to a tool server. Building params performs no I/O beyond
// path resolution; the actual spawn or dial happens at the connector.
type ConnectionParams struct {
	Transport Transport

	// Network transport.
	URL string

	// Process transport.
	Command string
	Args    []string
	Timeout time.Duration
}

// BuildConnectionParams turns a validated descriptor into connection
// parameters. The checks here re-verify what Validate should have already
// caught, so a caller skipping validation still gets a typed error instead
// of a broken connection attempt.
func BuildConnectionParams(
	name string,
	desc *ServerDescriptor,
	projectRoot string,
	timeout time.Duration,
) (*ConnectionParams, error) {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	switch desc.Transport {
	case TransportNetwork:
		if desc.URL == "" {
			return nil, &errors.MissingFieldError{Server: name, Field: "url"}
		}

		return &ConnectionParams{
			Transport: TransportNetwork,
			URL:       desc.URL,
			Timeout:   timeout,
		}, nil

	case TransportProcess:
		if desc.Command == "" {
			return nil, &errors.MissingFieldError{Server: name, Field: "command"}
		}

		return &ConnectionParams{
			Transport: TransportProcess,
			Command:   desc.Command,
			Args:      resolveScriptArgs(desc.Args, projectRoot),
			Timeout:   timeout,
		}, nil

	default:
		return nil, &errors.UnsupportedTransportError{
			Server:    name,
			Transport: string(desc.Transport),
		}
	}
}

// resolveScriptArgs rewrites relative tool-server script paths to absolute
// ones rooted at projectRoot. Spawned processes do not inherit the
// orchestrator's working-directory assumptions, so relative script paths in
// the config would otherwise break depending on where the host runs.
func resolveScriptArgs(args []string, projectRoot string) []string {
	if len(args) == 0 {
		return nil
	}

	resolved := make([]string, len(args))

	for i, arg := range args {
		if !filepath.IsAbs(arg) && isScriptPath(arg) && projectRoot != "" {
			resolved[i] = filepath.Join(projectRoot, arg)
		} else {
			resolved[i] = arg
		}
	}

	return resolved
}

// isScriptPath reports whether arg looks like a tool-server script path.
func isScriptPath(arg string) bool {
	for _, ext := range scriptExtensions {
		if strings.HasSuffix(arg, ext) {
			return true
		}
	}

	return false
}
