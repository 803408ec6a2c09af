package config

// Transport identifies how a tool server is reached.
type Transport string

const (
	// TransportProcess spawns the server as a child process and talks to it
	// over stdio.
	TransportProcess Transport = "process"
	// TransportNetwork connects to an already-running server over a URL.
	TransportNetwork Transport = "network"
)

// supportedTransports lists the transports a descriptor may name.
var supportedTransports = map[Transport]bool{
	TransportProcess: true,
	TransportNetwork: true,
}

// ServerDescriptor describes one configured tool server. Descriptors are
// loaded once per session and never mutated.
type ServerDescriptor struct {
	Transport   Transport `json:"transport" yaml:"transport"`
	Description string    `json:"description" yaml:"description"`

	// Process transport fields.
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Network transport field.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ValidationResult reports the outcome of validating one server descriptor.
type ValidationResult struct {
	IsValid       bool
	MissingFields []string
	InvalidFields []string
}

// Validate checks a server descriptor against the transport-specific required
// fields. It is a pure check over the descriptor's fields: no network or
// process access occurs, and a failure here never affects other descriptors.
func Validate(name string, desc *ServerDescriptor) ValidationResult {
	var missing, invalid []string

	if desc == nil {
		return ValidationResult{
			MissingFields: []string{"transport", "description"},
		}
	}

	if desc.Transport == "" {
		missing = append(missing, "transport")
	}

	if desc.Description == "" {
		missing = append(missing, "description")
	}

	if !supportedTransports[desc.Transport] {
		invalid = append(invalid, "transport: "+string(desc.Transport)+" is not supported")
	}

	switch desc.Transport {
	case TransportNetwork:
		if desc.URL == "" {
			missing = append(missing, "url")
		}
	case TransportProcess:
		if desc.Command == "" {
			missing = append(missing, "command")
		}
	}

	return ValidationResult{
		IsValid:       len(missing) == 0 && len(invalid) == 0,
		MissingFields: missing,
		InvalidFields: invalid,
	}
}
