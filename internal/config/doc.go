// Package config loads server configuration files and turns server
// descriptors into validated connection parameters.
//
// A configuration file is JSON or YAML with an "mcpServers" mapping of
// server name to descriptor. Each descriptor names a transport (process or
// network) plus the fields that transport needs. Validate reports missing
// and invalid fields per server; BuildConnectionParams produces the
// parameters a connector dials with, resolving relative script paths
// against the project root and applying the default connect timeout.
package config
