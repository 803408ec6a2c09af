package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath is the environment variable that overrides the default
// config file location.
const EnvConfigPath = "MCPORCH_CONFIG"

// defaultConfigPath is used when neither an explicit path nor the env
// override is set.
const defaultConfigPath = "config/servers.json"

// serversKey is the top-level key holding the server descriptor mapping.
const serversKey = "mcpServers"

// Loader reads and caches the server configuration file. The file may be
// JSON or YAML, selected by extension.
type Loader struct {
	log  *slog.Logger
	path string

	mu    sync.Mutex
	cache map[string]any
}

// NewLoader creates a Loader for the given path. An empty path falls back to
// the MCPORCH_CONFIG environment variable, then to config/servers.json.
func NewLoader(log *slog.Logger, path string) *Loader {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path == "" {
		path = defaultConfigPath
	}

	return &Loader{
		log:  log.With("component", "config_loader"),
		path: path,
	}
}

// Path returns the resolved config file path.
func (l *Loader) Path() string {
	return l.path
}

// Load parses the configuration file, caching the result for subsequent
// calls. Use Reload to bypass the cache.
func (l *Loader) Load() (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loadLocked()
}

// Reload discards the cache and reparses the configuration file.
func (l *Loader) Reload() (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache = nil

	return l.loadLocked()
}

// loadLocked parses the file into the cache. Caller must hold l.mu.
func (l *Loader) loadLocked() (map[string]any, error) {
	if l.cache != nil {
		return l.cache, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}

	parsed := make(map[string]any)

	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse YAML config %s: %w", l.path, err)
		}
	default:
		if err := json.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parse JSON config %s: %w", l.path, err)
		}
	}

	l.cache = parsed
	l.log.Info("Loaded server configuration", "path", l.path)

	return l.cache, nil
}

// Servers returns the configured server descriptors keyed by server name.
// A config file without the mcpServers key yields an empty mapping, not an
// error.
func (l *Loader) Servers() (map[string]*ServerDescriptor, error) {
	raw, err := l.Load()
	if err != nil {
		return nil, err
	}

	section, ok := raw[serversKey]
	if !ok {
		l.log.Warn("Config has no server section", "key", serversKey)

		return map[string]*ServerDescriptor{}, nil
	}

	// Round-trip through JSON to apply the descriptor's struct tags
	// regardless of whether the source file was JSON or YAML.
	data, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("marshal server section: %w", err)
	}

	descriptors := make(map[string]*ServerDescriptor)
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("parse server section: %w", err)
	}

	return descriptors, nil
}

// Value returns the configuration value at a dot-separated key path, or
// fallback when the path does not resolve.
func (l *Loader) Value(keyPath string, fallback any) any {
	raw, err := l.Load()
	if err != nil {
		l.log.Warn("Could not read config value", "key", keyPath, "error", err)

		return fallback
	}

	var current any = raw

	for key := range strings.SplitSeq(keyPath, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return fallback
		}

		current, ok = m[key]
		if !ok {
			return fallback
		}
	}

	return current
}
