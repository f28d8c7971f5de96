// Package config provides unified configuration for mcp-searxng.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (SEARXNG_BASE_URL, MCP_SEARXNG_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
//
// The loaded Config is treated as immutable for the process lifetime.
package config

import "time"

// Config holds all configuration for mcp-searxng.
type Config struct {
	SearXNG       SearXNGConfig       `yaml:"searxng"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
	Log           LogConfig           `yaml:"log"`
}

// SearXNGConfig holds settings for the target search instance.
type SearXNGConfig struct {
	BaseURL     string        `yaml:"base_url"`      // required
	BaseURLFile string        `yaml:"base_url_file"` // _file variant for base_url
	Timeout     time.Duration `yaml:"timeout"`       // default: 30s
	UserAgent   string        `yaml:"user_agent"`    // default: desktop Chrome

	// InsecureSkipVerify disables TLS certificate validation. Self-hosted
	// instances commonly present self-signed certificates. Default: true.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// ServerConfig holds MCP transport settings.
type ServerConfig struct {
	Transport string `yaml:"transport"` // "stdio" or "http", default: "stdio"
	Port      int    `yaml:"port"`      // http only, default: 8080
	Path      string `yaml:"path"`      // http only, default: "/mcp"
}

// ObservabilityConfig holds monitoring settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings. The endpoint
// is only served with the http transport.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // default: "INFO"
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		SearXNG: SearXNGConfig{
			Timeout:            30 * time.Second,
			InsecureSkipVerify: true,
		},
		Server: ServerConfig{
			Transport: "stdio",
			Port:      8080,
			Path:      "/mcp",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}
