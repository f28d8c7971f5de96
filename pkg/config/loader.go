package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvBaseURL is the environment variable naming the SearXNG instance.
const EnvBaseURL = "SEARXNG_BASE_URL"

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, MCP_SEARXNG_CONFIG env, ./config.yaml, /etc/mcp-searxng/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	cfg.SearXNG.BaseURL = strings.TrimRight(cfg.SearXNG.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile returns the first config file found, or "" if none.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("MCP_SEARXNG_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/mcp-searxng/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile parses a YAML file into cfg. Fields absent from the file
// keep their current values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
// Unlike YAML, malformed numeric or boolean values are reported.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.SearXNG.BaseURL = v
	}
	if v := os.Getenv("MCP_SEARXNG_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
	if v := os.Getenv("MCP_SEARXNG_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MCP_SEARXNG_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("MCP_SEARXNG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MCP_SEARXNG_TIMEOUT: %w", err)
		}
		cfg.SearXNG.Timeout = d
	}
	if v := os.Getenv("MCP_SEARXNG_INSECURE_SKIP_VERIFY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MCP_SEARXNG_INSECURE_SKIP_VERIFY: %w", err)
		}
		cfg.SearXNG.InsecureSkipVerify = b
	}
	if v := os.Getenv("MCP_SEARXNG_METRICS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MCP_SEARXNG_METRICS: %w", err)
		}
		cfg.Observability.Metrics.Enabled = b
	}
	return nil
}

// resolveFileReferences fills value fields from their _file variants when
// the value itself is empty.
func resolveFileReferences(cfg *Config) error {
	if cfg.SearXNG.BaseURLFile != "" && cfg.SearXNG.BaseURL == "" {
		val, err := readSecretFile(cfg.SearXNG.BaseURLFile)
		if err != nil {
			return fmt.Errorf("searxng.base_url_file: %w", err)
		}
		cfg.SearXNG.BaseURL = val
	}
	return nil
}

// readSecretFile returns the file content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
