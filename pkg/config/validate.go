package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.SearXNG.BaseURL == "" {
		errs = append(errs, fmt.Errorf("searxng.base_url is required (set %s)", EnvBaseURL))
	} else if err := validateBaseURL(c.SearXNG.BaseURL); err != nil {
		errs = append(errs, err)
	}

	if c.SearXNG.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("searxng.timeout must be > 0, got %s", c.SearXNG.Timeout))
	}

	switch c.Server.Transport {
	case "stdio":
	case "http":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
		}
		if !strings.HasPrefix(c.Server.Path, "/") {
			errs = append(errs, fmt.Errorf("server.path must start with \"/\", got %q", c.Server.Path))
		}
		if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
			errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
		}
	default:
		errs = append(errs, fmt.Errorf("server.transport must be \"stdio\" or \"http\", got %q", c.Server.Transport))
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("searxng.base_url must be an absolute URL, got %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("searxng.base_url scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("searxng.base_url must be an absolute URL, got %q", raw)
	}
	return nil
}
