// Package debug provides category-based debug logging for mcp-searxng.
//
// Two orthogonal controls:
//   - Categories (WHAT to debug): MCP_SEARXNG_DEBUG env or log.debug config
//   - Levels (HOW MUCH detail): MCP_SEARXNG_LOG_LEVEL env or log.level config
//
// Usage:
//
//	debug.Log("searxng", "request", "url", searchURL)
//	if debug.Enabled("extract") { /* expensive formatting */ }
//
// Categories: searxng, extract, server, config, all.
// Levels: ERROR, WARN, INFO, DEBUG, TRACE.
//
// All output goes to stderr. Stdout is reserved for the stdio MCP transport.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	envCategories = "MCP_SEARXNG_DEBUG"
	envLevel      = "MCP_SEARXNG_LOG_LEVEL"
)

// LevelTrace is below slog.LevelDebug. At TRACE, outbound form bodies
// and response sizes are logged.
const LevelTrace = slog.LevelDebug - 4

// categories is read-only after Init.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv(envCategories))
}

// Init configures categories and the default slog logger. Environment
// values take precedence over the configured ones. If w is nil, stderr
// is used.
func Init(configCategories, configLevel string, w io.Writer) *slog.Logger {
	cats := os.Getenv(envCategories)
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	level := os.Getenv(envLevel)
	if level == "" {
		level = configLevel
	}

	if w == nil {
		w = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message for the given category. No-op if the
// category is disabled.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a trace-level message for the given category.
func Trace(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// ParseLevel converts a level string to a slog.Level. Unknown values
// map to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Truncate shortens s to maxLen bytes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
