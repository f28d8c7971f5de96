// Command mcp-searxng searches the web using a SearxNG instance and exposes
// the search as the MCP tool "searxng_search".
//
// Configuration via environment variables (see pkg/config for the YAML
// equivalents):
//
//	SEARXNG_BASE_URL                 - Base URL of the SearXNG instance (required)
//	MCP_SEARXNG_CONFIG               - Path to a YAML config file
//	MCP_SEARXNG_TRANSPORT            - "stdio" (default) or "http"
//	MCP_SEARXNG_PORT                 - Listen port for http (default: 8080)
//	MCP_SEARXNG_TIMEOUT              - Search timeout (default: 30s)
//	MCP_SEARXNG_INSECURE_SKIP_VERIFY - Skip TLS verification (default: true)
//	MCP_SEARXNG_METRICS              - Serve /metrics in http mode (default: true)
//	MCP_SEARXNG_DEBUG                - Debug categories: searxng,extract,server,config,all
//	MCP_SEARXNG_LOG_LEVEL            - TRACE, DEBUG, INFO, WARN, ERROR
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/mcp-searxng/pkg/config"
	"github.com/rhuss/mcp-searxng/pkg/debug"
	"github.com/rhuss/mcp-searxng/pkg/searxng"
	"github.com/rhuss/mcp-searxng/pkg/server"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Searches the web using a SearxNG instance.\n\nUsage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := debug.Init(cfg.Log.Debug, cfg.Log.Level, os.Stderr)
	debug.Log("config", "loaded",
		"base_url", cfg.SearXNG.BaseURL,
		"transport", cfg.Server.Transport,
		"timeout", cfg.SearXNG.Timeout,
		"insecure_skip_verify", cfg.SearXNG.InsecureSkipVerify)

	if cfg.SearXNG.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for the SearXNG instance",
			"base_url", cfg.SearXNG.BaseURL)
	}

	client, err := searxng.New(searxng.Config{
		BaseURL:            cfg.SearXNG.BaseURL,
		Timeout:            cfg.SearXNG.Timeout,
		UserAgent:          cfg.SearXNG.UserAgent,
		InsecureSkipVerify: cfg.SearXNG.InsecureSkipVerify,
	})
	if err != nil {
		return fmt.Errorf("creating searxng client: %w", err)
	}

	srv := server.New(client, server.Options{Version: version, Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Server.Transport {
	case "http":
		return serveHTTP(ctx, logger, srv, cfg)
	default:
		logger.Info("server starting", "transport", "stdio", "base_url", cfg.SearXNG.BaseURL, "version", version)
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func serveHTTP(ctx context.Context, logger *slog.Logger, srv *server.Server, cfg *config.Config) error {
	httpSrv := &http.Server{
		Addr: ":" + strconv.Itoa(cfg.Server.Port),
		Handler: srv.Handler(server.HTTPConfig{
			Path:           cfg.Server.Path,
			MetricsEnabled: cfg.Observability.Metrics.Enabled,
			MetricsPath:    cfg.Observability.Metrics.Path,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"transport", "http",
			"port", cfg.Server.Port,
			"path", cfg.Server.Path,
			"base_url", cfg.SearXNG.BaseURL,
			"version", version)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
