// Package server exposes the searxng_search tool over the Model Context
// Protocol, on stdio or streamable HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhuss/mcp-searxng/pkg/api"
	"github.com/rhuss/mcp-searxng/pkg/debug"
	"github.com/rhuss/mcp-searxng/pkg/observability"
	"github.com/rhuss/mcp-searxng/pkg/searxng"
)

const (
	// ServerName is the MCP implementation name.
	ServerName = "searxng"

	// ToolName is the name of the single tool this server provides.
	ToolName = "searxng_search"

	// DefaultMaxResults applies when the caller omits max_results.
	DefaultMaxResults = 30
)

const toolDescription = `Searches the web using a SearxNG instance and returns a list of results.

Each result contains the title, URL, and content snippet. Results without a
link are omitted; missing titles and snippets read "No Title" and
"No Description".`

// Searcher runs a search query. *searxng.Client implements it.
type Searcher interface {
	Search(ctx context.Context, q searxng.Query) ([]searxng.Result, error)
}

// SearchInput is the argument object of the searxng_search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"The search query."`
	MaxResults *int   `json:"max_results,omitempty" jsonschema:"The maximum number of results to return. Defaults to 30."`
}

// SearchOutput is the structured result of the searxng_search tool. The
// list is wrapped under "result" because structured content must be an
// object.
type SearchOutput struct {
	Result []searxng.Result `json:"result"`
}

// Options configures a Server.
type Options struct {
	Version string
	Logger  *slog.Logger
}

// Server hosts the searxng_search tool.
type Server struct {
	mcp      *mcp.Server
	searcher Searcher
	logger   *slog.Logger
}

// New creates a Server that answers tool calls with searcher.
func New(searcher Searcher, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		searcher: searcher,
		logger:   opts.Logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: ServerName, Version: opts.Version},
		nil,
	)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolName,
		Description: toolDescription,
	}, s.handleSearch)

	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves the MCP protocol over t until ctx is cancelled or the peer
// disconnects.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

// HTTPConfig configures the HTTP handler.
type HTTPConfig struct {
	Path           string // MCP endpoint, e.g. "/mcp"
	MetricsEnabled bool
	MetricsPath    string
}

// Handler returns an HTTP handler serving the streamable MCP transport on
// cfg.Path, a health check on /healthz and, when enabled, Prometheus
// metrics.
func (s *Server) Handler(cfg HTTPConfig) http.Handler {
	if cfg.Path == "" {
		cfg.Path = "/mcp"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, mcpHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	if cfg.MetricsEnabled {
		mux.Handle("GET "+cfg.MetricsPath, promhttp.Handler())
	}

	return observability.MetricsMiddleware(mux)
}

// handleSearch executes one searxng_search call. Failures are returned as
// JSON-RPC errors carrying the ToolError code.
func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (res *mcp.CallToolResult, out SearchOutput, retErr error) {
	start := time.Now()
	maxResults := DefaultMaxResults
	if in.MaxResults != nil {
		maxResults = *in.MaxResults
	}

	var (
		toolErr *api.ToolError
		count   int
	)
	defer func() {
		if r := recover(); r != nil {
			toolErr = api.NewInternalError(fmt.Sprintf("Unexpected error: %v", r))
			res, out = nil, SearchOutput{}
		}
		if toolErr != nil {
			retErr = toolErr.JSONRPC()
		}
		s.logCall(ctx, in.Query, maxResults, count, time.Since(start), toolErr)
	}()

	results, err := s.searcher.Search(ctx, searxng.Query{Text: in.Query, MaxResults: maxResults})
	if err != nil {
		toolErr = searxng.ToToolError(err)
		return nil, SearchOutput{}, toolErr
	}
	if results == nil {
		results = []searxng.Result{}
	}
	count = len(results)

	// One text block per record. Content stays non-nil when empty so the SDK
	// does not fill it from the structured output.
	content := make([]mcp.Content, 0, len(results))
	for _, r := range results {
		text, err := json.Marshal(r)
		if err != nil {
			toolErr = searxng.ToToolError(err)
			return nil, SearchOutput{}, toolErr
		}
		content = append(content, &mcp.TextContent{Text: string(text)})
	}

	return &mcp.CallToolResult{Content: content}, SearchOutput{Result: results}, nil
}

func (s *Server) logCall(ctx context.Context, query string, maxResults, count int, elapsed time.Duration, toolErr *api.ToolError) {
	status := "success"
	attrs := []slog.Attr{
		slog.String("tool", ToolName),
		slog.String("query", debug.Truncate(query, 200)),
		slog.Int("max_results", maxResults),
		slog.Duration("duration", elapsed),
	}

	if toolErr != nil {
		status = toolErr.Code.String()
		attrs = append(attrs, slog.String("error", toolErr.Message))
		level := slog.LevelError
		if toolErr.Code == api.CodeInvalidParams {
			level = slog.LevelWarn
		}
		s.logger.LogAttrs(ctx, level, "tool call failed", attrs...)
	} else {
		attrs = append(attrs, slog.Int("results", count))
		s.logger.LogAttrs(ctx, slog.LevelInfo, "tool call completed", attrs...)
	}

	observability.ToolCallsTotal.WithLabelValues(ToolName, status).Inc()
}
