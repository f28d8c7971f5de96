package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhuss/mcp-searxng/pkg/searxng"
)

func newHTTPServer(t *testing.T, cfg HTTPConfig) *httptest.Server {
	t.Helper()
	fake := &fakeSearcher{results: []searxng.Result{
		{Title: "Go", URL: "https://go.dev/", Content: "The Go language"},
	}}
	ts := httptest.NewServer(New(fake, Options{Logger: quietLogger()}).Handler(cfg))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHandler_Healthz(t *testing.T) {
	ts := newHTTPServer(t, HTTPConfig{Path: "/mcp"})

	status, body := get(t, ts.URL+"/healthz")
	if status != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", status, body)
	}
}

func TestHandler_Metrics(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		ts := newHTTPServer(t, HTTPConfig{Path: "/mcp", MetricsEnabled: true, MetricsPath: "/metrics"})

		// Touch the health endpoint so the HTTP counter has a sample.
		get(t, ts.URL+"/healthz")

		status, body := get(t, ts.URL+"/metrics")
		if status != http.StatusOK {
			t.Fatalf("GET /metrics = %d", status)
		}
		if !strings.Contains(body, "mcp_searxng_http_requests_total") {
			t.Errorf("metrics output missing http counter")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		ts := newHTTPServer(t, HTTPConfig{Path: "/mcp"})

		if status, _ := get(t, ts.URL+"/metrics"); status != http.StatusNotFound {
			t.Errorf("GET /metrics = %d, want 404 when disabled", status)
		}
	})
}

func TestHandler_StreamableToolCall(t *testing.T) {
	ts := newHTTPServer(t, HTTPConfig{Path: "/mcp"})

	ctx := context.Background()
	client := mcp.NewClient(&mcp.Implementation{Name: "http-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp"}, nil)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"query": "golang", "max_results": 1},
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}

	got := decodeResults(t, res)
	if len(got) != 1 || got[0].URL != "https://go.dev/" {
		t.Errorf("results = %+v", got)
	}
}
