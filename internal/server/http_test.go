package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/teemow/groupavail/internal/instrumentation"
)

const initializeRequest = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`

func newTestMCPServer() *mcpserver.MCPServer {
	return mcpserver.NewMCPServer("groupavail-test", "1.0.0", mcpserver.WithToolCapabilities(true))
}

func TestHTTPServer_Handler(t *testing.T) {
	cfg := testConfig()
	cfg.ICS = []string{"alice@example.com=alice.ics"}
	sc := newTestContext(t, cfg, nil)

	s := NewHTTPServer(newTestMCPServer(), sc, HTTPServerConfig{DisableStreaming: true})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	t.Run("health", func(t *testing.T) {
		for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("mcp initialize", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+MCPEndpoint, strings.NewReader(initializeRequest))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "groupavail-test")
	})
}

func TestHTTPServer_StartAndShutdown(t *testing.T) {
	s := NewHTTPServer(newTestMCPServer(), nil, HTTPServerConfig{Addr: "127.0.0.1:0"})

	ready := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- s.StartWithReadySignal(ready)
	}()

	select {
	case <-ready:
	case err := <-errc:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.ErrorIs(t, <-errc, http.ErrServerClosed)
	assert.False(t, s.Health().IsReady())
}

func TestHTTPServer_ShutdownWithoutStart(t *testing.T) {
	s := NewHTTPServer(newTestMCPServer(), nil, HTTPServerConfig{})
	assert.Equal(t, ":8080", s.Addr())
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestInstrumentHTTP(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := instrumentation.NewMetrics(mp.Meter("test"), false)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/teapot", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := instrumentHTTP(metrics, mux)

	for _, path := range []string{"/teapot", "/unknown/1", "/unknown/2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_requests_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				path, _ := dp.Attributes.Value(attribute.Key("path"))
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				counts[path.AsString()+" "+status.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{
		"/teapot 418": 1,
		"other 404":   2,
	}, counts)
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	sr.WriteHeader(http.StatusAccepted)
	sr.WriteHeader(http.StatusInternalServerError)
	sr.Flush()

	assert.Equal(t, http.StatusAccepted, sr.status)
	assert.True(t, rec.Flushed)
	assert.Same(t, rec, sr.Unwrap())
}
