package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/groupavail/internal/instrumentation"
	"github.com/teemow/groupavail/internal/server"
	"github.com/teemow/groupavail/internal/tools/availability_tools"
)

// Transport names.
const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// startupTimeout bounds how long a listener may take to come up.
const startupTimeout = 5 * time.Second

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	transport        string
	httpAddr         string
	disableStreaming bool
	metrics          MetricsConfig
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide group availability
tools for AI assistants:
  - find_group_availability: free slots shared by a group of invitees
  - query_busy_intervals: the merged busy intervals of the group

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp, with /healthz and /readyz

Google Calendar access:
  Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET and store a token with
  'groupavail auth --account <name>'. Without them only iCalendar feeds
  configured under ics are searched.

Metrics:
  With streamable-http, Prometheus metrics are served on --metrics-addr.
  METRICS_ENABLED and METRICS_ADDR override the flag defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("metrics") {
				if v, err := strconv.ParseBool(os.Getenv("METRICS_ENABLED")); err == nil {
					opts.metrics.Enabled = v
				}
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					opts.metrics.Addr = addr
				}
			}
			return runServe(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.transport, "transport", "t", transportStdio, "Transport type: stdio or streamable-http")
	flags.StringVar(&opts.httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	flags.BoolVar(&opts.disableStreaming, "disable-streaming", false, "Answer streamable-http requests with plain JSON instead of SSE")
	flags.BoolVar(&opts.metrics.Enabled, "metrics", true, "Serve Prometheus metrics on a dedicated port (streamable-http only)")
	flags.StringVar(&opts.metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")
	flags.String("account", "", "Default Google account of tool calls (default: account)")
	flags.StringSlice("ics", nil, "Read an invitee's calendar from an iCalendar file or URL, as address=location (repeatable)")

	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	if opts.transport != transportStdio && opts.transport != transportStreamableHTTP {
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", opts.transport, transportStdio, transportStreamableHTTP)
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("error during instrumentation shutdown", "error", err)
		}
	}()

	serverOpts := []server.Option{server.WithLogger(logger)}
	if provider.Enabled() {
		serverOpts = append(serverOpts,
			server.WithMetrics(provider.Metrics()),
			server.WithAuditLogger(instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging)),
		)
	}

	serverContext, err := server.NewServerContext(shutdownCtx, cfg, tokenProvider(logger), serverOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Warn("error during server context shutdown", "error", err)
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("groupavail", version,
		mcpserver.WithToolCapabilities(true),
	)
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	switch opts.transport {
	case transportStreamableHTTP:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, opts, provider, logger)
	default:
		return runStdioServer(mcpSrv)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := availability_tools.RegisterAvailabilityTools(mcpSrv, sc); err != nil {
		return fmt.Errorf("failed to register availability tools: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, opts serveOptions, provider *instrumentation.Provider, logger *slog.Logger) error {
	var servers []shutdowner
	if opts.metrics.Enabled && provider.ServesPrometheus() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metrics.Addr,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := startServer(metricsServer.StartWithReadySignal); err != nil {
			return fmt.Errorf("metrics server failed to start: %w", err)
		}
		servers = append(servers, metricsServer)
	}

	httpServer := server.NewHTTPServer(mcpSrv, sc, server.HTTPServerConfig{
		Addr:             opts.httpAddr,
		DisableStreaming: opts.disableStreaming,
	})

	serverErr := make(chan error, 1)
	ready := make(chan struct{})
	go func() {
		if err := httpServer.StartWithReadySignal(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ready:
		logger.Info("MCP server listening", "addr", httpServer.Addr(), "endpoint", server.MCPEndpoint)
	case err := <-serverErr:
		shutdownServers(logger, servers...)
		return fmt.Errorf("HTTP server failed to start: %w", err)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			runErr = fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	shutdownServers(logger, append([]shutdowner{httpServer}, servers...)...)
	return runErr
}

// shutdowner is a server with a graceful shutdown.
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownServers shuts servers down in order.
func shutdownServers(logger *slog.Logger, servers ...shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()

	for _, s := range servers {
		if err := s.Shutdown(ctx); err != nil {
			logger.Warn("error during server shutdown", "error", err)
		}
	}
}

// startServer runs start in the background and waits until it signals
// readiness, fails or times out.
func startServer(start func(ready chan<- struct{}) error) error {
	ready := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		if err := start(ready); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ready:
		return nil
	case err := <-errc:
		return err
	case <-time.After(startupTimeout):
		return fmt.Errorf("startup timed out after %s", startupTimeout)
	}
}
