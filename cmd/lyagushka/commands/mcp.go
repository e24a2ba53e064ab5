package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lyagushka/pkg/config"
	"github.com/Sumatoshi-tech/lyagushka/pkg/mcp"
	"github.com/Sumatoshi-tech/lyagushka/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(gf *globalFlags) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes lyagushka as tools that AI agents can discover and invoke:
  - lyagushka_analyze: segment integer observations into scored clusters and gaps
  - lyagushka_validate: check a segment array against the result schema

With --metrics-addr, Prometheus metrics are served at /metrics on that address.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runMCP(cobraCmd, gf, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")

	return cmd
}

func runMCP(cobraCmd *cobra.Command, gf *globalFlags, metricsAddr string) error {
	cfg, err := config.LoadConfig(gf.configPath)
	if err != nil {
		return err
	}

	obsCfg, err := observabilityConfig(cfg, gf, observability.ModeMCP, cobraCmd.ErrOrStderr())
	if err != nil {
		return err
	}

	obsCfg.LogJSON = true
	obsCfg.Prometheus = metricsAddr != ""

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer shutdownProviders(providers)

	tools, err := observability.NewToolMetrics(providers.Meter)
	if err != nil {
		return err
	}

	analysis, err := observability.NewAnalysisMetrics(providers.Meter)
	if err != nil {
		return err
	}

	ctx := cobraCmd.Context()

	if metricsAddr != "" {
		stop, serveErr := serveMetrics(ctx, metricsAddr, providers)
		if serveErr != nil {
			return serveErr
		}

		defer stop()
	}

	srv := mcp.NewServer(mcp.ServerDeps{
		Logger:   providers.Logger,
		Metrics:  tools,
		Analysis: analysis,
		Tracer:   providers.Tracer,
	})

	return srv.Run(ctx)
}

// serveMetrics binds addr and serves the scrape endpoint in the background.
// The returned function shuts the server down.
func serveMetrics(ctx context.Context, addr string, providers observability.Providers) (func(), error) {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	server := observability.NewMetricsServer(addr, providers.Tracer, providers.MetricsHandler)

	go func() {
		serveErr := server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			providers.Logger.Error("metrics server failed", "addr", addr, "error", serveErr)
		}
	}()

	providers.Logger.Info("serving metrics", "addr", listener.Addr().String(), "path", observability.MetricsPath)

	return func() {
		shutdownErr := server.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("metrics server shutdown failed", "error", shutdownErr)
		}
	}, nil
}
