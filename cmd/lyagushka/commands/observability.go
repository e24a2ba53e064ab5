package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Sumatoshi-tech/lyagushka/pkg/config"
	"github.com/Sumatoshi-tech/lyagushka/pkg/observability"
	"github.com/Sumatoshi-tech/lyagushka/pkg/version"
)

const logFormatJSON = "json"

// observabilityConfig derives the telemetry setup from the loaded
// configuration, the standard OTLP environment and the verbosity flags.
func observabilityConfig(cfg *config.Config, gf *globalFlags, mode observability.AppMode, logWriter io.Writer) (observability.Config, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
	obsCfg.OTLPInsecure = os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	obsCfg.Mode = mode
	obsCfg.LogJSON = cfg.Logging.Format == logFormatJSON
	obsCfg.LogWriter = logWriter

	level, err := observability.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Config{}, err
	}

	switch {
	case gf.quiet:
		level = slog.LevelError
	case gf.verbose:
		level = slog.LevelDebug
	}

	obsCfg.LogLevel = level

	return obsCfg, nil
}

// shutdownProviders flushes telemetry, logging instead of failing the command.
func shutdownProviders(providers observability.Providers) {
	err := providers.Shutdown(context.Background())
	if err != nil {
		providers.Logger.Warn("observability shutdown failed", "error", err)
	}
}
