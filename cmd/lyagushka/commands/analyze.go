package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Sumatoshi-tech/lyagushka/pkg/config"
	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
	"github.com/Sumatoshi-tech/lyagushka/pkg/observability"
	"github.com/Sumatoshi-tech/lyagushka/pkg/report"
	"github.com/Sumatoshi-tech/lyagushka/pkg/report/plotpage"
)

const (
	minPositionalArgs = 2
	maxPositionalArgs = 3

	spanAnalyze = "lyagushka.analyze"
)

var (
	// ErrStdinTerminal indicates no input file was given while stdin is a terminal.
	ErrStdinTerminal = errors.New("no input file given and stdin is a terminal")
	// ErrInvalidFactorArg indicates the factor argument is not a number.
	ErrInvalidFactorArg = errors.New("factor must be a number")
	// ErrInvalidMinClusterSizeArg indicates the min_cluster_size argument is not an integer.
	ErrInvalidMinClusterSizeArg = errors.New("min_cluster_size must be an integer")
)

// AnalyzeCommand holds the flags and dependencies of the analysis run.
type AnalyzeCommand struct {
	global *globalFlags

	format     string
	outputPath string
	strategy   string
	theme      string
	gapScale   float64
	labelZ     float64
	noColor    bool

	stdin           io.Reader
	stdinIsTerminal func() bool
}

// analyzeArgs are the parsed positional arguments.
type analyzeArgs struct {
	inputPath      string
	factor         float64
	minClusterSize int
}

func (ac *AnalyzeCommand) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ac.format, "format", "f", config.DefaultOutputFormat, "output format: json, yaml, text, plot")
	cmd.Flags().StringVarP(&ac.outputPath, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().StringVar(&ac.strategy, "strategy", config.DefaultStrategy, "segmentation strategy: scan, neighborhood")
	cmd.Flags().Float64Var(&ac.gapScale, "gap-scale", config.DefaultGapScale, "gap threshold multiplier")
	cmd.Flags().Float64Var(&ac.labelZ, "label-z", config.DefaultLabelZ, "z-score magnitude for attractor and repeller labels")
	cmd.Flags().StringVar(&ac.theme, "theme", config.DefaultOutputTheme, "plot theme: dark, light")
	cmd.Flags().BoolVar(&ac.noColor, "no-color", false, "disable colored output")
}

func (ac *AnalyzeCommand) run(cmd *cobra.Command, args []string) error {
	parsed, err := ac.parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(ac.global.configPath)
	if err != nil {
		return err
	}

	err = ac.applyOverrides(cmd, cfg)
	if err != nil {
		return err
	}

	obsCfg, err := observabilityConfig(cfg, ac.global, observability.ModeCLI, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer shutdownProviders(providers)

	logger := providers.Logger
	ctx, runID := observability.ContextWithRunID(cmd.Context())

	maxSize, err := cfg.Input.MaxSizeBytes()
	if err != nil {
		return err
	}

	values, err := ac.loadObservations(parsed.inputPath, maxSize)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "input loaded",
		"path", parsed.inputPath,
		"observations", humanize.Comma(int64(len(values))),
		"max_size", humanize.IBytes(maxSize),
	)

	ctx, span := providers.Tracer.Start(ctx, spanAnalyze)
	defer span.End()

	span.SetAttributes(
		attribute.String("lyagushka.run_id", runID),
		attribute.String("lyagushka.strategy", cfg.Analysis.Strategy),
		attribute.Int("lyagushka.observations", len(values)),
	)

	start := time.Now()

	result, err := density.Analyze(values, cfg.Analysis.DensityOptions(parsed.factor, parsed.minClusterSize))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("analyze: %w", err)
	}

	elapsed := time.Since(start)
	summary := result.Summary

	analysisMetrics, err := observability.NewAnalysisMetrics(providers.Meter)
	if err != nil {
		return err
	}

	analysisMetrics.RecordRun(ctx, observability.AnalysisStats{
		Strategy:      string(summary.Strategy),
		Observations:  summary.Observations,
		Clusters:      summary.Clusters,
		Gaps:          summary.Gaps,
		DroppedPoints: summary.DroppedPoints,
		Duration:      elapsed,
	})

	if summary.ThresholdsOverlap {
		logger.WarnContext(ctx, "cluster threshold exceeds gap threshold",
			"cluster_threshold", summary.ClusterThreshold,
			"gap_threshold", summary.GapThreshold,
			"effect", "distances between the thresholds are clustered, not gaps",
		)
	}

	logger.DebugContext(ctx, "analysis complete",
		"clusters", summary.Clusters,
		"gaps", summary.Gaps,
		"dropped", summary.DroppedPoints,
		"duration", elapsed,
	)

	return ac.render(cmd, cfg, result)
}

// parseArgs resolves the input source and parses factor and min_cluster_size.
func (ac *AnalyzeCommand) parseArgs(args []string) (analyzeArgs, error) {
	parsed := analyzeArgs{inputPath: stdinPath}

	if len(args) == maxPositionalArgs {
		parsed.inputPath = args[0]
		args = args[1:]
	} else if ac.stdinIsTerminal != nil && ac.stdinIsTerminal() {
		return analyzeArgs{}, ErrStdinTerminal
	}

	factor, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return analyzeArgs{}, fmt.Errorf("%w: %q", ErrInvalidFactorArg, args[0])
	}

	minClusterSize, err := strconv.Atoi(args[1])
	if err != nil {
		return analyzeArgs{}, fmt.Errorf("%w: %q", ErrInvalidMinClusterSizeArg, args[1])
	}

	parsed.factor = factor
	parsed.minClusterSize = minClusterSize

	return parsed, nil
}

// applyOverrides copies explicitly set flags over the loaded configuration
// and revalidates it.
func (ac *AnalyzeCommand) applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = ac.format
	}

	if flags.Changed("strategy") {
		cfg.Analysis.Strategy = ac.strategy
	}

	if flags.Changed("gap-scale") {
		cfg.Analysis.GapScale = ac.gapScale
	}

	if flags.Changed("label-z") {
		cfg.Analysis.LabelZ = ac.labelZ
	}

	if flags.Changed("theme") {
		cfg.Output.Theme = ac.theme
	}

	if ac.noColor {
		cfg.Output.Color = false
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func (ac *AnalyzeCommand) loadObservations(path string, maxSize uint64) ([]int64, error) {
	input, name, err := openInput(path, ac.stdin)
	if err != nil {
		return nil, err
	}

	defer input.Close()

	return readObservations(input, name, maxSize)
}

//nolint:nonamedreturns // the deferred close reports into err.
func (ac *AnalyzeCommand) render(cmd *cobra.Command, cfg *config.Config, result *density.Result) (err error) {
	var out io.Writer = cmd.OutOrStdout()

	if ac.outputPath != "" && ac.outputPath != stdinPath {
		file, createErr := os.Create(ac.outputPath)
		if createErr != nil {
			return fmt.Errorf("create output %s: %w", ac.outputPath, createErr)
		}

		defer func() {
			closeErr := file.Close()
			if err == nil && closeErr != nil {
				err = fmt.Errorf("close output %s: %w", ac.outputPath, closeErr)
			}
		}()

		out = file
	}

	renderer, err := report.NewRenderer(cfg.Output.Format, report.Options{
		Color: cfg.Output.Color && fileIsTerminal(out),
		Theme: plotpage.ParseTheme(cfg.Output.Theme),
	})
	if err != nil {
		return err
	}

	err = renderer.Render(out, result)
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Output.Format, err)
	}

	return nil
}
