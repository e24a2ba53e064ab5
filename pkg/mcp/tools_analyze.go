package mcp

import (
	"context"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
	"github.com/Sumatoshi-tech/lyagushka/pkg/observability"
)

// options converts the tool input into analysis options. Omitted optional
// fields take their defaults.
func (in AnalyzeInput) options() (density.Options, error) {
	opts := density.Options{
		Factor:         in.Factor,
		MinClusterSize: in.MinClusterSize,
		GapScale:       in.GapScale,
		LabelZ:         in.LabelZ,
	}

	if in.Strategy != "" {
		strategy, err := density.ParseStrategy(in.Strategy)
		if err != nil {
			return density.Options{}, err
		}

		opts.Strategy = strategy
	}

	return opts.WithDefaults(), nil
}

// handleAnalyze processes lyagushka_analyze tool calls. The text content is
// the same JSON array the CLI prints.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input AnalyzeInput,
) (*mcpsdk.CallToolResult, AnalyzeOutput, error) {
	if len(input.Values) > MaxValues {
		return errorResult[AnalyzeOutput](fmt.Errorf("%w: %d (max %d)", ErrTooManyValues, len(input.Values), MaxValues))
	}

	opts, err := input.options()
	if err != nil {
		return errorResult[AnalyzeOutput](err)
	}

	start := time.Now()

	result, err := density.Analyze(input.Values, opts)
	if err != nil {
		return errorResult[AnalyzeOutput](fmt.Errorf("analyze: %w", err))
	}

	summary := result.Summary

	s.analysis.RecordRun(ctx, observability.AnalysisStats{
		Strategy:      string(summary.Strategy),
		Observations:  summary.Observations,
		Clusters:      summary.Clusters,
		Gaps:          summary.Gaps,
		DroppedPoints: summary.DroppedPoints,
		Duration:      time.Since(start),
	})

	s.logger.DebugContext(ctx, "analysis complete",
		"strategy", summary.Strategy,
		"observations", summary.Observations,
		"clusters", summary.Clusters,
		"gaps", summary.Gaps,
	)

	records := result.Records()

	data, err := density.MarshalRecords(records)
	if err != nil {
		return errorResult[AnalyzeOutput](err)
	}

	labels := result.Labels
	if labels == nil {
		labels = []density.PointLabel{}
	}

	return textResult(string(data)), AnalyzeOutput{Segments: records, Labels: labels, Summary: summary}, nil
}
