package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricToolCallsTotal    = "lyagushka.tool.calls.total"
	metricToolCallDuration  = "lyagushka.tool.call.duration.seconds"
	metricToolCallsInflight = "lyagushka.tool.calls.inflight"

	attrTool    = "tool"
	attrOutcome = "outcome"
)

// Outcome classifies how a tool call ended.
type Outcome string

const (
	// OutcomeOK is a call that returned a result.
	OutcomeOK Outcome = "ok"
	// OutcomeRejected is a call whose input the tool refused, reported to the
	// client as a tool error result.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed is a call that returned a protocol-level error.
	OutcomeFailed Outcome = "failed"
)

// OutcomeOf maps a handler's error-result flag and returned error to an Outcome.
func OutcomeOf(isErrorResult bool, err error) Outcome {
	switch {
	case err != nil:
		return OutcomeFailed
	case isErrorResult:
		return OutcomeRejected
	default:
		return OutcomeOK
	}
}

// durationBucketBoundaries covers 100µs to 60s: small inputs finish in
// microseconds while the neighborhood strategy grows quadratically.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60}

// ToolMetrics counts MCP tool calls by tool and outcome.
type ToolMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	inflight metric.Int64UpDownCounter
}

// NewToolMetrics creates tool call instruments from the given meter.
func NewToolMetrics(mt metric.Meter) (*ToolMetrics, error) {
	calls, err := mt.Int64Counter(metricToolCallsTotal,
		metric.WithDescription("Tool calls by tool and outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolCallsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricToolCallDuration,
		metric.WithDescription("Tool call latency in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolCallDuration, err)
	}

	inflight, err := mt.Int64UpDownCounter(metricToolCallsInflight,
		metric.WithDescription("Tool calls currently running"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricToolCallsInflight, err)
	}

	return &ToolMetrics{calls: calls, duration: duration, inflight: inflight}, nil
}

// RecordCall records one finished call. Safe to call on a nil receiver.
func (tm *ToolMetrics) RecordCall(ctx context.Context, tool string, outcome Outcome, elapsed time.Duration) {
	if tm == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrOutcome, string(outcome)),
	)

	tm.calls.Add(ctx, 1, attrs)
	tm.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// StartCall marks a call of tool as running and returns the function that
// ends it. Safe to call on a nil receiver.
func (tm *ToolMetrics) StartCall(ctx context.Context, tool string) func() {
	if tm == nil {
		return func() {}
	}

	attrs := metric.WithAttributes(attribute.String(attrTool, tool))
	tm.inflight.Add(ctx, 1, attrs)

	return func() {
		tm.inflight.Add(ctx, -1, attrs)
	}
}
