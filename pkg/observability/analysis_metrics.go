package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricObservationsTotal = "lyagushka.analysis.observations.total"
	metricSegmentsTotal     = "lyagushka.analysis.segments.total"
	metricDroppedTotal      = "lyagushka.analysis.dropped.total"
	metricAnalysisDuration  = "lyagushka.analysis.duration.seconds"

	attrKind     = "kind"
	attrStrategy = "strategy"

	kindCluster = "cluster"
	kindGap     = "gap"
)

// AnalysisMetrics holds OTel instruments for analysis-specific metrics.
type AnalysisMetrics struct {
	observationsTotal metric.Int64Counter
	segmentsTotal     metric.Int64Counter
	droppedTotal      metric.Int64Counter
	duration          metric.Float64Histogram
}

// AnalysisStats holds the statistics for a single analysis run,
// decoupled from the density types.
type AnalysisStats struct {
	Strategy      string
	Observations  int
	Clusters      int
	Gaps          int
	DroppedPoints int
	Duration      time.Duration
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	observations, err := mt.Int64Counter(metricObservationsTotal,
		metric.WithDescription("Total observations analyzed"),
		metric.WithUnit("{observation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricObservationsTotal, err)
	}

	segments, err := mt.Int64Counter(metricSegmentsTotal,
		metric.WithDescription("Detected segments by kind"),
		metric.WithUnit("{segment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSegmentsTotal, err)
	}

	dropped, err := mt.Int64Counter(metricDroppedTotal,
		metric.WithDescription("Observations that ended up in no cluster"),
		metric.WithUnit("{observation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDroppedTotal, err)
	}

	duration, err := mt.Float64Histogram(metricAnalysisDuration,
		metric.WithDescription("Analysis duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricAnalysisDuration, err)
	}

	return &AnalysisMetrics{
		observationsTotal: observations,
		segmentsTotal:     segments,
		droppedTotal:      dropped,
		duration:          duration,
	}, nil
}

// RecordRun records statistics for a completed analysis.
// Safe to call on a nil receiver (no-op).
func (am *AnalysisMetrics) RecordRun(ctx context.Context, stats AnalysisStats) {
	if am == nil {
		return
	}

	strategy := attribute.String(attrStrategy, stats.Strategy)

	am.observationsTotal.Add(ctx, int64(stats.Observations), metric.WithAttributes(strategy))
	am.droppedTotal.Add(ctx, int64(stats.DroppedPoints), metric.WithAttributes(strategy))
	am.duration.Record(ctx, stats.Duration.Seconds(), metric.WithAttributes(strategy))

	am.segmentsTotal.Add(ctx, int64(stats.Clusters),
		metric.WithAttributes(strategy, attribute.String(attrKind, kindCluster)))
	am.segmentsTotal.Add(ctx, int64(stats.Gaps),
		metric.WithAttributes(strategy, attribute.String(attrKind, kindGap)))
}
