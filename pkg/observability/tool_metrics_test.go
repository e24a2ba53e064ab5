package observability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/lyagushka/pkg/observability"
)

func setupToolMetrics(t *testing.T) (*observability.ToolMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	tools, err := observability.NewToolMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return tools, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)

	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		isError bool
		err     error
		want    observability.Outcome
	}{
		{name: "ok", want: observability.OutcomeOK},
		{name: "error_result_is_rejected", isError: true, want: observability.OutcomeRejected},
		{name: "returned_error_is_failed", err: errors.New("boom"), want: observability.OutcomeFailed},
		{name: "returned_error_wins", isError: true, err: errors.New("boom"), want: observability.OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, observability.OutcomeOf(tt.isError, tt.err))
		})
	}
}

func TestToolMetrics_RecordCall(t *testing.T) {
	t.Parallel()

	tools, reader := setupToolMetrics(t)
	ctx := context.Background()

	tools.RecordCall(ctx, "lyagushka_analyze", observability.OutcomeOK, 100*time.Millisecond)
	tools.RecordCall(ctx, "lyagushka_analyze", observability.OutcomeRejected, time.Millisecond)
	tools.RecordCall(ctx, "lyagushka_validate", observability.OutcomeOK, time.Millisecond)

	rm := collectMetrics(t, reader)

	calls := findMetric(rm, "lyagushka.tool.calls.total")
	require.NotNil(t, calls)
	assert.Equal(t, int64(2), sumByAttr(t, calls, "tool", "lyagushka_analyze"))
	assert.Equal(t, int64(1), sumByAttr(t, calls, "tool", "lyagushka_validate"))
	assert.Equal(t, int64(1), sumByAttr(t, calls, "outcome", "rejected"))
	assert.Equal(t, int64(2), sumByAttr(t, calls, "outcome", "ok"))

	require.NotNil(t, findMetric(rm, "lyagushka.tool.call.duration.seconds"))
}

func TestToolMetrics_StartCall(t *testing.T) {
	t.Parallel()

	tools, reader := setupToolMetrics(t)
	ctx := context.Background()

	done := tools.StartCall(ctx, "lyagushka_analyze")

	inflight := findMetric(collectMetrics(t, reader), "lyagushka.tool.calls.inflight")
	require.NotNil(t, inflight)
	assert.Equal(t, int64(1), sumByAttr(t, inflight, "tool", "lyagushka_analyze"))

	done()

	inflight = findMetric(collectMetrics(t, reader), "lyagushka.tool.calls.inflight")
	require.NotNil(t, inflight)
	assert.Equal(t, int64(0), sumByAttr(t, inflight, "tool", "lyagushka_analyze"))
}

func TestToolMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var tools *observability.ToolMetrics

	assert.NotPanics(t, func() {
		done := tools.StartCall(context.Background(), "lyagushka_analyze")
		tools.RecordCall(context.Background(), "lyagushka_analyze", observability.OutcomeOK, time.Millisecond)
		done()
	})
}

func TestNewToolMetrics_NoopMeter(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	tools, err := observability.NewToolMetrics(providers.Meter)
	require.NoError(t, err)
	assert.NotNil(t, tools)

	tools.RecordCall(context.Background(), "test", observability.OutcomeOK, time.Millisecond)
}
