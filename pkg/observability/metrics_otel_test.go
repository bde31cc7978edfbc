package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestOTelMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	m, err := NewOTelMetrics(provider.Meter(MeterName))
	require.NoError(t, err)

	m.ObserveStorageOperation("list_tasks", time.Millisecond, nil)
	m.ObserveStorageOperation("list_tasks", time.Millisecond, errors.New("boom"))
	m.ObserveAuthAttempt("login", "success")
	m.ObserveAuthRejection("invalid_scheme")
	m.ObserveAuthRejection("invalid_token")

	metrics := collect(t, reader)

	require.Contains(t, metrics, "storage.operations.total")
	assert.Equal(t, int64(2), sumOf(t, metrics["storage.operations.total"]))
	require.Contains(t, metrics, "auth.attempts.total")
	assert.Equal(t, int64(1), sumOf(t, metrics["auth.attempts.total"]))
	require.Contains(t, metrics, "auth.rejections.total")
	assert.Equal(t, int64(2), sumOf(t, metrics["auth.rejections.total"]))

	hist, ok := metrics["storage.operation.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

type countingObserver struct {
	storage, attempts, rejections int
}

func (c *countingObserver) ObserveStorageOperation(string, time.Duration, error) { c.storage++ }
func (c *countingObserver) ObserveAuthAttempt(string, string)                   { c.attempts++ }
func (c *countingObserver) ObserveAuthRejection(string)                         { c.rejections++ }

func TestObserverFanout(t *testing.T) {
	a, b := &countingObserver{}, &countingObserver{}

	StorageObservers{a, b}.ObserveStorageOperation("migrate", 0, nil)
	AuthObservers{a, b}.ObserveAuthAttempt("login", "success")
	AuthObservers{a, b}.ObserveAuthRejection("missing_header")

	for _, c := range []*countingObserver{a, b} {
		assert.Equal(t, 1, c.storage)
		assert.Equal(t, 1, c.attempts)
		assert.Equal(t, 1, c.rejections)
	}
}
