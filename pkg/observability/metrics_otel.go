package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of every OTel instrument
const MeterName = "github.com/platinummonkey/tasklist"

// OTelMetrics mirrors the storage and auth Prometheus metrics as OTel
// instruments so they can be exported over OTLP
type OTelMetrics struct {
	storageOperations metric.Int64Counter
	storageDuration   metric.Float64Histogram
	authAttempts      metric.Int64Counter
	authRejections    metric.Int64Counter
}

// NewOTelMetrics creates the instruments on meter
func NewOTelMetrics(meter metric.Meter) (*OTelMetrics, error) {
	m := &OTelMetrics{}
	var err error

	m.storageOperations, err = meter.Int64Counter(
		"storage.operations.total",
		metric.WithDescription("Total number of storage operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage_operations counter: %w", err)
	}

	m.storageDuration, err = meter.Float64Histogram(
		"storage.operation.duration",
		metric.WithDescription("Storage operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage_duration histogram: %w", err)
	}

	m.authAttempts, err = meter.Int64Counter(
		"auth.attempts.total",
		metric.WithDescription("Register and login attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth_attempts counter: %w", err)
	}

	m.authRejections, err = meter.Int64Counter(
		"auth.rejections.total",
		metric.WithDescription("Requests rejected by the bearer guard"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth_rejections counter: %w", err)
	}

	return m, nil
}

// ObserveStorageOperation records one store call
func (m *OTelMetrics) ObserveStorageOperation(operation string, duration time.Duration, err error) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("error", err != nil),
	)
	m.storageOperations.Add(ctx, 1, attrs)
	m.storageDuration.Record(ctx, duration.Seconds(), attrs)
}

// ObserveAuthAttempt records the outcome of a register or login call
func (m *OTelMetrics) ObserveAuthAttempt(operation, outcome string) {
	m.authAttempts.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// ObserveAuthRejection records a request rejected by the bearer guard
func (m *OTelMetrics) ObserveAuthRejection(reason string) {
	m.authRejections.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
