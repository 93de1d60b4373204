package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records verification metrics for schemas.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordVerification records one verification pass with its duration
	// and resolution counts. Invalid values count toward missing.
	RecordVerification(ctx context.Context, meta SchemaMeta, duration time.Duration, missing, secrets int)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	missingCount metric.Int64Counter
	secretCount  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"env.verify.total",
		metric.WithDescription("Total number of verification passes"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	missingCount, err := meter.Int64Counter(
		"env.verify.missing",
		metric.WithDescription("Total number of missing or invalid environment values"),
		metric.WithUnit("{value}"),
	)
	if err != nil {
		return nil, err
	}

	secretCount, err := meter.Int64Counter(
		"env.verify.secrets",
		metric.WithDescription("Total number of secret paths recorded"),
		metric.WithUnit("{path}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"env.verify.duration_ms",
		metric.WithDescription("Verification duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		missingCount: missingCount,
		secretCount:  secretCount,
		durationHist: durationHist,
	}, nil
}

// RecordVerification records metrics for a verification pass.
func (m *metricsImpl) RecordVerification(ctx context.Context, meta SchemaMeta, duration time.Duration, missing, secrets int) {
	// Build common attributes
	var attrs []attribute.KeyValue
	if meta.Name != "" {
		attrs = append(attrs, attribute.String("schema.name", meta.Name))
	}
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("schema.version", meta.Version))
	}

	opt := metric.WithAttributes(attrs...)

	// Always increment total counter
	m.totalCount.Add(ctx, 1, opt)

	// Count missing values and secret paths when present
	if missing > 0 {
		m.missingCount.Add(ctx, int64(missing), opt)
	}
	if secrets > 0 {
		m.secretCount.Add(ctx, int64(secrets), opt)
	}

	// Record duration in milliseconds
	durationMs := float64(duration.Milliseconds())
	m.durationHist.Record(ctx, durationMs, opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordVerification(ctx context.Context, meta SchemaMeta, duration time.Duration, missing, secrets int) {
}

// NoopMetrics returns a Metrics that records nothing. It is the metrics
// sink used by verifiers constructed without an Observer.
func NoopMetrics() Metrics {
	return &noopMetrics{}
}
