package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// SchemaMeta contains metadata about a schema for telemetry purposes.
type SchemaMeta struct {
	Name    string // Schema name used in span names and log fields (may be empty)
	Version string // Schema version (optional)
}

// SpanName returns the deterministic span name for this schema.
// Format: env.verify.<name> or env.verify
func (m SchemaMeta) SpanName() string {
	if m.Name != "" {
		return "env.verify." + m.Name
	}
	return "env.verify"
}

// Tracer wraps OpenTelemetry tracing with verification span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a verification pass.
	StartSpan(ctx context.Context, meta SchemaMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording resolution counts. A pass with
	// missing values gets an error status.
	EndSpan(span trace.Span, missing, secrets int)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with schema metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta SchemaMeta) (context.Context, trace.Span) {
	spanName := meta.SpanName()

	// Build attributes
	attrs := []attribute.KeyValue{
		attribute.Bool("verify.complete", true), // Will be updated in EndSpan if values are missing
	}

	// Add optional attributes if present
	if meta.Name != "" {
		attrs = append(attrs, attribute.String("schema.name", meta.Name))
	}
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("schema.version", meta.Version))
	}

	ctx, span := t.tracer.Start(ctx, spanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records counts and the completion status.
func (t *tracerImpl) EndSpan(span trace.Span, missing, secrets int) {
	span.SetAttributes(
		attribute.Int("verify.missing", missing),
		attribute.Int("verify.secrets", secrets),
	)
	if missing > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d configuration values missing", missing))
		span.SetAttributes(attribute.Bool("verify.complete", false))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NoopTracer returns a Tracer that records nothing. It is the tracer used
// by verifiers constructed without an Observer.
func NoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta SchemaMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, missing, secrets int) {
	span.End()
}
