package schema

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/envops/observe"
)

// Verifier resolves schemas with explicit dependencies: an environment
// source and optional telemetry. The zero-option Verifier reads the live
// process environment and performs no telemetry.
type Verifier struct {
	env     Environment
	meta    observe.SchemaMeta
	logger  observe.Logger
	tracer  observe.Tracer
	metrics observe.Metrics
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithEnvironment sets the environment source consulted during
// resolution. A nil source leaves the default in place.
func WithEnvironment(env Environment) Option {
	return func(v *Verifier) {
		if env != nil {
			v.env = env
		}
	}
}

// WithMeta sets the schema metadata reported in spans, metrics, and
// logs.
func WithMeta(meta observe.SchemaMeta) Option {
	return func(v *Verifier) {
		v.meta = meta
	}
}

// WithName sets the schema name reported in telemetry.
func WithName(name string) Option {
	return func(v *Verifier) {
		v.meta.Name = name
	}
}

// WithLogger sets the logger for resolution reporting. Only variable
// names, paths, and counts are logged, never values.
func WithLogger(logger observe.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithTracer sets the tracer for verification spans.
func WithTracer(tracer observe.Tracer) Option {
	return func(v *Verifier) {
		if tracer != nil {
			v.tracer = tracer
		}
	}
}

// WithMetrics sets the recorder for verification counters.
func WithMetrics(metrics observe.Metrics) Option {
	return func(v *Verifier) {
		if metrics != nil {
			v.metrics = metrics
		}
	}
}

// NewVerifier builds a Verifier.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		env:     ambientEnv{},
		logger:  observe.NoopLogger(),
		tracer:  observe.NoopTracer(),
		metrics: observe.NoopMetrics(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewInstrumentedVerifier builds a Verifier wired to an Observer's
// tracer, meter, and logger. Later opts may override individual pieces.
func NewInstrumentedVerifier(obs observe.Observer, opts ...Option) (*Verifier, error) {
	if obs == nil {
		return nil, observe.ErrNilObserver
	}
	metrics, err := observe.NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithTracer(observe.NewTracer(obs.Tracer())),
		WithMetrics(metrics),
		WithLogger(obs.Logger()),
	}
	return NewVerifier(append(base, opts...)...), nil
}

// Verify resolves s, reporting every missing or invalid leaf in the
// Result while the rest of the tree still resolves. It never fails.
func (v *Verifier) Verify(ctx context.Context, s Map) *Result {
	ctx, span := v.tracer.StartSpan(ctx, v.meta)
	start := time.Now()

	res := Resolve(s, v.env)
	result := newResult(res)
	duration := time.Since(start)

	v.tracer.EndSpan(span, len(res.Errors), len(res.SecretPaths))
	v.metrics.RecordVerification(ctx, v.meta, duration, len(res.Errors), len(res.SecretPaths))

	logger := v.logger.WithSchema(v.meta)
	for _, e := range res.Errors {
		msg := "environment value missing"
		if errors.Is(e.Err, ErrInvalidValue) {
			msg = "environment value invalid"
		}
		logger.Warn(ctx, msg,
			observe.Field{Key: "env_key", Value: e.Key},
			observe.Field{Key: "path", Value: e.Path},
		)
	}

	fields := []observe.Field{
		{Key: "keys", Value: len(result.Config)},
		{Key: "missing", Value: len(res.Errors)},
		{Key: "secrets", Value: len(res.SecretPaths)},
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if result.OK() {
		logger.Info(ctx, "schema verified", fields...)
	} else {
		logger.Error(ctx, "schema verification incomplete", fields...)
	}

	return result
}

// Strict resolves s and fails when any leaf is missing or invalid. The
// returned error aggregates every leaf message in schema order; no
// partial Config accompanies it.
func (v *Verifier) Strict(ctx context.Context, s Map) (Config, error) {
	result := v.Verify(ctx, s)
	if !result.OK() {
		return nil, &MissingConfigError{Messages: result.Errors}
	}
	return result.Config, nil
}

// defaultVerifier reads the ambient process environment, no telemetry.
var defaultVerifier = NewVerifier()

// Verify resolves s against the live process environment with no
// telemetry. See Verifier.Verify.
func Verify(s Map) *Result {
	return defaultVerifier.Verify(context.Background(), s)
}

// StrictVerify resolves s against the live process environment and
// fails when any leaf is missing or invalid. See Verifier.Strict.
func StrictVerify(s Map) (Config, error) {
	return defaultVerifier.Strict(context.Background(), s)
}
