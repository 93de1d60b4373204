package check

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/envops/schema"
)

// Status represents the readiness of a configuration surface.
type Status int

const (
	// StatusReady indicates every required value resolved.
	StatusReady Status = iota
	// StatusNotReady indicates one or more values are missing or invalid.
	StatusNotReady
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusNotReady:
		return "not-ready"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a readiness check.
type Result struct {
	// Status is the readiness status.
	Status Status

	// Message provides additional context about the status.
	Message string

	// Missing lists resolution error messages, in schema order.
	Missing []string

	// Duration is how long the check took.
	Duration time.Duration

	// Timestamp is when the check was performed.
	Timestamp time.Time

	// Error is the error if the check itself failed to run.
	Error error
}

// Ready creates a ready result.
func Ready(message string) Result {
	return Result{
		Status:    StatusReady,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NotReady creates a not-ready result carrying the missing-value messages.
func NotReady(message string, missing []string) Result {
	return Result{
		Status:    StatusNotReady,
		Message:   message,
		Missing:   missing,
		Timestamp: time.Now(),
	}
}

// WithDuration sets the duration on a result.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// Checker is the interface for readiness checks.
type Checker interface {
	// Name returns the name of this checker.
	Name() string

	// Check performs the readiness check and returns the result.
	Check(ctx context.Context) Result
}

// CheckerFunc is an adapter to allow ordinary functions to be used as Checkers.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a new CheckerFunc.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the name of this checker.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check performs the readiness check.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}

// SchemaChecker reports readiness of a single schema.
type SchemaChecker struct {
	name     string
	schema   schema.Map
	verifier *schema.Verifier
}

// ForSchema creates a checker that verifies s on every Check call. Options
// configure the underlying verifier (environment, metadata, telemetry); the
// checker name doubles as the schema name unless an option overrides it.
func ForSchema(name string, s schema.Map, opts ...schema.Option) *SchemaChecker {
	opts = append([]schema.Option{schema.WithName(name)}, opts...)
	return &SchemaChecker{
		name:     name,
		schema:   s,
		verifier: schema.NewVerifier(opts...),
	}
}

// Name returns the name of this checker.
func (c *SchemaChecker) Name() string {
	return c.name
}

// Check verifies the schema and maps the outcome onto a readiness result.
func (c *SchemaChecker) Check(ctx context.Context) Result {
	start := time.Now()
	res := c.verifier.Verify(ctx, c.schema)

	if res.OK() {
		return Ready("configuration resolved").WithDuration(time.Since(start))
	}

	message := fmt.Sprintf("%d configuration values missing", len(res.Errors))
	return NotReady(message, res.Errors).WithDuration(time.Since(start))
}

// Ensure SchemaChecker implements Checker
var _ Checker = (*SchemaChecker)(nil)
