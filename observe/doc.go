// Package observe provides observability primitives for schema verification.
//
// It is a pure instrumentation library: no resolution, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into a schema Verifier
// or use the logger, tracer, and metrics pieces directly.
package observe
