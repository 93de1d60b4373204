// Package redact produces sanitized views of resolved configuration.
//
// Secret values are replaced with Marker before a configuration tree is
// rendered or logged. Apply copies the tree it sanitizes, never mutates
// its input, and is idempotent.
package redact
