// Package transform provides value transforms for schema leaves.
//
// Every transform has the shape func(raw string) (any, error) and plugs
// into schema.Transform. The raw argument is the environment value,
// already known to be defined and non-empty; a transform is never invoked
// for a missing variable. Returned errors are collected by the resolver
// and attributed to the leaf's environment key and path.
package transform
