// Package env provides environment variable sources for schema resolution.
//
// A Source answers lookups by variable name. Sources compose: Chain layers
// several sources with first-definition-wins precedence, Prefixed
// namespaces lookups, Dotenv reads files, and OS serves the live process
// environment.
package env
