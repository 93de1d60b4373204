package schema

// Config is a resolved configuration tree. It is an alias for a plain
// nested map so resolved trees interoperate with redact and
// encoding/json without conversion.
type Config = map[string]any

// TransformFunc converts a raw environment value into its resolved form.
// It is invoked only for defined, non-empty values. A returned error
// marks the leaf invalid; resolution continues and the error is
// collected.
type TransformFunc func(raw string) (any, error)

// Environment supplies variable values during resolution. The bool
// reports whether the variable is defined; the resolver additionally
// treats defined-but-empty values as missing. env.Source implementations
// satisfy this interface.
type Environment interface {
	Lookup(name string) (string, bool)
}

// Node is one position in a configuration schema. The concrete kinds are
// Key, Transform, Insert, Secret, and Map; nothing else implements Node.
type Node interface {
	node()
}

// keyNode reads one environment variable verbatim.
type keyNode struct {
	name string
}

// Key declares a leaf resolved from the environment variable name.
func Key(name string) Node {
	return keyNode{name: name}
}

// transformNode reads one environment variable and converts it.
type transformNode struct {
	name string
	fn   TransformFunc
}

// Transform declares a leaf resolved from the environment variable name
// and converted by fn. fn runs only when the variable is defined and
// non-empty; a missing variable is reported without invoking it.
func Transform(name string, fn TransformFunc) Node {
	return transformNode{name: name, fn: fn}
}

// insertNode carries a literal value.
type insertNode struct {
	value any
}

// Insert declares a leaf holding value verbatim. The environment is
// never consulted and the leaf cannot fail.
func Insert(value any) Node {
	return insertNode{value: value}
}

// secretNode marks its wrapped node as secret.
type secretNode struct {
	wrapped Node
}

// Secret marks node as secret. The node resolves exactly as it would
// unwrapped, and its dotted path is recorded for redaction. Wrapping a
// Map records the single path of the whole subtree; redundant double
// wrapping still records one path.
func Secret(node Node) Node {
	return secretNode{wrapped: node}
}

// Map is a nested schema object. Its keys become the keys of the
// resolved Config. Keys must not contain dots, which are reserved as the
// path separator.
type Map map[string]Node

func (Map) node()           {}
func (keyNode) node()       {}
func (transformNode) node() {}
func (insertNode) node()    {}
func (secretNode) node()    {}
