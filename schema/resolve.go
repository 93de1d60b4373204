package schema

import (
	"os"
	"sort"
)

// Resolution is the complete outcome of resolving a schema against an
// environment.
type Resolution struct {
	// Config is the resolved tree. Every schema key is present at every
	// level, with nil standing in for leaves that failed.
	Config Config

	// Errors collects every failed leaf in schema order.
	Errors []*ResolveError

	// SecretPaths lists the dotted path of every Secret node in schema
	// order.
	SecretPaths []string
}

// Resolve walks s depth-first, with keys in sorted order at every level,
// resolving each leaf against env. It never fails: missing and invalid
// leaves are collected in Resolution.Errors while the rest of the tree
// still resolves. Absent and defined-but-empty variables are both
// treated as missing. A nil env reads the live process environment.
func Resolve(s Map, env Environment) Resolution {
	if env == nil {
		env = ambientEnv{}
	}
	r := &resolver{env: env}
	cfg := r.resolveMap(s, "")
	return Resolution{Config: cfg, Errors: r.errs, SecretPaths: r.secrets}
}

// ambientEnv reads the live process environment, uncached.
type ambientEnv struct{}

func (ambientEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

type resolver struct {
	env     Environment
	errs    []*ResolveError
	secrets []string
}

func (r *resolver) resolveMap(s Map, path string) Config {
	cfg := make(Config, len(s))
	for _, key := range sortedKeys(s) {
		cfg[key] = r.resolveNode(s[key], childPath(path, key))
	}
	return cfg
}

// resolveNode produces the value for one schema position. Failed leaves
// yield nil so the resolved tree keeps the schema's shape.
func (r *resolver) resolveNode(n Node, path string) any {
	if sn, ok := n.(secretNode); ok {
		r.secrets = append(r.secrets, path)
		n = unwrapSecret(sn)
	}

	switch v := n.(type) {
	case insertNode:
		return v.value
	case keyNode:
		raw, ok := r.lookup(v.name)
		if !ok {
			r.errs = append(r.errs, missingError(v.name, path))
			return nil
		}
		return raw
	case transformNode:
		raw, ok := r.lookup(v.name)
		if !ok {
			r.errs = append(r.errs, missingError(v.name, path))
			return nil
		}
		out, err := v.fn(raw)
		if err != nil {
			r.errs = append(r.errs, invalidError(v.name, path, err))
			return nil
		}
		return out
	case Map:
		return r.resolveMap(v, path)
	default:
		// Unreachable: Node is sealed.
		return nil
	}
}

// lookup applies the missing rule: absent and empty are alike undefined.
func (r *resolver) lookup(name string) (string, bool) {
	raw, ok := r.env.Lookup(name)
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}

// unwrapSecret removes any depth of Secret wrapping.
func unwrapSecret(sn secretNode) Node {
	n := sn.wrapped
	for {
		inner, ok := n.(secretNode)
		if !ok {
			return n
		}
		n = inner.wrapped
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func sortedKeys(s Map) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
