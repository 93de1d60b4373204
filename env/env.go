package env

import "os"

// Source supplies environment variable values by name.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Semantics: the bool reports whether the variable is defined at all. A
//   defined but empty variable returns ("", true); callers decide how to
//   treat empty values.
type Source interface {
	// Lookup returns the value of the named variable and whether it is defined.
	Lookup(name string) (string, bool)
}

// Map is an in-memory Source backed by a plain map. The zero value is an
// empty environment.
type Map map[string]string

// Lookup returns the mapped value for name.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// osSource reads the live process environment on every lookup.
type osSource struct{}

// OS returns a Source over the process environment. Lookups are never
// cached; changes to the process environment are visible immediately.
func OS() Source {
	return osSource{}
}

func (osSource) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// chain consults sources in order.
type chain []Source

// Chain returns a Source that consults sources in order and serves the
// first definition found. Definition wins, not non-emptiness: a source
// that defines a variable as "" shadows later sources. An empty chain
// defines nothing.
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Lookup(name string) (string, bool) {
	for _, s := range c {
		if v, ok := s.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

// prefixed namespaces lookups under a fixed prefix.
type prefixed struct {
	src    Source
	prefix string
}

// Prefixed returns a Source that resolves name through src as prefix+name,
// namespacing an application's variables under e.g. "APP_".
func Prefixed(src Source, prefix string) Source {
	return prefixed{src: src, prefix: prefix}
}

func (p prefixed) Lookup(name string) (string, bool) {
	return p.src.Lookup(p.prefix + name)
}

// Ensure all sources implement Source
var (
	_ Source = Map(nil)
	_ Source = osSource{}
	_ Source = chain(nil)
	_ Source = prefixed{}
)
