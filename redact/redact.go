package redact

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Marker is the replacement string written over secret values.
const Marker = "[secret]"

// Apply returns a copy of cfg with the value at every dotted path in paths
// replaced by Marker. A path such as "db.password" addresses cfg["db"] as a
// nested map and replaces its "password" entry.
//
// The input tree is never mutated: every nested map is freshly allocated in
// the returned copy. Leaf values are carried over as-is. Paths that address
// a key absent from the tree, or that descend through a non-map value, are
// ignored. Applying the same paths to an already sanitized copy yields an
// identical result.
//
// Paths are split on "." and grouped by their first segment, so individual
// keys must not contain dots; a literal dotted key cannot be addressed.
func Apply(paths []string, cfg map[string]any) map[string]any {
	out := copyTree(cfg)
	apply(paths, out)
	return out
}

// copyTree clones a configuration tree, allocating fresh maps at every
// level. Leaf values are shared with the source.
func copyTree(cfg map[string]any) map[string]any {
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		if child, ok := v.(map[string]any); ok {
			out[k] = copyTree(child)
		} else {
			out[k] = v
		}
	}
	return out
}

// apply overwrites secret values in place. cfg must be a private copy.
func apply(paths []string, cfg map[string]any) {
	var direct []string
	children := make(map[string][]string)
	for _, p := range paths {
		if head, rest, found := strings.Cut(p, "."); found {
			children[head] = append(children[head], rest)
		} else {
			direct = append(direct, p)
		}
	}

	for _, key := range direct {
		if _, ok := cfg[key]; ok {
			cfg[key] = Marker
		}
	}

	for head, rest := range children {
		child, ok := cfg[head].(map[string]any)
		if !ok {
			continue
		}
		apply(rest, child)
	}
}

// Render serializes a configuration tree as two-space indented JSON with
// keys in sorted order. Trees that cannot be marshaled fall back to fmt's
// %v rendering rather than failing.
func Render(cfg map[string]any) string {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", cfg)
	}
	return string(data)
}
