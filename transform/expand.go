package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// lookup is the subset of an environment source Expand needs.
type lookup interface {
	Lookup(name string) (string, bool)
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand returns a transform that expands ${VAR} references inside a
// value against src.
//
// Semantics:
//   - `${VAR}` is replaced by the value of VAR in src.
//   - If `${VAR}` is present but VAR is undefined in src, the transform
//     errors, naming every undefined variable in sorted order.
//   - `$$` emits a literal `$` (escape hatch).
//
// Unbraced `$VAR` references are left untouched.
func Expand(src lookup) func(string) (any, error) {
	return func(raw string) (any, error) {
		const dollarSentinel = "\x00ENVOPS_DOLLAR\x00"
		s := strings.ReplaceAll(raw, "$$", dollarSentinel)

		missing := make(map[string]struct{})
		for _, match := range varPattern.FindAllStringSubmatch(s, -1) {
			key := match[1]
			if _, ok := src.Lookup(key); !ok {
				missing[key] = struct{}{}
			}
		}
		if len(missing) > 0 {
			keys := make([]string, 0, len(missing))
			for k := range missing {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(keys, ", "))
		}

		s = varPattern.ReplaceAllStringFunc(s, func(m string) string {
			v, _ := src.Lookup(m[2 : len(m)-1])
			return v
		})
		s = strings.ReplaceAll(s, dollarSentinel, "$")
		return s, nil
	}
}
