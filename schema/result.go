package schema

import "github.com/jonwraymond/envops/redact"

// Result is the outcome of non-strict verification.
type Result struct {
	// Config is the resolved tree, shaped exactly like the schema.
	Config Config

	// Errors holds one message per failed leaf, in schema order. Empty
	// when every leaf resolved.
	Errors []string

	secretPaths []string
}

func newResult(res Resolution) *Result {
	msgs := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		msgs = append(msgs, e.Error())
	}
	return &Result{
		Config:      res.Config,
		Errors:      msgs,
		secretPaths: res.SecretPaths,
	}
}

// OK reports whether every leaf resolved.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// SecretPaths returns a copy of the recorded secret paths in schema
// order.
func (r *Result) SecretPaths() []string {
	out := make([]string, len(r.secretPaths))
	copy(out, r.secretPaths)
	return out
}

// Redacted renders the sanitized configuration view: a deep copy of
// Config with every secret value replaced by redact.Marker, serialized
// as indented JSON. The bool is false when the schema recorded no
// secrets. The view is recomputed on every call, never cached, so it
// reflects the Config as it stands now.
func (r *Result) Redacted() (string, bool) {
	if len(r.secretPaths) == 0 {
		return "", false
	}
	return redact.Render(redact.Apply(r.secretPaths, r.Config)), true
}
