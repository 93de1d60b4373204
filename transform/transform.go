package transform

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Int parses raw as a base-10 int.
func Int(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Int64 parses raw as a base-10 int64.
func Int64(raw string) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Float64 parses raw as a float64.
func Float64(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Bool parses raw with strconv.ParseBool, accepting 1, t, true, 0, f,
// false in any case.
func Bool(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Duration parses raw with time.ParseDuration ("300ms", "2h45m").
func Duration(raw string) (any, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// URL parses raw as an absolute URL and resolves to a *url.URL. A value
// without a scheme is rejected; bare hosts are almost always mistakes in
// environment configuration.
func URL(raw string) (any, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("url %q has no scheme", raw)
	}
	return u, nil
}

// UUID parses raw as an RFC 4122 UUID.
func UUID(raw string) (any, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return id, nil
}

// Base64 decodes raw as standard base64 and resolves to []byte.
func Base64(raw string) (any, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// CSV splits raw on commas and trims surrounding whitespace from each
// item, resolving to []string. Empty items are preserved.
func CSV(raw string) (any, error) {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}
