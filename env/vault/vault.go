// Package vault provides an environment source backed by HashiCorp Vault
// KV-v2 secrets.
//
// A Source takes an eager snapshot of the configured secret paths at
// construction and serves lookups from it. The snapshot is refreshed once
// its TTL expires; refresh failures leave the previous snapshot in place so
// a Vault outage degrades to stale values rather than missing ones.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/vault/api"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/envops/env"
)

// Configuration errors.
var (
	// ErrNilReader indicates a nil SecretReader was provided.
	ErrNilReader = errors.New("vault: secret reader is nil")

	// ErrNoPaths indicates Config.Paths is empty.
	ErrNoPaths = errors.New("vault: no secret paths configured")
)

// SecretReader reads one secret's key/value data.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Read must honor cancellation/deadlines.
// - Errors: Read returns an error for unreachable or missing secrets; it
//   must not return partial data alongside an error.
type SecretReader interface {
	// Read returns the flat key/value data stored at path.
	Read(ctx context.Context, path string) (map[string]string, error)
}

// Config configures a Source.
type Config struct {
	// Paths are the KV-v2 secret paths to load, mount-prefixed
	// (e.g. "secret/myapp/db"). Keys from earlier paths win.
	Paths []string

	// TTL is how long a snapshot is served before it is refreshed.
	// Default: 5 minutes
	TTL time.Duration

	// Timeout bounds refreshes triggered from Lookup.
	// Default: 30 seconds
	Timeout time.Duration
}

// Source is an environment source serving values from a Vault snapshot.
// It is safe for concurrent use.
type Source struct {
	reader SecretReader
	config Config

	mu        sync.RWMutex
	values    map[string]string
	fetchTime time.Time
	sfGroup   singleflight.Group // prevents thundering herd on refresh
}

// New constructs a Source and loads the initial snapshot. All configured
// paths are fetched concurrently; any failure fails construction.
func New(ctx context.Context, reader SecretReader, cfg Config) (*Source, error) {
	if reader == nil {
		return nil, ErrNilReader
	}
	if len(cfg.Paths) == 0 {
		return nil, ErrNoPaths
	}

	// Apply defaults
	if cfg.TTL == 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	s := &Source{
		reader: reader,
		config: cfg,
		values: make(map[string]string),
	}

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// NewFromEnv constructs a Source whose Vault client is configured from the
// standard VAULT_ADDR and VAULT_TOKEN environment variables.
func NewFromEnv(ctx context.Context, cfg Config) (*Source, error) {
	vcfg := api.DefaultConfig()
	if err := vcfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault: read environment: %w", err)
	}

	client, err := api.NewClient(vcfg)
	if err != nil {
		return nil, fmt.Errorf("vault: new client: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		client.SetToken(tok)
	}

	return New(ctx, KVv2(client), cfg)
}

// Lookup returns the named value from the current snapshot. A stale
// snapshot is refreshed first; if the refresh fails, the previous snapshot
// is served instead.
func (s *Source) Lookup(name string) (string, bool) {
	s.mu.RLock()
	fresh := time.Since(s.fetchTime) < s.config.TTL
	val, ok := s.values[name]
	s.mu.RUnlock()

	if fresh {
		return val, ok
	}

	if err := s.refreshShared(); err != nil {
		// A failed refresh leaves the stale snapshot in place; serve it.
		return val, ok
	}

	s.mu.RLock()
	val, ok = s.values[name]
	s.mu.RUnlock()
	return val, ok
}

// Refresh replaces the snapshot with freshly fetched data. Concurrent
// callers share a single fetch.
func (s *Source) Refresh(ctx context.Context) error {
	_, err, _ := s.sfGroup.Do("refresh", func() (any, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

// refreshShared deduplicates background refreshes triggered from Lookup,
// bounding each by the configured timeout.
func (s *Source) refreshShared() error {
	_, err, _ := s.sfGroup.Do("refresh", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
		defer cancel()
		return nil, s.refresh(ctx)
	})
	return err
}

// refresh fetches all paths and swaps in the merged snapshot.
func (s *Source) refresh(ctx context.Context) error {
	merged, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values = merged
	s.fetchTime = time.Now()
	s.mu.Unlock()

	return nil
}

// fetchAll reads all configured paths concurrently and merges the results
// in path order, earlier paths winning.
func (s *Source) fetchAll(ctx context.Context) (map[string]string, error) {
	results := make([]map[string]string, len(s.config.Paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range s.config.Paths {
		i, path := i, path
		g.Go(func() error {
			data, err := s.reader.Read(ctx, path)
			if err != nil {
				return fmt.Errorf("vault: read %s: %w", path, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]string)
	for _, data := range results {
		for k, v := range data {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

// KVv2 adapts a Vault API client into a SecretReader over KV-v2 mounts.
func KVv2(client *api.Client) SecretReader {
	return &kvReader{client: client}
}

// kvReader reads KV-v2 secrets through the Vault API client.
type kvReader struct {
	client *api.Client
}

func (r *kvReader) Read(ctx context.Context, path string) (map[string]string, error) {
	mount, rel := splitMount(path)

	sec, err := r.client.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(sec.Data))
	for k, raw := range sec.Data {
		switch v := raw.(type) {
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		case bool:
			out[k] = strconv.FormatBool(v)
		}
		// Nested values are skipped; environment values are flat strings.
	}
	return out, nil
}

// splitMount splits "secret/myapp/db" into mount "secret" and relative
// path "myapp/db".
func splitMount(p string) (mount, rel string) {
	if p == "" {
		return "", ""
	}
	parts := strings.SplitN(p, "/", 2)
	mount = parts[0]
	if len(parts) == 2 {
		rel = parts[1]
	}
	return
}

// Ensure Source implements env.Source
var _ env.Source = (*Source)(nil)
