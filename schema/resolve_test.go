package schema

import (
	"errors"
	"strconv"
	"testing"
)

type stubEnv map[string]string

func (s stubEnv) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// countingEnv records how many lookups resolution performed.
type countingEnv struct {
	values map[string]string
	calls  int
}

func (c *countingEnv) Lookup(name string) (string, bool) {
	c.calls++
	v, ok := c.values[name]
	return v, ok
}

func TestResolve_Key(t *testing.T) {
	s := Map{
		"db": Map{
			"name": Key("DB_NAME"),
		},
	}

	res := Resolve(s, stubEnv{"DB_NAME": "orders"})

	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	db, ok := res.Config["db"].(map[string]any)
	if !ok {
		t.Fatalf("Config[db] = %T, want nested map", res.Config["db"])
	}
	if db["name"] != "orders" {
		t.Errorf("Config[db][name] = %v, want orders", db["name"])
	}
}

func TestResolve_MissingKey(t *testing.T) {
	s := Map{
		"base": Map{
			"url": Key("BASE_URL"),
		},
	}

	res := Resolve(s, stubEnv{})

	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(res.Errors))
	}

	want := "environment value BASE_URL is missing from config object at base.url"
	if got := res.Errors[0].Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(res.Errors[0], ErrMissingValue) {
		t.Error("error should match ErrMissingValue")
	}

	// The failed leaf still occupies its key
	base, ok := res.Config["base"].(map[string]any)
	if !ok {
		t.Fatalf("Config[base] = %T, want nested map", res.Config["base"])
	}
	if v, present := base["url"]; !present || v != nil {
		t.Errorf("Config[base][url] = %v (present=%v), want nil placeholder", v, present)
	}
}

func TestResolve_EmptyValueIsMissing(t *testing.T) {
	s := Map{
		"url": Key("BASE_URL"),
	}

	res := Resolve(s, stubEnv{"BASE_URL": ""})

	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(res.Errors))
	}
	want := "environment value BASE_URL is missing from config object at url"
	if got := res.Errors[0].Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestResolve_Transform(t *testing.T) {
	s := Map{
		"port": Transform("PORT", func(raw string) (any, error) {
			return strconv.Atoi(raw)
		}),
	}

	res := Resolve(s, stubEnv{"PORT": "8080"})

	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	if res.Config["port"] != 8080 {
		t.Errorf("Config[port] = %v (%T), want 8080 (int)", res.Config["port"], res.Config["port"])
	}
}

func TestResolve_TransformNotInvokedOnMissing(t *testing.T) {
	invoked := 0
	s := Map{
		"port": Transform("PORT", func(raw string) (any, error) {
			invoked++
			return raw, nil
		}),
	}

	res := Resolve(s, stubEnv{})

	if invoked != 0 {
		t.Errorf("transform invoked %d times for missing value, want 0", invoked)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(res.Errors))
	}
	if !errors.Is(res.Errors[0], ErrMissingValue) {
		t.Errorf("error = %v, want ErrMissingValue", res.Errors[0])
	}
}

func TestResolve_TransformErrorCollected(t *testing.T) {
	s := Map{
		"port": Transform("PORT", func(raw string) (any, error) {
			return strconv.Atoi(raw)
		}),
		"name": Key("DB_NAME"),
	}

	res := Resolve(s, stubEnv{"PORT": "not-a-number", "DB_NAME": "orders"})

	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(res.Errors))
	}
	if !errors.Is(res.Errors[0], ErrInvalidValue) {
		t.Errorf("error = %v, want ErrInvalidValue", res.Errors[0])
	}

	// The invalid leaf yields nil while its sibling still resolves
	if v, present := res.Config["port"]; !present || v != nil {
		t.Errorf("Config[port] = %v (present=%v), want nil placeholder", v, present)
	}
	if res.Config["name"] != "orders" {
		t.Errorf("Config[name] = %v, want orders", res.Config["name"])
	}
}

func TestResolve_InsertNeverConsultsEnvironment(t *testing.T) {
	env := &countingEnv{}
	s := Map{
		"flags": Map{
			"beta": Insert(true),
		},
		"retries": Insert(3),
	}

	res := Resolve(s, env)

	if env.calls != 0 {
		t.Errorf("environment consulted %d times, want 0", env.calls)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	flags := res.Config["flags"].(map[string]any)
	if flags["beta"] != true {
		t.Errorf("Config[flags][beta] = %v, want true", flags["beta"])
	}
	if res.Config["retries"] != 3 {
		t.Errorf("Config[retries] = %v, want 3", res.Config["retries"])
	}
}

func TestResolve_Secret(t *testing.T) {
	s := Map{
		"db": Map{
			"name":     Key("DB_NAME"),
			"password": Secret(Key("DB_PASSWORD")),
		},
	}

	res := Resolve(s, stubEnv{"DB_NAME": "orders", "DB_PASSWORD": "hunter2"})

	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}

	db := res.Config["db"].(map[string]any)
	if db["password"] != "hunter2" {
		t.Errorf("Config[db][password] = %v, want hunter2", db["password"])
	}

	if len(res.SecretPaths) != 1 || res.SecretPaths[0] != "db.password" {
		t.Errorf("SecretPaths = %v, want [db.password]", res.SecretPaths)
	}
}

func TestResolve_SecretObjectRecordsSinglePath(t *testing.T) {
	s := Map{
		"db": Secret(Map{
			"host":     Key("DB_HOST"),
			"password": Key("DB_PASSWORD"),
		}),
	}

	res := Resolve(s, stubEnv{"DB_HOST": "localhost", "DB_PASSWORD": "hunter2"})

	if len(res.SecretPaths) != 1 || res.SecretPaths[0] != "db" {
		t.Errorf("SecretPaths = %v, want [db]", res.SecretPaths)
	}

	// The wrapped object still resolves normally
	db := res.Config["db"].(map[string]any)
	if db["host"] != "localhost" || db["password"] != "hunter2" {
		t.Errorf("Config[db] = %v, want both children resolved", db)
	}
}

func TestResolve_SecretDoubleWrapRecordsOnePath(t *testing.T) {
	s := Map{
		"token": Secret(Secret(Key("API_TOKEN"))),
	}

	res := Resolve(s, stubEnv{"API_TOKEN": "tok"})

	if len(res.SecretPaths) != 1 || res.SecretPaths[0] != "token" {
		t.Errorf("SecretPaths = %v, want [token]", res.SecretPaths)
	}
	if res.Config["token"] != "tok" {
		t.Errorf("Config[token] = %v, want tok", res.Config["token"])
	}
}

func TestResolve_SecretInsert(t *testing.T) {
	s := Map{
		"license": Secret(Insert("embedded-key")),
	}

	res := Resolve(s, stubEnv{})

	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	if res.Config["license"] != "embedded-key" {
		t.Errorf("Config[license] = %v, want embedded-key", res.Config["license"])
	}
	if len(res.SecretPaths) != 1 || res.SecretPaths[0] != "license" {
		t.Errorf("SecretPaths = %v, want [license]", res.SecretPaths)
	}
}

func TestResolve_SecretMissingStillRecordsPath(t *testing.T) {
	s := Map{
		"token": Secret(Key("API_TOKEN")),
	}

	res := Resolve(s, stubEnv{})

	if len(res.SecretPaths) != 1 || res.SecretPaths[0] != "token" {
		t.Errorf("SecretPaths = %v, want [token]", res.SecretPaths)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(res.Errors))
	}
	if v, present := res.Config["token"]; !present || v != nil {
		t.Errorf("Config[token] = %v (present=%v), want nil placeholder", v, present)
	}
}

func TestResolve_ErrorOrdering(t *testing.T) {
	s := Map{
		"server": Map{
			"port": Key("PORT"),
			"host": Key("HOST"),
		},
		"base": Map{
			"url": Key("BASE_URL"),
		},
		"apiKey": Key("API_KEY"),
	}

	res := Resolve(s, stubEnv{})

	// Keys resolve in sorted order at every level
	want := []string{
		"environment value API_KEY is missing from config object at apiKey",
		"environment value BASE_URL is missing from config object at base.url",
		"environment value HOST is missing from config object at server.host",
		"environment value PORT is missing from config object at server.port",
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("len(Errors) = %d, want %d", len(res.Errors), len(want))
	}
	for i, w := range want {
		if got := res.Errors[i].Error(); got != w {
			t.Errorf("Errors[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestResolve_SecretPathOrdering(t *testing.T) {
	s := Map{
		"db": Map{
			"password": Secret(Key("DB_PASSWORD")),
		},
		"api": Map{
			"key": Secret(Key("API_KEY")),
		},
		"token": Secret(Key("TOKEN")),
	}

	res := Resolve(s, stubEnv{"DB_PASSWORD": "a", "API_KEY": "b", "TOKEN": "c"})

	want := []string{"api.key", "db.password", "token"}
	if len(res.SecretPaths) != len(want) {
		t.Fatalf("SecretPaths = %v, want %v", res.SecretPaths, want)
	}
	for i, w := range want {
		if res.SecretPaths[i] != w {
			t.Errorf("SecretPaths[%d] = %q, want %q", i, res.SecretPaths[i], w)
		}
	}
}

func TestResolve_ShapePreserved(t *testing.T) {
	s := Map{
		"a": Key("A"),
		"b": Map{
			"c": Key("C"),
			"d": Map{
				"e": Transform("E", func(raw string) (any, error) { return raw, nil }),
			},
		},
	}

	res := Resolve(s, stubEnv{})

	if len(res.Errors) != 3 {
		t.Fatalf("len(Errors) = %d, want 3", len(res.Errors))
	}

	// Every schema key is present at every level despite total failure
	if _, ok := res.Config["a"]; !ok {
		t.Error("Config[a] missing")
	}
	b, ok := res.Config["b"].(map[string]any)
	if !ok {
		t.Fatalf("Config[b] = %T, want nested map", res.Config["b"])
	}
	if _, ok := b["c"]; !ok {
		t.Error("Config[b][c] missing")
	}
	d, ok := b["d"].(map[string]any)
	if !ok {
		t.Fatalf("Config[b][d] = %T, want nested map", b["d"])
	}
	if _, ok := d["e"]; !ok {
		t.Error("Config[b][d][e] missing")
	}
}

func TestResolve_EmptySchema(t *testing.T) {
	res := Resolve(Map{}, stubEnv{})

	if len(res.Config) != 0 {
		t.Errorf("Config = %v, want empty", res.Config)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Errors = %v, want none", res.Errors)
	}
	if len(res.SecretPaths) != 0 {
		t.Errorf("SecretPaths = %v, want none", res.SecretPaths)
	}
}

func TestResolve_NilEnvironmentReadsProcess(t *testing.T) {
	t.Setenv("ENVOPS_RESOLVE_TEST", "from-process")

	res := Resolve(Map{"value": Key("ENVOPS_RESOLVE_TEST")}, nil)

	if len(res.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", res.Errors)
	}
	if res.Config["value"] != "from-process" {
		t.Errorf("Config[value] = %v, want from-process", res.Config["value"])
	}
}

func TestResolve_MixedTree(t *testing.T) {
	s := Map{
		"service": Insert("orders-api"),
		"db": Map{
			"host":     Key("DB_HOST"),
			"port":     Transform("DB_PORT", func(raw string) (any, error) { return strconv.Atoi(raw) }),
			"password": Secret(Key("DB_PASSWORD")),
		},
		"base": Map{
			"url": Key("BASE_URL"),
		},
	}

	res := Resolve(s, stubEnv{
		"DB_HOST":     "localhost",
		"DB_PORT":     "5432",
		"DB_PASSWORD": "hunter2",
	})

	if len(res.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1 (BASE_URL)", len(res.Errors))
	}
	if res.Errors[0].Key != "BASE_URL" || res.Errors[0].Path != "base.url" {
		t.Errorf("Errors[0] = {%s %s}, want {BASE_URL base.url}", res.Errors[0].Key, res.Errors[0].Path)
	}

	db := res.Config["db"].(map[string]any)
	if db["host"] != "localhost" || db["port"] != 5432 || db["password"] != "hunter2" {
		t.Errorf("Config[db] = %v, want all three resolved", db)
	}
	if res.Config["service"] != "orders-api" {
		t.Errorf("Config[service] = %v, want orders-api", res.Config["service"])
	}
	if len(res.SecretPaths) != 1 || res.SecretPaths[0] != "db.password" {
		t.Errorf("SecretPaths = %v, want [db.password]", res.SecretPaths)
	}
}
