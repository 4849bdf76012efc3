package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "liftit"
  user: "liftit"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
drafts:
  dir: "/var/lib/liftit"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields
// populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "liftit" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "liftit")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Drafts.Dir != "/var/lib/liftit" {
		t.Errorf("drafts.dir = %q, want %q", cfg.Drafts.Dir, "/var/lib/liftit")
	}
}

// TestEnvOverride verifies that LIFTIT_ env vars take precedence over YAML
// values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTIT_DB_HOST", "db.internal")
	t.Setenv("LIFTIT_SERVER_PORT", "9090")
	t.Setenv("LIFTIT_AUTH_API_KEY", "override-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database.host = %q, want %q", cfg.Database.Host, "db.internal")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "override-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "override-key")
	}
}

// TestDraftsDirDefault verifies the draft dir falls back to "state".
func TestDraftsDirDefault(t *testing.T) {
	yaml := `
server:
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "liftit"
  user: "liftit"
auth:
  api_key: "k"
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Drafts.Dir != "state" {
		t.Errorf("drafts.dir = %q, want %q", cfg.Drafts.Dir, "state")
	}
}

// TestValidation verifies required fields are enforced.
func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing port", `
database: {host: h, port: 5432, name: n, user: u}
auth: {api_key: k}
`},
		{"missing db host", `
server: {port: 8080}
database: {port: 5432, name: n, user: u}
auth: {api_key: k}
`},
		{"missing api key", `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
`},
		{"tailscale without hostname", `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
auth: {api_key: k}
tailscale: {enabled: true}
`},
	}
	for _, tc := range cases {
		if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

// TestDSN verifies the connection string format and sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "localhost", Port: 5432, Name: "liftit", User: "u", Password: "p"}
	want := "postgres://u:p@localhost:5432/liftit?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}

	d.SSLMode = "require"
	want = "postgres://u:p@localhost:5432/liftit?sslmode=require"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
