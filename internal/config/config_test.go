// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./stride-test.db"

github:
  client_id: "Iv1.abc"
  client_secret: "shhh"
  redirect_uri: "stride://github/callback"
  scopes:
    - "read:user"
    - "repo"

credentials:
  backend: "memory"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "./stride-test.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.GitHub.ClientID != "Iv1.abc" {
		t.Errorf("GitHub.ClientID = %q", cfg.GitHub.ClientID)
	}
	if len(cfg.GitHub.Scopes) != 2 || cfg.GitHub.Scopes[1] != "repo" {
		t.Errorf("GitHub.Scopes = %v", cfg.GitHub.Scopes)
	}
	if cfg.Credentials.Backend != "memory" {
		t.Errorf("Credentials.Backend = %q", cfg.Credentials.Backend)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("STRIDE_TEST_SECRET", "from-env")

	path := writeConfig(t, `
database:
  path: "./test.db"
github:
  client_secret: "${STRIDE_TEST_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.ClientSecret != "from-env" {
		t.Errorf("ClientSecret = %q, want from-env", cfg.GitHub.ClientSecret)
	}
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./test.db"
github:
  client_secret: "${STRIDE_DEFINITELY_UNSET_VAR}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.ClientSecret != "" {
		t.Errorf("ClientSecret = %q, want empty", cfg.GitHub.ClientSecret)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./test.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Credentials.Backend != "keyring" {
		t.Errorf("Credentials.Backend = %q, want keyring", cfg.Credentials.Backend)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestDefault_DatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := Default()
	want := filepath.Join("/tmp/xdg-data", "stride", "stride.db")
	if cfg.Database.Path != want {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, want)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./test.db"
credentials:
  backend: "vault"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "credentials.backend") {
		t.Errorf("expected backend validation error, got %v", err)
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./test.db"
logging:
  format: "xml"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("expected format validation error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "database: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
