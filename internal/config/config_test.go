package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:5000/api" {
		t.Errorf("base url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.WSURL != "ws://localhost:5000/ws" {
		t.Errorf("ws url = %q", cfg.Server.WSURL)
	}
	if cfg.Server.Timeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.Server.Timeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadParsesSectionsAndQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `# client config
server:
  base_url: "https://api.zippgo.example/api"
  timeout: 5s

credentials:
  path: '/tmp/zippgo-test/creds.json'

log:
  level: debug

tracking:
  enabled: true
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "https://api.zippgo.example/api" {
		t.Errorf("base url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.WSURL != "wss://api.zippgo.example/ws" {
		t.Errorf("ws url = %q (https must derive wss)", cfg.Server.WSURL)
	}
	if cfg.Server.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Server.Timeout)
	}
	if cfg.Credentials.Path != "/tmp/zippgo-test/creds.json" {
		t.Errorf("credentials path = %q", cfg.Credentials.Path)
	}
	if cfg.Log.Level != "debug" || !cfg.Tracking.Enabled {
		t.Errorf("log=%q tracking=%v", cfg.Log.Level, cfg.Tracking.Enabled)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  host: nope\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, ""); err == nil {
		t.Fatal("expected error for unknown key in server section")
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("ZIPPGO_SERVER", "http://staging.zippgo.example/api/")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://staging.zippgo.example/api" {
		t.Errorf("base url = %q, want env override without trailing slash", cfg.Server.BaseURL)
	}
}

func TestFlagOverrideBeatsEnv(t *testing.T) {
	t.Setenv("ZIPPGO_SERVER", "http://staging.zippgo.example/api")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "http://localhost:9999/api")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:9999/api" {
		t.Errorf("base url = %q, want flag override", cfg.Server.BaseURL)
	}
	if cfg.Server.WSURL != "ws://localhost:9999/ws" {
		t.Errorf("ws url = %q, want derivation from the override", cfg.Server.WSURL)
	}
}
