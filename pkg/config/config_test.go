package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `
environment: test
server:
  port: 8080
fetcher:
  backend: api
ebay:
  base_url: https://api.ebay.com/buy
pricing:
  markup_percent: 15
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" || cfg.Server.Port != 8080 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Fetcher.Backend != "api" {
		t.Fatalf("backend = %q", cfg.Fetcher.Backend)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	body := `
environment: test
fetcher:
  backend: telepathy
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected backend validation error")
	}
}

func TestValidateRequiresEbayURLForAPI(t *testing.T) {
	body := `
environment: test
fetcher:
  backend: api
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatalf("expected ebay.base_url requirement")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("EBAY_API_KEY", "secret-from-env")
	t.Setenv("FETCHER_BACKEND", "scrape")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Ebay.APIKey != "secret-from-env" {
		t.Fatalf("api key override missing")
	}
	if cfg.Fetcher.Backend != "scrape" {
		t.Fatalf("backend override missing, got %q", cfg.Fetcher.Backend)
	}
}
