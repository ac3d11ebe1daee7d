package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"KB_CONFIG_PATH", "LOG_MODE", "LOG_LEVEL", "KB_HTTP_ADDR", "KB_ENGINE_TYPE",
		"KB_ENGINE_BASE_URL", "KB_ENGINE_MODEL", "KB_ENGINE_TIMEOUT", "KB_ENGINE_MAX_RETRIES",
		"KB_ENGINE_RETRY_BACKOFF", "GEMINI_API_KEY", "KB_API_KEY", "KB_GENERATION_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaultsWithoutCredential(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HasCredential() {
		t.Fatalf("unexpected credential")
	}
	if cfg.Engine.Type != "none" {
		t.Fatalf("engine.type=%q", cfg.Engine.Type)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("addr=%q", cfg.HTTP.Addr)
	}
}

func TestLoadPlaceholderKeyIsAbsent(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", PlaceholderAPIKey)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HasCredential() || cfg.Engine.Type != "none" {
		t.Fatalf("placeholder key treated as real: type=%q", cfg.Engine.Type)
	}
}

func TestLoadCredentialSelectsUpstream(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("KB_API_KEY", "kb-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Type != "oai_http" {
		t.Fatalf("engine.type=%q", cfg.Engine.Type)
	}
	if cfg.Engine.APIKey != "kb-key" {
		t.Fatalf("api key precedence wrong: %q", cfg.Engine.APIKey)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "kingbayo.yaml")
	body := "env: production\n" +
		"http:\n  addr: \":9090\"\n" +
		"engine:\n  type: mock\n" +
		"generation:\n  timeout: 12s\n  temperature: 0.2\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("KB_CONFIG_PATH", p)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "production" || cfg.HTTP.Addr != ":9090" || cfg.Engine.Type != "mock" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Generation.Timeout.Duration != 12*time.Second || cfg.Generation.Temperature != 0.2 {
		t.Fatalf("generation=%+v", cfg.Generation)
	}
	if cfg.HTTP.IdleTimeout.Duration != 2*time.Minute {
		t.Fatalf("defaults lost on overlay: %s", cfg.HTTP.IdleTimeout.Duration)
	}
}

func TestLoadJSONFileAndEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "kingbayo.json")
	body := `{"engine":{"type":"oai_http","base_url":"http://upstream/","model":"m1","timeout":"3s"}}`
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("KB_CONFIG_PATH", p)
	t.Setenv("KB_ENGINE_MODEL", "m2")
	t.Setenv("KB_ENGINE_RETRY_BACKOFF", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.BaseURL != "http://upstream" || cfg.Engine.Model != "m2" || cfg.Engine.Timeout.Duration != 3*time.Second {
		t.Fatalf("engine=%+v", cfg.Engine)
	}
	if cfg.Engine.RetryBackoff.Duration != 250*time.Millisecond {
		t.Fatalf("retry_backoff=%s", cfg.Engine.RetryBackoff.Duration)
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	clearEnv(t)
	t.Setenv("KB_ENGINE_TYPE", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}
