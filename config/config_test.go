package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Environ{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %q", cfg.Host)
	}
	if cfg.Port != "5004" {
		t.Errorf("expected default port 5004, got %q", cfg.Port)
	}
	if cfg.CertRoot != "/certs" {
		t.Errorf("expected default cert root /certs, got %q", cfg.CertRoot)
	}
	if cfg.AppRoot != "/app" {
		t.Errorf("expected default app root /app, got %q", cfg.AppRoot)
	}
	if cfg.ServerBin != "uvicorn" {
		t.Errorf("expected default server bin uvicorn, got %q", cfg.ServerBin)
	}
	if cfg.EntryFile != "main.py" {
		t.Errorf("expected default entry file main.py, got %q", cfg.EntryFile)
	}
	if cfg.SearchDepth != "2" {
		t.Errorf("expected default search depth 2, got %q", cfg.SearchDepth)
	}
	if !cfg.Logging.Timestamp {
		t.Error("expected timestamps on by default")
	}
}

func TestLoadFromSnapshot(t *testing.T) {
	env := Environ{
		"APP_MODULE":         "billing.main:app",
		"SERVICE_NAME":       "billing",
		"HOST":               "127.0.0.1",
		"PORT":               "8443",
		"RELOAD":             "1",
		"UVICORN_EXTRA_ARGS": "--workers 2",
		"SSL_CERTFILE":       "/mnt/tls/cert.pem",
		"SSL_KEYFILE":        "/mnt/tls/key.pem",
		"LOG_LEVEL":          "debug",
	}
	cfg, err := Load(env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AppModule != "billing.main:app" {
		t.Errorf("unexpected app module %q", cfg.AppModule)
	}
	if cfg.ServiceName != "billing" {
		t.Errorf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.Host != "127.0.0.1" || cfg.Port != "8443" {
		t.Errorf("unexpected host/port %q/%q", cfg.Host, cfg.Port)
	}
	if cfg.Reload != "1" {
		t.Errorf("unexpected reload %q", cfg.Reload)
	}
	if cfg.ExtraArgs != "--workers 2" {
		t.Errorf("unexpected extra args %q", cfg.ExtraArgs)
	}
	if cfg.CertFile != "/mnt/tls/cert.pem" || cfg.KeyFile != "/mnt/tls/key.pem" {
		t.Errorf("unexpected TLS overrides %q/%q", cfg.CertFile, cfg.KeyFile)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected log level %q", cfg.Logging.Level)
	}
	if cfg.Logging.ServiceName != "billing" {
		t.Errorf("expected logging service name propagated, got %q", cfg.Logging.ServiceName)
	}
}

func TestLoadIgnoresUnrelatedVariables(t *testing.T) {
	a, err := Load(Environ{"PATH": "/usr/bin", "TERM": "xterm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Load(Environ{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *a != *b {
		t.Errorf("unrelated variables changed the config: %+v vs %+v", a, b)
	}
}

func TestSnapshotContainsProcessEnv(t *testing.T) {
	t.Setenv("ENTRYPOINT_TEST_MARKER", "yes")
	env := Snapshot()
	if env.Get("ENTRYPOINT_TEST_MARKER") != "yes" {
		t.Error("expected snapshot to contain process environment")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DOTENV_ONLY=file\nDOTENV_SHADOWED=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DOTENV_SHADOWED", "real")
	if err := LoadDotenv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DOTENV_ONLY") })

	env := Snapshot()
	if env.Get("DOTENV_ONLY") != "file" {
		t.Errorf("expected dotenv value loaded, got %q", env.Get("DOTENV_ONLY"))
	}
	if env.Get("DOTENV_SHADOWED") != "real" {
		t.Errorf("expected real environment to win, got %q", env.Get("DOTENV_SHADOWED"))
	}
}

func TestLoadDotenvMissingFile(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing dotenv file should not be an error: %v", err)
	}
}
