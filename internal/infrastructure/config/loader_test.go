package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/olsh/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Daemon.BaseURL != domain.DefaultBaseURL {
		t.Fatalf("base url = %s, want %s", cfg.Daemon.BaseURL, domain.DefaultBaseURL)
	}
	if cfg.REPL.ChatSigil != domain.DefaultChatSigil {
		t.Fatalf("chat sigil = %q, want %q", cfg.REPL.ChatSigil, domain.DefaultChatSigil)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
}

func TestLoadHydratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("daemon:\n  model: mistral\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Daemon.Model != "mistral" {
		t.Fatalf("model = %s, want mistral", cfg.Daemon.Model)
	}
	if cfg.Daemon.BaseURL != domain.DefaultBaseURL {
		t.Fatalf("base url = %s, want hydrated default", cfg.Daemon.BaseURL)
	}
	if cfg.REPL.ChatSigil != domain.DefaultChatSigil {
		t.Fatalf("chat sigil = %q, want hydrated default", cfg.REPL.ChatSigil)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("daemon:\n  base_url: http://localhost:9999\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OLSH_CONFIG", path)

	cfg, err := NewFileLoader("").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Daemon.BaseURL != "http://localhost:9999" {
		t.Fatalf("base url = %s, want override", cfg.Daemon.BaseURL)
	}
}
