package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shogi/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.Server.Addr != ":2888" || cfg.RPC.Addr != ":2889" {
		t.Fatalf("addr defaults: %+v %+v", cfg.Server, cfg.RPC)
	}
	if cfg.Engine.ThinkDelay != 500*time.Millisecond || cfg.Store.TTL != 24*time.Hour {
		t.Fatalf("duration defaults: %v %v", cfg.Engine.ThinkDelay, cfg.Store.TTL)
	}
	if cfg.Level() != engine.Medium || cfg.Store.Driver != "memory" || cfg.Archive.Database != "shogi" {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func TestSetupReadsFileAndEnv(t *testing.T) {
	p := writeConfig(t, `
server:
  addr: ":9000"
  open_browser: false
engine:
  level: hard
  think_delay: 1s
  strict: true
  seed: 42
`)
	t.Setenv("SHOGI_SERVER_ADDR", ":9100")

	cfg, err := Setup(p)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Fatalf("env should override file, got %q", cfg.Server.Addr)
	}
	if cfg.Server.OpenBrowser || !cfg.Engine.Strict || cfg.Engine.Seed != 42 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Level() != engine.Hard || cfg.Engine.ThinkDelay != time.Second {
		t.Fatalf("engine: %+v", cfg.Engine)
	}
	if cfg.Path != p {
		t.Fatalf("path = %q", cfg.Path)
	}
}

func TestSetupRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"level":       "engine:\n  level: impossible\n",
		"driver":      "store:\n  driver: sqlite\n",
		"redis url":   "store:\n  driver: redis\n",
		"negative ms": "engine:\n  think_delay: -1s\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Setup(writeConfig(t, body)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestSetupMissingExplicitFile(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing explicit config should fail")
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "web")
	if err := os.Mkdir(f, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := ResolvePath(f); got != f {
		t.Fatalf("absolute path changed: %q", got)
	}
	if got := ResolvePath("definitely-not-here"); got != "definitely-not-here" {
		t.Fatalf("missing path should be returned unchanged, got %q", got)
	}
}
