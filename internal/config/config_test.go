package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Log:    LogConfig{Level: "info", Format: "console", Focus: []string{}},
		Render: RenderConfig{Renderer: "vanilla", Locale: "en", Output: "json"},
		API:    APIConfig{Timeout: 15 * time.Second},
		Schema: SchemaConfig{HTTPTimeout: 10 * time.Second},
	}
	if diff := cmp.Diff(want, *cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formkit.yaml")
	body := []byte(`
render:
  renderer: tui
  locale: ar
api:
  base_url: https://api.example.test
  timeout: 5s
theme:
  name: clinic
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FORMKIT_LOG_LEVEL", "debug")
	t.Setenv("FORMKIT_THEME_VARIANT", "dark")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.Renderer != "tui" || cfg.Render.Locale != "ar" {
		t.Fatalf("unexpected render config: %+v", cfg.Render)
	}
	if cfg.API.BaseURL != "https://api.example.test" || cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env override for log level, got %q", cfg.Log.Level)
	}
	if cfg.Theme.Name != "clinic" || cfg.Theme.Variant != "dark" {
		t.Fatalf("unexpected theme config: %+v", cfg.Theme)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}

	t.Setenv("FORMKIT_RENDER_RENDERER", "preact")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected unsupported renderer error")
	}
}
