package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("expected default base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.PerPage != 10 {
		t.Errorf("expected per page 10, got %d", cfg.API.PerPage)
	}
	if cfg.UI.DefaultSort != "date" {
		t.Errorf("expected default sort 'date', got %q", cfg.UI.DefaultSort)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.API.PerPage != 10 {
		t.Errorf("expected default config, got per page %d", cfg.API.PerPage)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
api:
  base_url: http://catalog.internal:8080/api
  per_page: 25
  timeout: 5s
ui:
  default_sort: title
export:
  directory: ~/mindmaps
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://catalog.internal:8080/api" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.PerPage != 25 {
		t.Errorf("per page = %d", cfg.API.PerPage)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.UI.DefaultSort != "title" {
		t.Errorf("default sort = %q", cfg.UI.DefaultSort)
	}
	// Unset fields keep their defaults
	if cfg.UI.DepthSpacing != 24 {
		t.Errorf("depth spacing = %d, want default 24", cfg.UI.DepthSpacing)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "mindmaps"); cfg.Export.Directory != want {
		t.Errorf("export dir = %q, want %q", cfg.Export.Directory, want)
	}
}

func TestLoadFrom_InvalidValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api:\n  per_page: -4\nui:\n  default_sort: random\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.PerPage != 10 || cfg.UI.DefaultSort != "date" {
		t.Errorf("invalid values not replaced: %+v", cfg)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIBase, "http://env.example/api")
	t.Setenv(EnvPerPage, "7")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example/api" || cfg.API.PerPage != 7 {
		t.Errorf("env not applied: %+v", cfg.API)
	}

	t.Setenv(EnvPerPage, "lots")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric per page")
	}
}

func TestLoad_UsesXDGAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvPerPage, "3")
	if err := os.MkdirAll(filepath.Join(dir, "paperhub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "paperhub", "config.yaml"), []byte("api:\n  per_page: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.PerPage != 3 {
		t.Errorf("env should win over file, got %d", cfg.API.PerPage)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://saved/api"
	cfg.UI.DefaultSort = "title"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.API.BaseURL != "http://saved/api" || loaded.UI.DefaultSort != "title" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if loaded.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", loaded.API.Timeout)
	}
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

	if got := ConfigDir(); got != "/tmp/xdg-config/paperhub" {
		t.Errorf("ConfigDir = %q", got)
	}
	if got := StateDir(); got != "/tmp/xdg-state/paperhub" {
		t.Errorf("StateDir = %q", got)
	}
	if got := ConfigPath(); got != "/tmp/xdg-config/paperhub/config.yaml" {
		t.Errorf("ConfigPath = %q", got)
	}
	if got := DefaultConfig().LogPath(); got != "/tmp/xdg-state/paperhub/ph.log" {
		t.Errorf("LogPath = %q", got)
	}
}
