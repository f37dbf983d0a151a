// Package config handles loading and saving ph configuration.
//
// Configuration follows the XDG Base Directory layout:
//   - Config:  ~/.config/paperhub/config.yaml
//   - State:   ~/.local/state/paperhub/ (prefs.yaml, ph.log)
//
// PAPERHUB_API_BASE and PAPERHUB_PER_PAGE override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const appName = "paperhub"

// Environment overrides.
const (
	EnvAPIBase = "PAPERHUB_API_BASE"
	EnvPerPage = "PAPERHUB_PER_PAGE"
)

// APIConfig locates the catalog API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url,omitempty"`
	PerPage int           `yaml:"per_page,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	DefaultSort    string `yaml:"default_sort,omitempty"`    // date, title
	DepthSpacing   int    `yaml:"depth_spacing,omitempty"`   // mindmap columns per level
	SiblingSpacing int    `yaml:"sibling_spacing,omitempty"` // mindmap rows per leaf
	LogFile        string `yaml:"log_file,omitempty"`
}

// ExportConfig controls `ph mindmap` output.
type ExportConfig struct {
	Directory string `yaml:"directory,omitempty"`
	Title     bool   `yaml:"title,omitempty"` // draw the paper title above the tree
}

// Config is the top-level configuration for ph.
type Config struct {
	API    APIConfig    `yaml:"api,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			PerPage: 10,
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			DefaultSort:    "date",
			DepthSpacing:   24,
			SiblingSpacing: 2,
		},
		Export: ExportConfig{
			Directory: ".",
			Title:     true,
		},
	}
}

// ConfigDir returns the XDG config directory for ph.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory for ph.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LogPath returns the TUI log file, honouring ui.log_file.
func (c Config) LogPath() string {
	if c.UI.LogFile != "" {
		return expandHome(c.UI.LogFile)
	}
	dir := StateDir()
	if dir == "" {
		return "ph.log"
	}
	return filepath.Join(dir, "ph.log")
}

// Load reads the config file from the XDG config directory and applies
// environment overrides. Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		return cfg, cfg.ApplyEnv()
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.ApplyEnv()
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.fillDefaults()
	cfg.Export.Directory = expandHome(cfg.Export.Directory)
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() error {
	if base := strings.TrimSpace(os.Getenv(EnvAPIBase)); base != "" {
		c.API.BaseURL = base
	}
	if raw := strings.TrimSpace(os.Getenv(EnvPerPage)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", EnvPerPage, raw)
		}
		c.API.PerPage = n
	}
	return nil
}

// fillDefaults replaces zero or invalid values left by a partial file.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.PerPage <= 0 {
		c.API.PerPage = def.API.PerPage
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = def.API.Timeout
	}
	switch c.UI.DefaultSort {
	case "date", "title":
	default:
		c.UI.DefaultSort = def.UI.DefaultSort
	}
	if c.UI.DepthSpacing <= 0 {
		c.UI.DepthSpacing = def.UI.DepthSpacing
	}
	if c.UI.SiblingSpacing <= 0 {
		c.UI.SiblingSpacing = def.UI.SiblingSpacing
	}
	if c.Export.Directory == "" {
		c.Export.Directory = def.Export.Directory
	}
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
