package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
	_ "github.com/vovakirdan/tui-snake/internal/storage"
)

// isolate points HOME and the working directory at fresh temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	for _, key := range []string{"SNAKE_DB", "SNAKE_STORAGE", "SNAKE_LOG_LEVEL", "SNAKE_LOG_FILE", "SNAKE_SSH_ADDR", "SNAKE_HOST_KEY", "SNAKE_IDLE_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("Embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(fromYAML, DefaultConfig()) {
		t.Errorf("Embedded YAML and DefaultConfig() differ:\n%+v\n%+v", fromYAML, DefaultConfig())
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadWithoutFilesUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "custom.yaml")
	writeFile(t, path, "storage:\n  backend: memory\nssh:\n  idle_timeout: 5m\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Backend = %q, expected memory", cfg.Storage.Backend)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 5m", cfg.SSH.IdleTimeout)
	}
	// Untouched keys keep their defaults.
	if cfg.Storage.Path != DefaultConfig().Storage.Path || cfg.Theme.Head != "@" {
		t.Errorf("Defaults lost in partial override: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "storage: [not, a, map")
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("Expected parse error naming the file, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "snake.yaml"), "log:\n  level: warn\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Local config not used, level = %q", cfg.Log.Level)
	}

	writeFile(t, filepath.Join(home, ".snake", "config.yaml"), "log:\n  level: debug\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("User config should win over local, level = %q", cfg.Log.Level)
	}
}

func TestLoadSkipsUnparsableSearchFiles(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".snake", "config.yaml"), "log: [broken")
	writeFile(t, filepath.Join(work, "configs", "snake.yaml"), "log:\n  level: error\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Broken user config should fall through to local, level = %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SNAKE_DB", "/tmp/other.db")
	t.Setenv("SNAKE_STORAGE", "memory")
	t.Setenv("SNAKE_LOG_LEVEL", "debug")
	t.Setenv("SNAKE_SSH_ADDR", ":2222")
	t.Setenv("SNAKE_IDLE_TIMEOUT", "90s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.Path != "/tmp/other.db" {
		t.Errorf("Path = %q", cfg.Storage.Path)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("Address = %q", cfg.SSH.Address)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.SSH.IdleTimeout)
	}
	// Unset variables leave values alone.
	if cfg.SSH.HostKey != DefaultConfig().SSH.HostKey {
		t.Errorf("HostKey = %q, expected default", cfg.SSH.HostKey)
	}
}

func TestLoadBadEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv("SNAKE_IDLE_TIMEOUT", "forever")

	if _, err := Load(""); err == nil {
		t.Error("Expected error for unparsable duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"memory backend", func(c *Config) { c.Storage.Backend = "memory" }, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage backend"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"negative timeout", func(c *Config) { c.SSH.IdleTimeout = -time.Second }, "idle_timeout"},
		{"empty glyph", func(c *Config) { c.Theme.Food = "" }, "theme.food"},
		{"long glyph", func(c *Config) { c.Theme.Head = "@@" }, "theme.head"},
		{"bad color", func(c *Config) { c.Theme.BodyColor = "plaid" }, "theme.body_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "warn"

	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel() failed: %v", err)
	}
	if level != log.WarnLevel {
		t.Errorf("LogLevel() = %v, expected warn", level)
	}
}

func TestThemeResolve(t *testing.T) {
	th, err := ThemeConfig{
		Head:      "█",
		Body:      "o",
		Food:      "●",
		HeadColor: "bright_green",
		FoodColor: "red",
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if th.Head != '█' || th.Body != 'o' || th.Food != '●' {
		t.Errorf("Glyphs not resolved: %+v", th)
	}
	if th.HeadColor != core.ColorBrightGreen || th.FoodColor != core.ColorRed {
		t.Errorf("Colors not resolved: %+v", th)
	}
	if th.BodyColor != core.ColorDefault || th.Border != core.ColorDefault {
		t.Errorf("Empty color names should mean default: %+v", th)
	}
}
