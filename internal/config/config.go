// Package config provides YAML-based configuration loading for snake,
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Config contains all snake settings.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// StorageConfig selects the score store backend.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"SNAKE_STORAGE"`
	Path    string `yaml:"path" env:"SNAKE_DB"`
}

// LogConfig controls the log file and verbosity.
type LogConfig struct {
	Level string `yaml:"level" env:"SNAKE_LOG_LEVEL"`
	File  string `yaml:"file" env:"SNAKE_LOG_FILE"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"SNAKE_SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"SNAKE_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SNAKE_IDLE_TIMEOUT"`
}

// ThemeConfig defines glyphs and colors for the board.
type ThemeConfig struct {
	Head        string `yaml:"head"`
	Body        string `yaml:"body"`
	Food        string `yaml:"food"`
	HeadColor   string `yaml:"head_color"`
	BodyColor   string `yaml:"body_color"`
	FoodColor   string `yaml:"food_color"`
	BorderColor string `yaml:"border_color"`
}

// Theme is a ThemeConfig resolved to runes and screen colors.
type Theme struct {
	Head, Body, Food                        rune
	HeadColor, BodyColor, FoodColor, Border core.Color
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !registry.Exists(c.Storage.Backend) {
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.SSH.IdleTimeout < 0 {
		return errors.New("config: ssh.idle_timeout must not be negative")
	}
	if _, err := c.Theme.Resolve(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: invalid log level %q", c.Log.Level)
	}
	return level, nil
}

// Resolve converts glyph strings and color names.
// Each glyph must be exactly one character.
func (t ThemeConfig) Resolve() (Theme, error) {
	var th Theme
	var err error

	if th.Head, err = glyph("head", t.Head); err != nil {
		return th, err
	}
	if th.Body, err = glyph("body", t.Body); err != nil {
		return th, err
	}
	if th.Food, err = glyph("food", t.Food); err != nil {
		return th, err
	}

	colors := []struct {
		field string
		name  string
		dst   *core.Color
	}{
		{"head_color", t.HeadColor, &th.HeadColor},
		{"body_color", t.BodyColor, &th.BodyColor},
		{"food_color", t.FoodColor, &th.FoodColor},
		{"border_color", t.BorderColor, &th.Border},
	}
	for _, c := range colors {
		if c.name == "" {
			*c.dst = core.ColorDefault
			continue
		}
		color, ok := core.ParseColor(c.name)
		if !ok {
			return th, fmt.Errorf("config: theme.%s: unknown color %q", c.field, c.name)
		}
		*c.dst = color
	}

	return th, nil
}

func glyph(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("config: theme.%s must be a single character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
