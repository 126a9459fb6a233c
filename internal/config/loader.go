package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const fileName = "snake.yaml"

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> ~/.snake/config.yaml -> ./configs/snake.yaml -> embedded default.
// Files only need to set the keys they change; everything else keeps its
// default.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing environment: %w", err)
	}

	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if ok := tryFile(userCfgPath, &cfg); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if ok := tryFile(filepath.Join("configs", fileName), &cfg); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	fallback := DefaultConfig()
	if err := yaml.Unmarshal(defaultSnakeYAML, &fallback); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return fallback, nil
}

// tryFile decodes path over cfg. A missing or unparsable file leaves cfg
// unchanged and reports false.
func tryFile(path string, cfg *Config) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	next := *cfg
	if err := yaml.Unmarshal(data, &next); err != nil {
		return false
	}
	*cfg = next
	return true
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Dir returns ~/.snake, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake")
}
