package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/snake.yaml.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    "~/.snake/scores.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.snake/snake.log",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			HostKey:     "~/.snake/ssh_host_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: ThemeConfig{
			Head:        "@",
			Body:        "o",
			Food:        "*",
			HeadColor:   "bright_green",
			BodyColor:   "green",
			FoodColor:   "red",
			BorderColor: "gray",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
