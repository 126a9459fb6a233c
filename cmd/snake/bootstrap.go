package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flagEphemeral {
		cfg.Storage.Backend = storage.BackendMemory
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openLogFile creates a logger writing to the configured log file. The
// terminal belongs to Bubble Tea while a game runs.
func openLogFile(cfg config.Config) (*log.Logger, io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Log.File == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	path, err := storage.ExpandPath(cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "snake",
	})
	return logger, f, nil
}

// openStore opens the configured backend. If it fails the game still works
// on an in-memory store.
func openStore(cfg config.Config, logger *log.Logger) registry.Store {
	store, err := registry.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err == nil {
		return store
	}

	logger.Warn("could not open scores store, using memory", "backend", cfg.Storage.Backend, "error", err)
	fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)

	// The memory backend cannot fail.
	store, _ = registry.Open(storage.BackendMemory, "")
	return store
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
