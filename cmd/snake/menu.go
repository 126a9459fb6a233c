package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start snake with a difficulty menu",
	Long: `Start snake in interactive menu mode.

Use arrow keys or j/k to choose a difficulty, Enter to play.
After a round, press Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  snake menu
  snake menu --seed 42
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	return runApp(cmd, "")
}

// runApp runs the interactive app. A valid start difficulty skips the menu.
func runApp(cmd *cobra.Command, start snake.Difficulty) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}

	logger, logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store := openStore(cfg, logger)
	defer store.Close()

	width, height := terminalSize()
	logger.Debug("starting", "backend", cfg.Storage.Backend, "start", start, "size", fmt.Sprintf("%dx%d", width, height))

	return tui.Run(tui.AppOptions{
		Store:  store,
		Theme:  theme,
		Logger: logger,
		Seed:   flagSeed,
		Start:  start,
		Width:  width,
		Height: height,
	})
}
