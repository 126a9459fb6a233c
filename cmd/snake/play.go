package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

var playCmd = &cobra.Command{
	Use:   "play [easy|normal|hard]",
	Short: "Play a difficulty directly",
	Long: `Start a round at the given difficulty, skipping the menu.
The difficulty defaults to easy.

Controls:
  Arrows/WASD/hjkl  - Steer
  Space/P           - Pause
  R/Enter           - Play again (after game over)
  Esc/B             - Pause, then back to menu
  Q/Ctrl+C          - Quit

Examples:
  snake play
  snake play hard
  snake play normal --seed 42`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(snake.Easy), string(snake.Normal), string(snake.Hard)},
	RunE:      runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	d := snake.Easy
	if len(args) == 1 {
		var err error
		if d, err = snake.ParseDifficulty(args[0]); err != nil {
			return err
		}
	}
	return runApp(cmd, d)
}
