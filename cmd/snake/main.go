// snake is a terminal snake game with a difficulty menu, persistent best
// scores and an SSH server for remote play.
//
// Usage:
//
//	snake                         - Start the difficulty menu
//	snake play [difficulty]       - Play a difficulty directly
//	snake scores [difficulty]     - Show best scores and top results
//	snake list                    - List difficulties and storage backends
//	snake reset-scores [diff]     - Clear stored scores
//	snake serve                   - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.snake/config.yaml)
//	--db <path>         - Scores database path
//	--seed <value>      - RNG seed for reproducible food placement
//	--ephemeral         - Keep scores in memory only
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register storage backends
	_ "github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagSeed      int64
	flagEphemeral bool
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic game played on a 20x20 board in your terminal.
Eat food to grow; hitting a wall or yourself ends the round.

Available commands:
  menu          - Difficulty picker (default)
  play          - Play a difficulty directly
  scores        - View best scores and recent history
  list          - Show difficulties and storage backends
  reset-scores  - Clear stored scores
  serve         - Start SSH server for remote play

Examples:
  snake
  snake play hard
  snake scores normal
  snake serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Keep scores in memory only")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetScoresCmd)
}
