package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var resetScoresCmd = &cobra.Command{
	Use:   "reset-scores [difficulty]",
	Short: "Clear stored scores",
	Long: `Clear the best score and history for one difficulty, or for all
of them when none is given.

Examples:
  snake reset-scores
  snake reset-scores hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResetScores,
}

func runResetScores(cmd *cobra.Command, args []string) error {
	var d snake.Difficulty // Empty clears every difficulty
	if len(args) == 1 {
		var err error
		if d, err = snake.ParseDifficulty(args[0]); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := registry.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if err := store.Clear(d); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}

	if d == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared scores for all difficulties.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared scores for %s.\n", d)
	}
	return nil
}
