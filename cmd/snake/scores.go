package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const scoresLimit = 10

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show best scores",
	Long: `Display the best score, play statistics and the top 10 results
for a difficulty, or for all of them when none is given.

Examples:
  snake scores
  snake scores hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

// difficultiesFromArgs returns the single difficulty named in args, or all
// of them.
func difficultiesFromArgs(args []string) ([]snake.Difficulty, error) {
	if len(args) == 0 {
		return snake.Difficulties(), nil
	}
	d, err := snake.ParseDifficulty(args[0])
	if err != nil {
		return nil, err
	}
	return []snake.Difficulty{d}, nil
}

func runScores(cmd *cobra.Command, args []string) error {
	tiers, err := difficultiesFromArgs(args)
	if err != nil {
		return err
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

	out := cmd.OutOrStdout()
	for i, d := range tiers {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printScores(out, store, d); err != nil {
			return err
		}
	}
	return nil
}

func printScores(out io.Writer, store registry.Store, d snake.Difficulty) error {
	best, err := store.Best(d)
	if err != nil {
		return fmt.Errorf("reading best score: %w", err)
	}
	stats, err := store.Stats(d)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}
	results, err := store.TopResults(d, scoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n", d.Title())
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d\n", best)

	if len(results) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintf(out, "Play 'snake play %s' to set the first high score!\n", d)
		return nil
	}

	fmt.Fprintf(out, "Games: %d   Average: %.1f   Last played: %s\n",
		stats.Games, stats.AvgScore, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(out)

	// Print header
	fmt.Fprintf(out, "  %-4s  %-6s  %-10s  %s\n", "Rank", "Score", "Ended", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-10s  %s\n", "----", "-----", "-----", "----")

	for i, r := range results {
		fmt.Fprintf(out, "  %-4d  %-6d  %-10s  %s\n", i+1, r.Score, r.Cause, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
