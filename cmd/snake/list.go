package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulties and storage backends",
	Long:  `Shows the difficulty tiers with their tick intervals, and the registered score storage backends.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Difficulties:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %s\n", "Name", "Tick")
	fmt.Fprintf(out, "  %-8s  %s\n", "----", "----")
	for _, d := range snake.Difficulties() {
		fmt.Fprintf(out, "  %-8s  %v\n", d, d.Interval())
	}

	backends := registry.List()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		maxNameLen = max(maxNameLen, len(b.Name))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Storage backends:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, b := range backends {
		fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, b.Name, b.Description)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'snake play <difficulty>' to play.")
}
