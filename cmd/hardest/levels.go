package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hardest-game/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List built-in levels",
	Long:  `Shows the levels built into the game. The server's world may differ.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := registry.List()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Built-in levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, l := range levels {
		marker := ""
		if l.ID == registry.DefaultLevel {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, l.ID, l.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'hardest play --level <id>' to play a level.")
}
