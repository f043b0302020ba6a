package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all available variants",
	Long:  `Shows every registered tuning of the game.`,
	Args:  cobra.NoArgs,
	Run:   runVariants,
}

func runVariants(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Summary")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, v := range variants {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, v.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'mindgrid play --variant <id>' to play a variant.")
}
