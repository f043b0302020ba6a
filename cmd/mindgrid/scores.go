package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/platform/tui"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the top scores for a variant (default: --variant).

Examples:
  mindgrid scores
  mindgrid scores arena --limit 25
  mindgrid scores --stats
  mindgrid scores --tui
  mindgrid scores arena --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-variant statistics instead")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the variant")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the leaderboard interactively")
}

func runScores(_ *cobra.Command, args []string) {
	variant := flagVariant
	if len(args) == 1 {
		variant = args[0]
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresStats {
		printStats(store)
		return
	}

	checkVariant(variant)
	info, _ := registry.Get(variant)

	if flagScoresClear {
		if err := store.ClearScores(variant); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return
	}

	if flagScoresTUI {
		cfg := runtimeConfig()
		cfg.Variant = variant
		if _, err := tui.RunScoreboard(store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		}
		return
	}

	// Get top scores
	scores, err := store.TopScores(variant, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mindgrid play --variant %s' to set the first high score!\n", variant)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-24s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Level", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-24s  %-8d  %-5d  %s\n", i+1, entry.Name, entry.Score, entry.Level, dateStr)
	}

	// Show high score
	fmt.Println()
	highScore, err := store.HighScore(variant)
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.GetAllVariantsStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %-6s  %-8s  %-10s  %-8s  %s\n", "Variant", "Runs", "Best", "Best level", "Average", "Last played")
	for _, v := range registry.List() {
		s, ok := stats[v.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-6d  %-8d  %-10d  %-8.1f  %s\n",
			v.ID, s.RunsCount, s.HighScore, s.BestLevel, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
