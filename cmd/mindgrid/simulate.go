package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/sim"
)

var (
	flagSimLevels int
	flagSimStart  int
	flagSimThink  time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play headlessly with a greedy bot",
	Long: `Drive a run without a terminal. The bot always picks the tile that
scores the most points right now and spends --think on every pick, so a
think time above the turn budget misses turns.

Useful for checking a tuning file before playing it.

Examples:
  mindgrid simulate
  mindgrid simulate --levels 50 --seed 42
  mindgrid simulate --think 3s --difficulty hard
  mindgrid simulate --config ./my-mindgrind.yaml --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimLevels, "levels", 20, "Rounds to play, retries included")
	simulateCmd.Flags().IntVar(&flagSimStart, "start", 1, "Level to start at")
	simulateCmd.Flags().DurationVar(&flagSimThink, "think", 1500*time.Millisecond, "Time the bot spends on each pick")
}

func runSimulate(_ *cobra.Command, _ []string) {
	checkVariant(flagVariant)

	engine, err := engineFor(flagVariant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rep, err := sim.Run(engine, sim.Options{
		Levels:     flagSimLevels,
		StartLevel: flagSimStart,
		Think:      flagSimThink,
		Seed:       seed,
		Logger:     newLogger("mindgrid-sim"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Simulation - %s, seed %d, think %s\n\n", flagVariant, seed, flagSimThink)
	fmt.Printf("  %-5s  %-3s  %-8s  %-11s  %-5s  %-6s  %-8s  %s\n",
		"Level", "Try", "Outcome", "Gain/Goal", "Speed", "Missed", "Score", "Credits")

	for _, rd := range rep.Rounds {
		r := rd.Result
		fmt.Printf("  %-5d  %-3d  %-8s  %-11s  %-5d  %-6d  %-8d  %d\n",
			r.Level,
			rd.Attempt,
			r.Outcome,
			fmt.Sprintf("%d/%d", r.LevelGain, r.RequiredGain),
			r.SpeedBonus,
			r.MissedTurns,
			r.Score,
			rd.Credits,
		)
	}

	fmt.Println()
	fmt.Printf("Cleared %d of %d rounds, retries used %d, best level %d, final score %d\n",
		rep.Cleared(), len(rep.Rounds), rep.RetriesUsed, rep.BestLevel, rep.FinalScore)
}
