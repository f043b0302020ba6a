package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/platform/tui"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

var (
	flagStartLevel int
	flagContinue   bool
	flagPickLevel  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run of the selected variant.

Controls:
  Arrows/hjkl/wasd  - Move the cursor
  Space/Enter       - Pick the tile under the cursor
  N                 - Next level (after a clear)
  R                 - Spend a retry credit (after a failure)
  Esc/B             - Leave the run
  Q/Ctrl+C          - Quit
  ?                 - Toggle help

Difficulty options:
  easy   - More time per turn, goals scaled down
  normal - Default tuning
  hard   - Less time per turn, goals scaled up (still capped per level)

Examples:
  mindgrid play
  mindgrid play --continue --name alice
  mindgrid play --level 12
  mindgrid play --pick
  mindgrid play --variant arena --difficulty hard
  mindgrid play --config ./my-mindgrind.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 1, "Level to start at (practice, score starts at zero)")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the saved run of --name")
	playCmd.Flags().BoolVar(&flagPickLevel, "pick", false, "Choose the start level from the difficulty table")
}

func runPlay(_ *cobra.Command, _ []string) {
	checkVariant(flagVariant)
	cfg := runtimeConfig()

	if flagStartLevel <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --level must be positive")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	start := tui.StartPoint{Level: flagStartLevel}
	if flagContinue && store != nil {
		saved, loadErr := store.LoadRun(cfg.PlayerKey(), cfg.Variant)
		switch {
		case loadErr != nil:
			fmt.Fprintf(os.Stderr, "Warning: could not load saved run: %v\n", loadErr)
		case saved == nil:
			fmt.Fprintln(os.Stderr, "No saved run, starting at level 1.")
		default:
			start = tui.StartPoint{Level: saved.Level, Score: saved.Score}
		}
	}

	if flagPickLevel && !flagContinue {
		picked, pickErr := tui.RunLevelSelector(cfg)
		if pickErr != nil {
			fmt.Fprintf(os.Stderr, "Error running level selector: %v\n", pickErr)
			os.Exit(1)
		}
		if picked == nil {
			if store != nil {
				store.Close()
			}
			return
		}
		start = *picked
	}

	logger, closeLog := tuiLogger()
	runErr := tui.RunPlay(store, cfg, start, logger)
	closeLog()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
