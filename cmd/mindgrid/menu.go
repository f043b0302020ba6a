package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/platform/tui"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Mindgrid in interactive menu mode.

The menu offers a new run, continuing your saved run, a level picker
and the scoreboard. After a run ends you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Switch variant
  Enter/Space     - Select
  Tab             - Scoreboard
  Q               - Quit

Examples:
  mindgrid menu
  mindgrid menu --name alice
  mindgrid menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	checkVariant(flagVariant)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	logger, closeLog := tuiLogger()
	runErr := tui.RunSession(store, runtimeConfig(), logger)
	closeLog()

	// Cleanup
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
