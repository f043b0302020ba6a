// mindgrid is a timed, turn-based tile scoring game for the terminal.
//
// Usage:
//
//	mindgrid play               - Play a run directly
//	mindgrid menu               - Start the interactive menu
//	mindgrid serve              - Start SSH server for remote play
//	mindgrid api                - Start the HTTP leaderboard API
//	mindgrid scores [variant]   - Show the leaderboard
//	mindgrid levels             - Print the difficulty table
//	mindgrid simulate           - Play headlessly with a greedy bot
//	mindgrid variants           - List available variants
//
// Global flags:
//
//	--variant <id>       - Game variant (default: mindgrind)
//	--difficulty <name>  - Preset: easy, normal, hard
//	--config <path>      - Custom tuning YAML
//	--seed <value>       - Set RNG seed for reproducible grids
//	--db <path>          - Set database path (default: ~/.mindgrid/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagVariant    string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mindgrid",
	Short: "Mindgrid - a timed tile scoring game for your terminal",
	Long: `Mindgrid is a turn-based tile game against the clock. Each level gives
you a fixed number of turns to pick tiles from a grid and reach the level's
point goal. Chains grow, bonuses multiply, risks may bite.

Available commands:
  play      - Play a run directly
  menu      - Interactive menu with continue, level select and scores
  serve     - Start SSH server for remote play
  api       - Start the HTTP leaderboard API
  scores    - View the leaderboard
  levels    - Print the difficulty table
  simulate  - Play headlessly with a greedy bot
  variants  - List available variants

Examples:
  mindgrid play
  mindgrid play --variant arena --difficulty easy
  mindgrid menu --name alice
  mindgrid serve --ssh :2222
  mindgrid api --http :8080
  mindgrid levels --to 40`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Redraw rate of the turn timer (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.mindgrid/scores.db", "Path to scores database")
	pf.StringVar(&flagVariant, "variant", "mindgrind", "Game variant (see 'mindgrid variants')")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML for the variant")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagName, "name", "", "Player name for saved runs and the leaderboard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs of terminal sessions to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(variantsCmd)
}
