package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagLevelsFrom int
	flagLevelsTo   int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the difficulty table",
	Long: `Print grid size, turns, time per turn, required gain and goal ceiling
for a range of levels. Honors --variant, --difficulty and --config.

Examples:
  mindgrid levels
  mindgrid levels --from 20 --to 60
  mindgrid levels --variant arena --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVar(&flagLevelsFrom, "from", 1, "First level")
	levelsCmd.Flags().IntVar(&flagLevelsTo, "to", 30, "Last level")
}

func runLevels(_ *cobra.Command, _ []string) {
	checkVariant(flagVariant)
	if flagLevelsFrom <= 0 || flagLevelsTo < flagLevelsFrom {
		fmt.Fprintln(os.Stderr, "Error: need 0 < --from <= --to")
		os.Exit(1)
	}

	engine, err := engineFor(flagVariant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-5s  %-5s  %-5s  %-6s  %-6s  %-7s  %-6s  %s\n",
		"Level", "Grid", "Turns", "Time", "Goal", "Ceiling", "Rarity", "Credit")
	fmt.Printf("  %-5s  %-5s  %-5s  %-6s  %-6s  %-7s  %-6s  %s\n",
		"-----", "----", "-----", "----", "----", "-------", "------", "------")

	for level := flagLevelsFrom; level <= flagLevelsTo; level++ {
		p, err := engine.Profile(level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		credit := ""
		if engine.AwardsCredit(level) {
			credit = "+1"
		}
		fmt.Printf("  %-5d  %-5s  %-5d  %-6s  %-6d  %-7d  %-6s  %s\n",
			level,
			fmt.Sprintf("%dx%d", p.GridSize, p.GridSize),
			p.Turns,
			fmt.Sprintf("%.1fs", p.TurnBudget.Seconds()),
			engine.RequiredGain(level),
			engine.TheoreticalMaxGain(level),
			fmt.Sprintf("%.0f%%", engine.Config().Rarity.Chance.At(level)*100),
			credit,
		)
	}
}
