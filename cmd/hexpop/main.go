// hexpop is a hex-grid bubble shooter for the terminal.
//
// Usage:
//
//	hexpop list              - List board variants
//	hexpop play [variant]    - Play a variant (default classic)
//	hexpop menu              - Pick variants interactively
//	hexpop serve             - Start SSH server for remote play
//	hexpop scores <variant>  - Show high scores and stats for a variant
//	hexpop sim [variant]     - Run headless games with the shot planner
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.hexpop/scores.db)
//	--config <path>        - Custom rule-set YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
//	--log-file <path>      - Where gameplay logs go (default: discarded)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/games/hexpop"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
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
	Use:   "hexpop",
	Short: "HexPop - pop bubbles on a hex grid in your terminal",
	Long: `HexPop is a bubble shooter played on a hexagonal grid. Aim the
launcher, match three or more of a kind to pop them, and drop everything
left hanging. Every few misses the ceiling comes down.

Available commands:
  list     - Show all board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  scores   - View high scores and stats
  sim      - Run headless games

Examples:
  hexpop list
  hexpop play classic
  hexpop play mini --difficulty easy
  hexpop menu
  hexpop serve --ssh :2222
  hexpop scores classic
  hexpop sim mini --games 100`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		hexpop.SetConfigPath(flagConfig)
		hexpop.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.hexpop/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom rule-set YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write gameplay logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
