package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/games/hexpop"
	"github.com/vovakirdan/hexpop/internal/storage"
	"github.com/vovakirdan/hexpop/internal/story"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimMaxTicks int
	flagSimRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run headless games with the shot planner",
	Long: `Play games without a terminal UI. Every shot is chosen by the
planner, which traces the aim arc and prefers shots that pop.
Seeds run from --seed upward, so results are reproducible.

Examples:
  hexpop sim
  hexpop sim mini --games 200 --workers 8
  hexpop sim classic --seed 1 --games 10 --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 20, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 4, "Games played in parallel")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 0, "Stop a game after this many ticks (0 = ten simulated minutes)")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save results to the scores database as sim:<variant>")
}

func runSim(_ *cobra.Command, args []string) error {
	variant := "classic"
	if len(args) > 0 {
		variant = args[0]
	}

	logger, closeLog, err := newLogger("hexpop-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadHexpop(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyHexpopPreset(&cfg, preset)
	}
	rules, err := cfg.RuleSet(variant)
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagSimRecord {
		if store, err = storage.Open(flagDBPath); err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
	}

	opts := hexpop.SimOptions{TickRate: flagFPS, MaxTicks: flagSimMaxTicks}
	results := make([]hexpop.SimResult, flagSimGames)

	var mu sync.Mutex
	var firstErr error

	swg := sizedwaitgroup.New(max(flagSimWorkers, 1))
	for i := range flagSimGames {
		swg.Add()
		go func(i int) {
			defer swg.Done()
			seed := flagSeed + int64(i)
			res, err := hexpop.Simulate(rules, seed, opts, nil)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			results[i] = res
			logger.Debug("game finished", "seed", seed, "score", res.Score, "cleared", res.Cleared, "shots", res.Shots)
		}(i)
	}
	swg.Wait()

	if firstErr != nil {
		return firstErr
	}

	if store != nil {
		for _, r := range results {
			if !r.Finished {
				continue
			}
			_, err := store.SaveResult(storage.GameResult{
				GameID:   "sim:" + variant,
				Score:    r.Score,
				Cleared:  r.Cleared,
				Duration: r.Elapsed,
			})
			if err != nil {
				logger.Warn("could not record result", "seed", r.Seed, "error", err)
			}
		}
	}

	printSimSummary(variant, results)
	return nil
}

func printSimSummary(variant string, results []hexpop.SimResult) {
	fmt.Printf("Simulated %d games on %s\n\n", len(results), variant)
	fmt.Printf("  %-6s  %-9s  %-8s  %-5s  %s\n", "Seed", "Score", "Result", "Shots", "Time")
	fmt.Printf("  %-6s  %-9s  %-8s  %-5s  %s\n", "----", "-----", "------", "-----", "----")

	var clears, unfinished, total int
	best := 0
	for _, r := range results {
		result := "ceiling"
		switch {
		case !r.Finished:
			result = "timeout"
			unfinished++
		case r.Cleared:
			result = "cleared"
			clears++
		}
		total += r.Score
		best = max(best, r.Score)
		fmt.Printf("  %-6d  %-9s  %-8s  %-5d  %s\n",
			r.Seed, humanize.Comma(int64(r.Score)), result, r.Shots, story.FormatPlayTime(r.Elapsed))
	}

	if len(results) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Cleared %d/%d, timed out %d. Best %s, average %s.\n",
		clears, len(results), unfinished,
		humanize.Comma(int64(best)), humanize.Comma(int64(total/len(results))))
}
