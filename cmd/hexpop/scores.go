package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/registry"
	"github.com/vovakirdan/hexpop/internal/storage"
	"github.com/vovakirdan/hexpop/internal/story"
)

var (
	flagScoresLimit int
	flagEvents      int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores and stats for a board",
	Long: `Display the top high scores for the specified board, followed by
lifetime stats and popped clusters per tile type.

Examples:
  hexpop scores classic
  hexpop scores mini --limit 20
  hexpop scores classic --events 10`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().IntVar(&flagEvents, "events", 0, "Also show this many recent journal events")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'hexpop list' to see boards)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hexpop play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-8s  %-13s  %s\n", "Rank", "Score", "Result", "Time", "When")
	fmt.Printf("  %-4s  %-9s  %-8s  %-13s  %s\n", "----", "-----", "------", "----", "----")

	for i, entry := range scores {
		result := "ceiling"
		if entry.Cleared {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-9s  %-8s  %-13s  %s\n",
			i+1, humanize.Comma(int64(entry.Score)), result,
			story.FormatPlayTime(entry.Duration), humanize.Time(entry.CreatedAt))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games:   %s (%d cleared)\n", humanize.Comma(int64(stats.GamesCount)), stats.Clears)
		fmt.Printf("Best:    %s  Avg: %s\n", humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.AvgScore)))
		fmt.Printf("Played:  %s\n", story.FormatPlayTime(stats.TotalTime))
		if stats.FastestWin > 0 {
			fmt.Printf("Fastest: %s\n", story.FormatPlayTime(stats.FastestWin))
		}
	}

	if pops, err := store.PopStats(gameID, string(core.EventClusterPopped)); err == nil && len(pops) > 0 {
		fmt.Println()
		fmt.Println("Pops by type:")
		for _, p := range pops {
			fmt.Printf("  %-8s  %s clusters, %s bubbles\n",
				story.TypeName(p.TileType), humanize.Comma(int64(p.Pops)), humanize.Comma(int64(p.Tiles)))
		}
	}

	if flagEvents > 0 {
		events, err := store.RecentEvents(gameID, flagEvents)
		if err != nil {
			return fmt.Errorf("retrieving events: %w", err)
		}
		fmt.Println()
		fmt.Println("Recent events:")
		for _, ev := range events {
			fmt.Printf("  %-14s  %-15s  %s\n", humanize.Time(ev.CreatedAt), ev.Kind, describeEvent(ev))
		}
	}

	return nil
}

func describeEvent(ev storage.EventRecord) string {
	if ev.Kind == string(core.EventClusterPopped) {
		return fmt.Sprintf("%d %s for %s pts", ev.Count, story.TypeName(int(ev.TileType.Int64)), humanize.Comma(int64(ev.Score)))
	}
	return fmt.Sprintf("final score %s", humanize.Comma(int64(ev.Score)))
}
