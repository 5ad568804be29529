package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every board variant with its grid size and tile types.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return nil
	}

	cfg, err := config.LoadHexpop(flagConfig)
	if err != nil {
		return err
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Grid", "Types", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "-----")

	for _, g := range games {
		grid, types := "?", "?"
		if rules, err := cfg.RuleSet(g.ID); err == nil {
			grid = fmt.Sprintf("%dx%d", rules.Columns, rules.Rows)
			types = fmt.Sprint(rules.TypeCount)
		}
		fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, g.ID, grid, types, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'hexpop play <id>' to play a board.")
	return nil
}
