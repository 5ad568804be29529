package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/platform/tui"
	"github.com/vovakirdan/hexpop/internal/registry"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board variant",
	Long: `Start playing the specified board (classic when omitted).

Controls:
  Left/Right, A/D  - Rotate the launcher
  Up, W            - Aim straight up
  Mouse            - Aim at the pointer, click to fire
  Space/Enter      - Fire
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow shots, ceiling drops every 7 misses
  normal - Default rules, progression starts at 30%
  hard   - Fast shots, ceiling drops every 3 misses
  fixed  - No progression

Examples:
  hexpop play
  hexpop play mini --difficulty easy
  hexpop play wide --config ./my-hexpop.yaml
  hexpop play classic --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "classic"
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'hexpop list' to see boards)", err)
	}

	logger, closeLog, err := newLogger("hexpop", nil)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	svc := tui.Services{
		Store:     store,
		Logger:    logger,
		SessionID: localSessionID(),
	}
	if err := tui.Run(game, svc, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database; failures leave the game playable.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func localSessionID() string {
	return fmt.Sprintf("local-%d", time.Now().UnixNano())
}
