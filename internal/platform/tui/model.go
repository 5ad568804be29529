package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/registry"
	"github.com/vovakirdan/hexpop/internal/storage"
	"github.com/vovakirdan/hexpop/internal/story"
)

// chronicleLimit is how many narrative lines a session keeps.
const chronicleLimit = 50

// Services holds the collaborators a game session reports to. Every field
// is optional.
type Services struct {
	Store     *storage.Store
	Logger    *log.Logger
	SessionID string
}

// clearReporter is implemented by games that can end with an empty board.
type clearReporter interface {
	Cleared() bool
}

// resizer is implemented by games that can relayout without a restart.
type resizer interface {
	Resize(width, height int)
}

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	height     int
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	dispatcher    *story.Dispatcher
	chronicle     *story.Chronicle
	showChronicle bool

	quitting    bool
	backToMenu  bool
	resultSaved bool // Whether the result has been saved for current game over
}

// NewGameModel creates a model for game. cfg.ScreenW and cfg.ScreenH are
// the terminal size; the chronicle panel takes part of the width when the
// terminal is wide enough.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	chronicle := story.NewChronicle(chronicleLimit)
	handlers := []story.Handler{chronicle}
	if svc.Logger != nil {
		handlers = append(handlers, story.LogHandler{Logger: svc.Logger})
	}
	if svc.Store != nil {
		handlers = append(handlers, story.JournalHandler{Store: svc.Store, SessionID: svc.SessionID})
	}
	dispatcher := story.NewDispatcher(story.Options{Logger: svc.Logger}, handlers...)
	cfg.Observer = dispatcher

	m := GameModel{
		game:       game,
		svc:        svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		dispatcher: dispatcher,
		chronicle:  chronicle,
	}
	m.applySize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// applySize splits the terminal between the board and the chronicle panel.
func (m *GameModel) applySize(width, height int) {
	m.height = height
	m.showChronicle = width >= minWidthChronicle
	if m.showChronicle {
		width -= chronicleWidth
	}
	m.config.ScreenW = width
	m.config.ScreenH = height

	if m.screen == nil {
		m.screen = core.NewScreen(width, height)
	} else {
		m.screen.Resize(width, height)
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame, 0)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	// Back to menu (B or Esc when game over or paused)
	action := m.keyMapper.MapKeyToMenuAction(msg)
	if action == MenuActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		m.Close()
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.applySize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}

	// Games without Resize fix their layout at Reset, so a running one restarts.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.chronicle.Reset()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.chronicle.Reset()
		m.resultSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save result on game over (once)
	if m.gameState.GameOver && !m.resultSaved {
		m.saveResult()
		m.resultSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished game. Failures are logged, never fatal.
func (m GameModel) saveResult() {
	if m.svc.Store == nil {
		return
	}

	cleared := false
	if cr, ok := m.game.(clearReporter); ok {
		cleared = cr.Cleared()
	}
	if m.gameState.Score <= 0 && !cleared {
		return
	}

	_, err := m.svc.Store.SaveResult(storage.GameResult{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Cleared:  cleared,
		Duration: m.gameState.Elapsed,
	})
	if err != nil && m.svc.Logger != nil {
		m.svc.Logger.Warn("could not save result", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".hexpop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	board := RenderScreen(m.screen)
	if !m.showChronicle {
		return board
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, board, RenderChronicle(m.chronicle.Lines(), m.height))
}

// Close stops event delivery for this game. It is safe to call twice.
func (m GameModel) Close() {
	//nolint:errcheck // Dispatcher.Close never fails
	m.dispatcher.Close()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Pointer aiming
	)

	_, err := p.Run()
	return err
}
