package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/registry"
)

// difficultySetter is implemented by games with per-instance difficulty.
type difficultySetter interface {
	SetDifficulty(preset string) error
}

// activeGame holds the close hook of the running game. Every copy of a
// SessionModel shares one, so the hook can be fired from outside the
// program when the connection drops.
type activeGame struct {
	mu     sync.Mutex
	close  func()
	closed bool
}

// set replaces the hook. After Close, a new hook runs at once.
func (a *activeGame) set(fn func()) {
	a.mu.Lock()
	if a.closed && fn != nil {
		a.mu.Unlock()
		fn()
		return
	}
	a.close = fn
	a.mu.Unlock()
}

// Close runs the current hook once and closes the tracker.
func (a *activeGame) Close() {
	a.mu.Lock()
	fn := a.close
	a.close = nil
	a.closed = true
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SessionModel manages the full session flow inside one program:
// menu -> game or scoreboard -> menu. SSH sessions use it as their
// top-level model.
type SessionModel struct {
	svc        Services
	config     core.RuntimeConfig
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *GameModel
	active     *activeGame
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(svc Services, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		svc:    svc,
		config: cfg,
		menu:   NewMenuModel(svc.Store, cfg),
		active: &activeGame{},
	}
}

// Close stops event delivery for the running game, if any. It is safe to
// call from another goroutine and more than once.
func (m SessionModel) Close() {
	m.active.Close()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The menu ends its own program with tea.Quit; inside a session the
	// command is swallowed and the next screen takes over.
	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.svc.Store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Menu only lists registered variants
			m.menu = NewMenuModel(m.svc.Store, m.config)
			return m, nil
		}
		if ds, ok := game.(difficultySetter); ok {
			//nolint:errcheck // Menu only offers valid presets
			ds.SetDifficulty(string(m.menu.Difficulty()))
		}

		m.config = m.menu.Config()
		m.config.Seed = time.Now().UnixNano()

		gm := NewGameModel(game, m.svc, m.config)
		m.gameModel = &gm
		m.active.set(gm.Close)
		return m, gm.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates while the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSB, cmd := m.scoreboard.Update(msg)
	if sb, ok := newSB.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.menu = NewMenuModel(m.svc.Store, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.active.set(nil)
		m.menu = NewMenuModel(m.svc.Store, m.config)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}
