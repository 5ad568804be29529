package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/registry"
)

const stubGameID = "tui-stub"

// plainGame records resets and has no Resize, so the model falls back to
// restarting it.
type plainGame struct {
	resets int
}

func (g *plainGame) ID() string { return stubGameID }

func (g *plainGame) Title() string { return "Stub" }

func (g *plainGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *plainGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.State()}
}

func (g *plainGame) Render(*core.Screen) {}

func (g *plainGame) State() core.GameState { return core.GameState{} }

// stubGame also records Resize calls.
type stubGame struct {
	plainGame
	resizes [][2]int
}

func (g *stubGame) Resize(width, height int) {
	g.resizes = append(g.resizes, [2]int{width, height})
}

func init() {
	registry.Register(stubGameID, "Stub", func() registry.Game { return &stubGame{} })
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	t.Cleanup(m.Close)
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	m = next.(GameModel)

	if g.resets != 1 {
		t.Errorf("Reset called %d times, want 1 (Init only)", g.resets)
	}
	if len(g.resizes) != 1 || g.resizes[0] != [2]int{90, 30} {
		t.Errorf("Resize calls = %v, want [[90 30]]", g.resizes)
	}

	// Wide terminals give part of the width to the chronicle panel.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(GameModel)
	if got := g.resizes[len(g.resizes)-1]; got != [2]int{140 - chronicleWidth, 40} {
		t.Errorf("last Resize = %v, want [%d 40]", got, 140-chronicleWidth)
	}
}

func TestGameModelResizeFallsBackToReset(t *testing.T) {
	g := &plainGame{}
	m := NewGameModel(g, Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	t.Cleanup(m.Close)
	m.Init()

	m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	if g.resets != 2 {
		t.Errorf("Reset called %d times, want 2", g.resets)
	}
}

func TestSessionCloseStopsRunningGame(t *testing.T) {
	s := NewSessionModel(Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})

	next, _ := s.Update(keyMsg("enter"))
	s = next.(SessionModel)
	if !s.InGame() {
		t.Fatal("InGame() = false after selecting a board")
	}
	d := s.gameModel.dispatcher

	// A dropped connection closes the session from another goroutine.
	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()
	<-done

	d.Notify(core.Event{Kind: core.EventGameOver})
	if d.Dropped() != 1 {
		t.Errorf("Dropped() = %d after Close, want 1", d.Dropped())
	}

	s.Close()
}

func TestActiveGameLateHook(t *testing.T) {
	a := &activeGame{}
	calls := 0
	a.set(func() { calls++ })
	a.set(nil)
	a.Close()
	if calls != 0 {
		t.Errorf("cleared hook ran %d times, want 0", calls)
	}

	a.set(func() { calls++ })
	if calls != 1 {
		t.Errorf("hook set after Close ran %d times, want 1", calls)
	}
}
