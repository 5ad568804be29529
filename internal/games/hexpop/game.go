// Package hexpop adapts the HexPop simulation core to the platform's Game
// interface: it loads rule sets, maps actions and pointer input onto the
// launcher, applies difficulty progression and draws the board.
package hexpop

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/core"
	hcore "github.com/vovakirdan/hexpop/internal/games/hexpop/core"
	"github.com/vovakirdan/hexpop/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game is one HexPop rule-set variant.
type Game struct {
	variant string
	title   string
	preset  config.DifficultyPreset

	runtime    core.RuntimeConfig
	cfg        config.HexpopConfig
	rules      hcore.Config
	machine    *hcore.Machine
	difficulty *config.DifficultyManager

	ticks  int
	paused bool
	layout boardLayout

	screenTooSmall bool
	err            error // Rule-set problem shown instead of the board
}

// New creates a game for the named variant.
func New(variant, title string) *Game {
	return &Game{variant: variant, title: title, preset: difficultyPreset}
}

// SetDifficulty overrides the preset for this game only. It takes effect
// on the next Reset.
func (g *Game) SetDifficulty(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the rule set and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.ticks = 0
	g.paused = false
	g.err = nil

	cfg, err := config.LoadHexpop(configPath)
	if err != nil {
		cfg = config.DefaultHexpopConfig()
	}
	if g.preset != "" {
		config.ApplyHexpopPreset(&cfg, g.preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	rules, err := cfg.RuleSet(g.variant)
	if err != nil {
		g.err = err
		g.machine = nil
		return
	}
	g.rules = rules

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sink := observerSink{gameID: g.variant, observer: runtime.Observer}
	m, err := hcore.NewMachine(rules, rand.New(rand.NewSource(seed)), sink)
	if err != nil {
		g.err = err
		g.machine = nil
		return
	}
	g.machine = m
	g.machine.Advance(0)

	g.layout = newBoardLayout(rules, runtime.ScreenW, runtime.ScreenH)
	g.screenTooSmall = !g.layout.fits
}

// Resize fits the board to a new screen size. The running game is kept.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.machine == nil {
		return
	}
	g.layout = newBoardLayout(g.rules, width, height)
	g.screenTooSmall = !g.layout.fits
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	over := g.machine.State() == hcore.StateOver
	if over && in.Has(core.ActionRestart) {
		g.machine.Restart()
		g.ticks = 0
		g.paused = false
	}

	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(in)
	g.applyDifficulty()

	g.machine.Advance(g.runtime.TickDuration().Seconds())
	g.ticks++

	return core.StepResult{State: g.State()}
}

func (g *Game) applyInput(in core.InputFrame) {
	step := g.cfg.Launcher.AimStep
	if step <= 0 {
		step = 4
	}
	if in.Has(core.ActionLeft) {
		g.machine.Nudge(step)
	}
	if in.Has(core.ActionRight) {
		g.machine.Nudge(-step)
	}
	if in.Has(core.ActionUp) {
		g.machine.SetAim(90)
	}

	if p, ok := pointer(in); ok {
		x, y := g.layout.screenToPixel(p.X, p.Y)
		g.machine.AimAt(x, y)
	}

	if in.Has(core.ActionFire) || in.Has(core.ActionConfirm) {
		g.machine.Fire()
	}
}

func (g *Game) applyDifficulty() {
	score := g.machine.Score()
	g.machine.SetEscalationRounds(g.difficulty.EscalationRounds(g.rules.EscalationRounds, score, g.ticks))
	g.machine.SetProjectileSpeed(g.difficulty.Speed(g.rules.ProjectileSpeed, score, g.ticks))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.machine.Score(),
		GameOver: g.machine.State() == hcore.StateOver,
		Paused:   g.paused,
		Elapsed:  g.machine.Elapsed(),
	}
}

// Snapshot exposes the simulation state for headless drivers.
func (g *Game) Snapshot() (hcore.Snapshot, bool) {
	if g.machine == nil {
		return hcore.Snapshot{}, false
	}
	return g.machine.Snapshot(), true
}

// Cleared reports whether the finished game emptied the board.
func (g *Game) Cleared() bool {
	return g.machine != nil && g.machine.Cleared()
}

// Err returns the rule-set error from the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

func init() {
	cfg := config.DefaultHexpopConfig()
	for _, name := range cfg.VariantNames() {
		title := cfg.Variants[name].Title
		if title == "" {
			title = "HexPop " + name
		}
		registry.Register(name, title, func() registry.Game {
			return New(name, title)
		})
	}
}
