package hexpop

import (
	"math/rand"
	"time"

	hcore "github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// SimResult summarizes one headless game.
type SimResult struct {
	Seed     int64
	Score    int
	Cleared  bool
	Finished bool // False when the tick limit stopped the game
	Shots    int
	Ticks    int
	Elapsed  time.Duration
}

// SimOptions configures Simulate. Zero values pick defaults.
type SimOptions struct {
	TickRate int     // Ticks per simulated second (default 60)
	MaxTicks int     // Hard stop (default ten simulated minutes)
	AimStep  float64 // Planner resolution in degrees (default 2)
}

// Simulate plays one game with the shot planner: every time the launcher
// is ready it fires the planned shot. sink may be nil.
func Simulate(rules hcore.Config, seed int64, opts SimOptions, sink hcore.EventSink) (SimResult, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = opts.TickRate * 600
	}
	dt := 1.0 / float64(opts.TickRate)

	m, err := hcore.NewMachine(rules, rand.New(rand.NewSource(seed)), sink)
	if err != nil {
		return SimResult{Seed: seed}, err
	}

	res := SimResult{Seed: seed}
	for ; res.Ticks < opts.MaxTicks; res.Ticks++ {
		if m.State() == hcore.StateReady {
			if plan, ok := m.PlanShot(opts.AimStep, dt); ok {
				m.SetAim(plan.Aim)
			}
			if m.Fire() {
				res.Shots++
			}
		}
		m.Advance(dt)
		if m.State() == hcore.StateOver {
			res.Finished = true
			res.Ticks++
			break
		}
	}

	res.Score = m.Score()
	res.Cleared = m.Cleared()
	res.Elapsed = m.Elapsed()
	return res, nil
}
