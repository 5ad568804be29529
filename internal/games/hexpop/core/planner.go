package core

import (
	opt "github.com/repeale/fp-go/option"
)

// maxTraceSteps bounds a simulated flight; a shot that has not landed by
// then is ignored.
const maxTraceSteps = 4000

// Plan is the predicted outcome of one shot.
type Plan struct {
	Aim     float64
	Landing Cell
	Matches int // Size of the same-kind cluster the landed tile would join
}

// PlanShot traces shots across the aim arc every step degrees, advancing
// each flight dt seconds at a time, and returns the most promising one. A
// shot that pops beats one that does not, bigger clusters beat smaller,
// and landing nearer the top breaks ties. Shots that would touch the
// bottom row come last. The game is left as it was. PlanShot reports
// false outside StateReady.
func (m *Machine) PlanShot(step, dt float64) (Plan, bool) {
	if m.state != StateReady {
		return Plan{}, false
	}
	if step <= 0 {
		step = 2
	}
	if dt <= 0 {
		dt = 1.0 / 60
	}

	var best Plan
	found := false
	for a := m.cfg.MinAim; a <= m.cfg.MaxAim; a += step {
		cell, ok := m.trace(a, dt)
		if !ok {
			continue
		}
		p := Plan{Aim: a, Landing: cell, Matches: m.matchesAt(cell, m.launcher.loaded)}
		if !found || m.better(p, best) {
			best = p
			found = true
		}
	}
	return best, found
}

// trace flies a copy of the launcher and returns where its tile would snap.
func (m *Machine) trace(aim, dt float64) (Cell, bool) {
	l := *m.launcher
	l.flight = opt.None[Projectile]()
	l.SetAim(aim)
	l.Fire()

	for range maxTraceSteps {
		if l.Advance(dt, m.grid) {
			p, _ := l.Land()
			// A full column still reports its bottom cell, which ranks last.
			cell, _ := m.grid.Snap(p.X, p.Y)
			return cell, true
		}
	}
	return Cell{}, false
}

// matchesAt returns the cluster size a tile of kind t would form at c.
func (m *Machine) matchesAt(c Cell, t TileType) int {
	if !m.grid.At(c).IsEmpty() {
		return 0
	}
	m.grid.SetKind(c, t)
	n := len(m.grid.FindCluster(c, ClusterOptions{MatchType: true, ResetVisited: true}))
	m.grid.ClearCell(c)
	m.grid.ResetVisited()
	return n
}

func (m *Machine) better(p, q Plan) bool {
	last := m.cfg.Rows - 1
	if pd, qd := p.Landing.Row >= last, q.Landing.Row >= last; pd != qd {
		return qd
	}
	threshold := m.cfg.PopThreshold
	if pp, qp := p.Matches >= threshold, q.Matches >= threshold; pp != qp {
		return pp
	}
	if p.Matches != q.Matches {
		return p.Matches > q.Matches
	}
	return p.Landing.Row < q.Landing.Row
}
