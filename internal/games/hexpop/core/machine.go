package core

import (
	"math/rand"
	"time"
)

// Machine drives the game through Init -> Ready -> Shoot -> Remove -> Over.
// All mutation happens inside Advance or the input methods; a Machine must
// not be used from more than one goroutine at a time.
type Machine struct {
	cfg      Config
	rng      *rand.Rand
	grid     *Grid
	launcher *Launcher
	animator *RemovalAnimator
	sink     EventSink

	state   State
	round   int
	score   int
	elapsed float64
	cleared bool

	escalationRounds int
}

// NewMachine validates cfg and returns a machine in StateInit. The first
// Advance call starts a new game. A nil sink discards events.
func NewMachine(cfg Config, rng *rand.Rand, sink EventSink) (*Machine, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	grid, err := NewGrid(cfg, rng)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Machine{
		cfg:              cfg,
		rng:              rng,
		grid:             grid,
		launcher:         NewLauncher(cfg),
		animator:         NewRemovalAnimator(cfg),
		sink:             sink,
		state:            StateInit,
		escalationRounds: cfg.EscalationRounds,
	}, nil
}

// Config returns the rule set the machine was built with.
func (m *Machine) Config() Config { return m.cfg }

// Grid exposes the playfield.
func (m *Machine) Grid() *Grid { return m.grid }

// Launcher exposes the launcher.
func (m *Machine) Launcher() *Launcher { return m.launcher }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Score returns the current score.
func (m *Machine) Score() int { return m.score }

// Round returns the number of shots since the last pop or escalation.
func (m *Machine) Round() int { return m.round }

// Cleared reports whether the last game ended with an empty board.
func (m *Machine) Cleared() bool { return m.cleared }

// Elapsed returns the play time of the current game.
func (m *Machine) Elapsed() time.Duration {
	return time.Duration(m.elapsed * float64(time.Second))
}

// SetEscalationRounds changes how many non-popping shots are allowed before
// the ceiling drops. Zero disables escalation.
func (m *Machine) SetEscalationRounds(n int) {
	if n >= 0 {
		m.escalationRounds = n
	}
}

// SetProjectileSpeed changes the projectile speed in px/s.
func (m *Machine) SetProjectileSpeed(pxPerSec float64) {
	m.launcher.SetSpeed(pxPerSec)
}

// SetAim sets the launcher angle in degrees.
func (m *Machine) SetAim(deg float64) {
	if m.state == StateOver {
		return
	}
	m.launcher.SetAim(deg)
}

// AimAt aims the launcher at a pixel position.
func (m *Machine) AimAt(x, y float64) {
	if m.state == StateOver {
		return
	}
	m.launcher.AimAt(x, y)
}

// Nudge rotates the aim by delta degrees.
func (m *Machine) Nudge(delta float64) {
	if m.state == StateOver {
		return
	}
	m.launcher.Nudge(delta)
}

// Fire launches the loaded tile. It is ignored outside StateReady.
func (m *Machine) Fire() bool {
	if m.state != StateReady {
		return false
	}
	if !m.launcher.Fire() {
		return false
	}
	m.state = StateShoot
	return true
}

// Restart schedules a new game. It is ignored outside StateOver.
func (m *Machine) Restart() bool {
	if m.state != StateOver {
		return false
	}
	m.state = StateInit
	return true
}

// Advance runs one simulation step of dt seconds.
func (m *Machine) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if m.state != StateOver && m.state != StateInit {
		m.elapsed += dt
	}

	switch m.state {
	case StateInit:
		m.newGame()
	case StateReady:
		// Waiting for input.
	case StateShoot:
		m.shoot(dt)
	case StateRemove:
		m.remove(dt)
	case StateOver:
	}
}

func (m *Machine) newGame() {
	m.score = 0
	m.round = 0
	m.elapsed = 0
	m.cleared = false
	m.escalationRounds = m.cfg.EscalationRounds
	m.animator.Finish(m.grid)
	m.grid.Init()
	m.launcher.reset()
	m.launcher.Load(m.pickType(), m.pickType())
	m.state = StateReady
}

func (m *Machine) shoot(dt float64) {
	if !m.launcher.Advance(dt, m.grid) {
		return
	}
	p, _ := m.launcher.Land()

	cell, ok := m.grid.Snap(p.X, p.Y)
	if !ok {
		// The column is full to the floor, so the bottom row is already taken.
		m.gameOver(false)
		return
	}
	m.grid.SetKind(cell, p.Kind)

	if m.grid.BottomRowOccupied() {
		m.gameOver(false)
		return
	}

	cluster := m.grid.FindCluster(cell, ClusterOptions{MatchType: true, ResetVisited: true})
	if len(cluster) >= m.cfg.PopThreshold {
		m.grid.MarkForRemoval(cluster)
		m.animator.Start(cluster)
		m.score += len(cluster) * m.cfg.PointsPerPop
		m.round = 0
		m.state = StateRemove
		m.sink.OnClusterPopped(PopEvent{Kind: p.Kind, Count: len(cluster), Score: m.score})
		return
	}

	m.round++
	if m.escalationRounds > 0 && m.round >= m.escalationRounds {
		for range m.cfg.EscalationRows {
			m.grid.AddRowToTop()
		}
		m.round = 0
	}
	if m.grid.BottomRowOccupied() {
		m.gameOver(false)
		return
	}

	m.reload()
	m.state = StateReady
}

func (m *Machine) remove(dt float64) {
	done, dropped := m.animator.Tick(m.grid, dt)
	m.score += dropped * m.cfg.PointsPerDrop
	if !done {
		return
	}
	m.animator.Finish(m.grid)

	if m.grid.Occupied() == 0 {
		m.gameOver(true)
		return
	}
	m.reload()
	m.state = StateReady
}

func (m *Machine) reload() {
	m.launcher.Load(m.launcher.Next(), m.pickType())
}

// pickType chooses uniformly among the types still on the board, falling
// back to any type when the board is empty.
func (m *Machine) pickType() TileType {
	types := m.grid.PresentTypes()
	if len(types) == 0 {
		return TileType(randRange(m.rng, 0, m.cfg.TypeCount-1))
	}
	return types[randRange(m.rng, 0, len(types)-1)]
}

func (m *Machine) gameOver(cleared bool) {
	m.state = StateOver
	m.cleared = cleared
	m.launcher.reset()
	m.sink.OnGameOver(OverEvent{Score: m.score, Cleared: cleared, Elapsed: m.Elapsed()})
}
