package core

import (
	"time"

	opt "github.com/repeale/fp-go/option"
)

// TileView is a read-only view of an occupied slot for renderers.
type TileView struct {
	Cell
	Kind       TileType
	Alpha      float64
	FallOffset float64
	Popping    bool
	X          float64 // Center, including the fall offset
	Y          float64
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	State      State
	Geometry   Geometry
	Tiles      []TileView
	LauncherX  float64
	LauncherY  float64
	Aim        float64
	Loaded     TileType
	Next       TileType
	Projectile opt.Option[Projectile]
	Score      int
	Round      int
	Cleared    bool
	Elapsed    time.Duration
}

// Snapshot captures the machine's current state.
func (m *Machine) Snapshot() Snapshot {
	g := m.grid
	s := Snapshot{
		State:      m.state,
		Geometry:   g.Geometry,
		LauncherX:  m.launcher.X,
		LauncherY:  m.launcher.Y,
		Aim:        m.launcher.Aim(),
		Loaded:     m.launcher.Loaded(),
		Next:       m.launcher.Next(),
		Projectile: m.launcher.Flight(),
		Score:      m.score,
		Round:      m.round,
		Cleared:    m.cleared,
		Elapsed:    m.Elapsed(),
	}
	for r := range g.cells {
		for c, t := range g.cells[r] {
			k, ok := t.Type()
			if !ok {
				continue
			}
			x, y := g.CellCenter(r, c)
			s.Tiles = append(s.Tiles, TileView{
				Cell:       Cell{Row: r, Column: c},
				Kind:       k,
				Alpha:      t.Alpha,
				FallOffset: t.FallOffset,
				Popping:    t.MarkedForRemoval,
				X:          x,
				Y:          y + t.FallOffset,
			})
		}
	}
	return s
}
