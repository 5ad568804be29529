// Package core provides the simulation core of the HexPop bubble shooter:
// a hexagonally offset tile grid, the launcher and its projectile, cluster
// matching, the removal/drop animation and the game state machine.
// This package is UI-agnostic and deterministic for a given RNG seed.
package core

import (
	"fmt"

	opt "github.com/repeale/fp-go/option"
)

// TileType identifies a tile kind in [0, Config.TypeCount).
type TileType int

// Cell is a (row, column) grid coordinate.
type Cell struct {
	Row    int
	Column int
}

// C is a convenience constructor for Cell.
func C(row, column int) Cell {
	return Cell{Row: row, Column: column}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Cluster is an ordered sequence of cells produced by a flood fill.
type Cluster []Cell

// Contains reports whether the cluster holds the given cell.
func (cl Cluster) Contains(c Cell) bool {
	for _, cc := range cl {
		if cc == c {
			return true
		}
	}
	return false
}

// Tile is a single grid slot. An empty slot has no Kind.
type Tile struct {
	Kind             opt.Option[TileType]
	Alpha            float64 // 1 = opaque, 0 = gone
	FallVelocity     float64 // px/s, only while dropping
	FallOffset       float64 // px below the seated position
	MarkedForRemoval bool
	Visited          bool
}

// EmptyTile returns an empty, fully opaque slot.
func EmptyTile() Tile {
	return Tile{Kind: opt.None[TileType](), Alpha: 1}
}

// NewTile returns an opaque tile of the given type.
func NewTile(t TileType) Tile {
	return Tile{Kind: opt.Some(t), Alpha: 1}
}

// IsEmpty reports whether the slot holds no tile.
func (t Tile) IsEmpty() bool {
	return opt.IsNone(t.Kind)
}

// Type returns the tile type and whether the slot is occupied.
func (t Tile) Type() (TileType, bool) {
	if opt.IsNone(t.Kind) {
		return 0, false
	}
	return t.Kind.Value, true
}

// clear frees the slot and resets its animation state.
func (t *Tile) clear() {
	t.Kind = opt.None[TileType]()
	t.Alpha = 1
	t.FallVelocity = 0
	t.FallOffset = 0
}

// sameKind compares two optional kinds; two empty slots match.
func sameKind(a, b opt.Option[TileType]) bool {
	if opt.IsNone(a) || opt.IsNone(b) {
		return opt.IsNone(a) && opt.IsNone(b)
	}
	return a.Value == b.Value
}

// State is the game state machine's current state.
type State uint8

const (
	StateInit State = iota
	StateReady
	StateShoot
	StateRemove
	StateOver
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateReady:
		return "Ready"
	case StateShoot:
		return "Shoot"
	case StateRemove:
		return "Remove"
	case StateOver:
		return "Over"
	default:
		return "Unknown"
	}
}
