package core

import (
	"fmt"
	"math/rand"
	"sort"

	opt "github.com/repeale/fp-go/option"
)

// neighborOffsets holds the six (drow, dcol) neighbor deltas indexed by row
// parity. Odd rows sit half a tile to the right of even rows.
var neighborOffsets = [2][6][2]int{
	{{1, 0}, {1, -1}, {0, 1}, {0, -1}, {-1, 0}, {-1, -1}}, // even
	{{1, 0}, {1, 1}, {0, 1}, {0, -1}, {-1, 0}, {-1, 1}},   // odd
}

// Grid is the rectangular playfield of Rows x Columns tile slots.
// The number of rows is constant for the lifetime of the grid.
type Grid struct {
	Geometry

	typeCount int
	radius    float64
	cells     [][]Tile
	rng       *rand.Rand
}

// NewGrid creates an empty grid for the given config. A nil rng is replaced
// by a source seeded with 1.
func NewGrid(cfg Config, rng *rand.Rand) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	g := &Grid{
		Geometry:  cfg.Geometry(),
		typeCount: cfg.TypeCount,
		radius:    cfg.CollisionRadius,
		rng:       rng,
	}
	g.cells = make([][]Tile, g.Rows)
	for i := range g.cells {
		g.cells[i] = g.GenerateRow(true)
	}
	return g, nil
}

// TypeCount returns the number of distinct tile types.
func (g *Grid) TypeCount() int {
	return g.typeCount
}

// Init refills the grid: the top half (rounded up) gets random rows, the
// rest is emptied.
func (g *Grid) Init() {
	for i := range g.cells {
		g.cells[i] = g.GenerateRow(i*2 >= g.Rows)
	}
}

// GenerateRow builds a row of Columns slots. Unless empty, it emits a random
// type for two consecutive cells, then rerolls; a reroll that hits the same
// type advances to the next type modulo TypeCount.
func (g *Grid) GenerateRow(empty bool) []Tile {
	row := make([]Tile, g.Columns)
	if empty {
		for i := range row {
			row[i] = EmptyTile()
		}
		return row
	}

	current := TileType(randRange(g.rng, 0, g.typeCount-1))
	count := 0
	for i := range row {
		if count >= 2 {
			next := TileType(randRange(g.rng, 0, g.typeCount-1))
			if next == current {
				next = (next + 1) % TileType(g.typeCount)
			}
			current = next
			count = 0
		}
		count++
		row[i] = NewTile(current)
	}
	return row
}

// AddRowToTop prepends a freshly generated row and drops the last one.
func (g *Grid) AddRowToTop() {
	copy(g.cells[1:], g.cells[:len(g.cells)-1])
	g.cells[0] = g.GenerateRow(false)
}

// Neighbors returns the in-bounds neighbors of a cell.
func (g *Grid) Neighbors(row, column int) []Cell {
	offsets := neighborOffsets[row&1]
	out := make([]Cell, 0, len(offsets))
	for _, d := range offsets {
		c := Cell{Row: row + d[0], Column: column + d[1]}
		if g.InBounds(c) {
			out = append(out, c)
		}
	}
	return out
}

// At returns a copy of the tile at c. Out-of-bounds cells read as empty.
func (g *Grid) At(c Cell) Tile {
	if !g.InBounds(c) {
		return EmptyTile()
	}
	return g.cells[c.Row][c.Column]
}

func (g *Grid) tile(c Cell) *Tile {
	return &g.cells[c.Row][c.Column]
}

// SetKind places a fresh opaque tile of type t at c.
func (g *Grid) SetKind(c Cell, t TileType) {
	if !g.InBounds(c) {
		return
	}
	*g.tile(c) = NewTile(t)
}

// ClearCell empties the slot at c.
func (g *Grid) ClearCell(c Cell) {
	if !g.InBounds(c) {
		return
	}
	g.tile(c).clear()
}

// HasCollision reports whether a circle of the collision radius centered at
// (x, y) overlaps any occupied tile.
func (g *Grid) HasCollision(x, y float64) bool {
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].IsEmpty() {
				continue
			}
			cx, cy := g.CellCenter(r, c)
			if CirclesIntersect(x, y, g.radius, cx, cy, g.radius) {
				return true
			}
		}
	}
	return false
}

// Snap picks the cell a projectile centered at (x, y) settles into: the
// closest cell, or the first empty slot straight below it when that cell is
// taken. If the column is full down to the bottom, it returns the bottom-row
// cell and false; that cell is occupied and must not be written.
func (g *Grid) Snap(x, y float64) (Cell, bool) {
	cell := g.PixelToClosestCell(x, y)
	if g.At(cell).IsEmpty() {
		return cell, true
	}
	for r := cell.Row + 1; r < g.Rows; r++ {
		c := Cell{Row: r, Column: cell.Column}
		if g.At(c).IsEmpty() {
			return c, true
		}
	}
	return Cell{Row: g.Rows - 1, Column: cell.Column}, false
}

// Occupied returns the number of occupied slots.
func (g *Grid) Occupied() int {
	n := 0
	for r := range g.cells {
		for c := range g.cells[r] {
			if !g.cells[r][c].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// PresentTypes returns the distinct tile types on the grid in ascending order.
func (g *Grid) PresentTypes() []TileType {
	seen := make(map[TileType]bool, g.typeCount)
	for r := range g.cells {
		for c := range g.cells[r] {
			if t, ok := g.cells[r][c].Type(); ok {
				seen[t] = true
			}
		}
	}
	types := make([]TileType, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// BottomRowOccupied reports whether any tile has reached the last row.
func (g *Grid) BottomRowOccupied() bool {
	for _, t := range g.cells[g.Rows-1] {
		if !t.IsEmpty() {
			return true
		}
	}
	return false
}

// MarkForRemoval flags every cell of the cluster for removal.
func (g *Grid) MarkForRemoval(cl Cluster) {
	for _, c := range cl {
		if g.InBounds(c) {
			g.tile(c).MarkedForRemoval = true
		}
	}
}

// ResetVisited clears the flood-fill visited flag on every slot.
func (g *Grid) ResetVisited() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].Visited = false
		}
	}
}

// ResetMarked clears the removal mark on every slot.
func (g *Grid) ResetMarked() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c].MarkedForRemoval = false
		}
	}
}

// LoadRows replaces the grid contents. Rows beyond len(rows) are emptied;
// each supplied row must have exactly Columns entries.
func (g *Grid) LoadRows(rows [][]opt.Option[TileType]) error {
	if len(rows) > g.Rows {
		return fmt.Errorf("%w: layout has %d rows, grid has %d", ErrInvalidConfig, len(rows), g.Rows)
	}
	for i, row := range rows {
		if len(row) != g.Columns {
			return fmt.Errorf("%w: layout row %d has %d columns, want %d", ErrInvalidConfig, i, len(row), g.Columns)
		}
		for j, k := range row {
			if opt.IsSome(k) && (k.Value < 0 || int(k.Value) >= g.typeCount) {
				return fmt.Errorf("%w: layout cell (%d,%d) has type %d outside [0,%d)", ErrInvalidConfig, i, j, k.Value, g.typeCount)
			}
		}
	}
	for i := range g.cells {
		g.cells[i] = g.GenerateRow(true)
		if i >= len(rows) {
			continue
		}
		for j, k := range rows[i] {
			if opt.IsSome(k) {
				g.cells[i][j] = NewTile(k.Value)
			}
		}
	}
	return nil
}
