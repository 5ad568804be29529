package core

import (
	"math"
	"math/rand"
)

// Geometry converts between grid cells and continuous pixel space.
// Odd rows are shifted right by half a tile. Horizontal math always uses
// TileSize and vertical math always uses RowPitch.
type Geometry struct {
	OriginX  float64
	OriginY  float64
	TileSize float64
	RowPitch float64
	Rows     int
	Columns  int
}

// CellToPixel returns the top-left pixel of a cell.
func (g Geometry) CellToPixel(row, column int) (x, y float64) {
	x = g.OriginX + float64(column)*g.TileSize
	if row%2 != 0 {
		x += g.TileSize / 2
	}
	y = g.OriginY + float64(row)*g.RowPitch
	return x, y
}

// CellCenter returns the pixel center of a cell.
func (g Geometry) CellCenter(row, column int) (x, y float64) {
	x, y = g.CellToPixel(row, column)
	return x + g.TileSize/2, y + g.TileSize/2
}

// PixelToClosestCell returns the cell whose center is nearest to (x, y),
// clamped into the grid. It never fails for out-of-range input.
func (g Geometry) PixelToClosestCell(x, y float64) Cell {
	half := g.TileSize / 2

	row := int(math.Round((y - g.OriginY - half) / g.RowPitch))
	row = clampInt(row, 0, g.Rows-1)

	offset := 0.0
	if row%2 != 0 {
		offset = half
	}
	column := int(math.Round((x - g.OriginX - offset - half) / g.TileSize))
	column = clampInt(column, 0, g.Columns-1)

	return Cell{Row: row, Column: column}
}

// Width returns the pixel width of the playfield, including the odd-row overhang.
func (g Geometry) Width() float64 {
	return float64(g.Columns)*g.TileSize + g.TileSize/2
}

// Height returns the pixel height of the playfield.
func (g Geometry) Height() float64 {
	return float64(g.Rows-1)*g.RowPitch + g.TileSize
}

// InBounds reports whether the cell lies inside the grid.
func (g Geometry) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Column >= 0 && c.Column < g.Columns
}

// CirclesIntersect reports whether two circles overlap. Tangent circles do
// not intersect.
func CirclesIntersect(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx+dy*dy) < r1+r2
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// randRange returns a uniform integer in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
