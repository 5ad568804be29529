package hexpop

import (
	"math"

	"github.com/vovakirdan/hexpop/internal/core"
	hcore "github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// Each tile is two characters wide and odd rows shift right by one
// character, so one character is half a tile horizontally and one line is
// one row pitch vertically.
const (
	hudHeight = 1
	minMargin = 1
)

// boardLayout maps between simulation pixels and screen cells.
type boardLayout struct {
	geo    hcore.Geometry
	left   int // Screen column of tile (0,0)
	top    int // Screen line of row 0
	width  int // Board width in characters
	rows   int
	fits   bool
	needW  int
	needH  int
}

func newBoardLayout(rules hcore.Config, screenW, screenH int) boardLayout {
	l := boardLayout{
		geo:   rules.Geometry(),
		width: rules.Columns*2 + 1,
		rows:  rules.Rows,
		top:   hudHeight + 1,
	}
	// Frame plus margin on both sides; HUD, frame, rows, launcher line, frame, help line.
	l.needW = l.width + 2 + 2*minMargin
	l.needH = hudHeight + 1 + l.rows + 1 + 1 + 1
	l.left = (screenW - l.width) / 2
	l.fits = screenW >= l.needW && screenH >= l.needH
	return l
}

// launcherLine is the screen line the launcher sits on.
func (l boardLayout) launcherLine() int {
	return l.top + l.rows
}

// frame is the box drawn around the board and launcher line.
func (l boardLayout) frame() core.Rect {
	return core.NewRect(l.left-1, l.top-1, l.width+2, l.rows+3)
}

// inBoard reports whether a screen cell lies inside the frame.
func (l boardLayout) inBoard(x, y int) bool {
	return x >= l.left && x < l.left+l.width && y >= l.top && y <= l.launcherLine()
}

// tileCell returns the screen cell of a grid cell.
func (l boardLayout) tileCell(row, col int) (x, y int) {
	x = l.left + col*2
	if row%2 != 0 {
		x++
	}
	return x, l.top + row
}

// pixelToScreen maps a simulation pixel (tile center space) to a screen cell.
func (l boardLayout) pixelToScreen(px, py float64) (x, y int) {
	half := l.geo.TileSize / 2
	x = l.left + int(math.Round((px-l.geo.OriginX-half)*2/l.geo.TileSize))
	y = l.top + int(math.Round((py-l.geo.OriginY-half)/l.geo.RowPitch))
	return x, y
}

// screenToPixel maps a screen cell to the simulation pixel at its center.
func (l boardLayout) screenToPixel(x, y int) (px, py float64) {
	half := l.geo.TileSize / 2
	px = l.geo.OriginX + half + float64(x-l.left)*half
	py = l.geo.OriginY + half + float64(y-l.top)*l.geo.RowPitch
	return px, py
}
