package hexpop

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/hexpop/internal/core"
	hcore "github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// Visual characters for rendering
const (
	FadedGlyph = '∘'
	AimGlyph   = '·'
)

const helpText = "←/→ aim  ↑ center  space fire  p pause"

// TileGlyphs holds one glyph per tile type; types beyond the table reuse it cyclically.
var TileGlyphs = []rune{'●', '◆', '▲', '■', '★', '♥', '♣'}

// TileColors holds one color per tile type.
var TileColors = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightBlue,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorOrange,
}

// TileStyle returns the glyph and color for a tile type.
func TileStyle(t hcore.TileType) (rune, core.Color) {
	i := int(t)
	if i < 0 {
		i = -i
	}
	return TileGlyphs[i%len(TileGlyphs)], TileColors[i%len(TileColors)]
}

// Render draws the board, launcher and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start "+g.variant)
		dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		return
	}
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.layout.needW, g.layout.needH))
		return
	}

	snap := g.machine.Snapshot()

	g.renderHUD(dst, snap)
	dst.DrawBox(g.layout.frame(), core.ColorGray)
	g.renderTiles(dst, snap)
	g.renderLauncher(dst, snap)
	g.renderProjectile(dst, snap)
	g.renderHelp(dst)
	g.renderOverlay(dst, snap)
}

func (g *Game) renderHUD(dst *core.Screen, snap hcore.Snapshot) {
	dst.DrawText(1, 0, "Score: "+humanize.Comma(int64(snap.Score)))

	dst.DrawTextCentered(0, g.title)

	secs := int(snap.Elapsed.Seconds())
	right := fmt.Sprintf("Next   %02d:%02d", secs/60, secs%60)
	x := dst.Width() - len([]rune(right)) - 1
	dst.DrawText(x, 0, right)
	glyph, color := TileStyle(snap.Next)
	dst.SetColored(x+5, 0, glyph, color)
}

func (g *Game) renderTiles(dst *core.Screen, snap hcore.Snapshot) {
	for _, t := range snap.Tiles {
		x, y := g.layout.tileCell(t.Row, t.Column)
		if t.FallOffset > 0 {
			y += int(math.Round(t.FallOffset / snap.Geometry.RowPitch))
		}
		if y >= g.layout.launcherLine() {
			continue
		}

		glyph, color := TileStyle(t.Kind)
		if t.Popping || t.FallOffset > 0 {
			color = color.Dim()
		}
		if t.Alpha < 0.5 {
			glyph = FadedGlyph
		}
		dst.SetColored(x, y, glyph, color)
	}
}

func (g *Game) renderLauncher(dst *core.Screen, snap hcore.Snapshot) {
	lx, ly := g.layout.pixelToScreen(snap.LauncherX, snap.LauncherY)

	if snap.State == hcore.StateReady {
		rad := hcore.DegToRad(snap.Aim)
		step := snap.Geometry.TileSize * 0.6
		for k := 1; k <= 5; k++ {
			px := snap.LauncherX + math.Cos(rad)*step*float64(k)
			py := snap.LauncherY - math.Sin(rad)*step*float64(k)
			x, y := g.layout.pixelToScreen(px, py)
			if !g.layout.inBoard(x, y) || (x == lx && y == ly) {
				continue
			}
			if dst.Get(x, y) == ' ' {
				dst.SetColored(x, y, AimGlyph, core.ColorGray)
			}
		}
	}

	if snap.State != hcore.StateOver && opt.IsNone(snap.Projectile) {
		glyph, color := TileStyle(snap.Loaded)
		dst.SetColored(lx, ly, glyph, color)
	} else {
		dst.SetColored(lx, ly, '^', core.ColorGray)
	}
}

func (g *Game) renderProjectile(dst *core.Screen, snap hcore.Snapshot) {
	if opt.IsNone(snap.Projectile) {
		return
	}
	p := snap.Projectile.Value
	x, y := g.layout.pixelToScreen(p.X, p.Y)
	x = core.Clamp(x, g.layout.left, g.layout.left+g.layout.width-1)
	y = core.Clamp(y, g.layout.top, g.layout.launcherLine())
	glyph, color := TileStyle(p.Kind)
	dst.SetColored(x, y, glyph, color)
}

func (g *Game) renderHelp(dst *core.Screen) {
	y := g.layout.frame().Bottom()
	if y < dst.Height() {
		dst.DrawTextColored((dst.Width()-len([]rune(helpText)))/2, y, helpText, core.ColorGray)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, snap hcore.Snapshot) {
	switch {
	case snap.State == hcore.StateOver && snap.Cleared:
		g.drawCenteredBox(dst, "BOARD CLEARED!", fmt.Sprintf("Score: %s  |  Press R to restart", humanize.Comma(int64(snap.Score))))
	case snap.State == hcore.StateOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %s  |  Press R to restart", humanize.Comma(int64(snap.Score))))
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	titleW := len([]rune(title))
	subW := len([]rune(subtitle))

	boxW := max(titleW, subW) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.Fill(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
}
