package core

import (
	"math"

	opt "github.com/repeale/fp-go/option"
)

// Projectile is a tile in flight. X and Y are its center in pixels.
type Projectile struct {
	Kind     TileType
	X        float64
	Y        float64
	AngleDeg float64
}

// Launcher aims and fires projectiles from a fixed point below the grid.
type Launcher struct {
	X float64 // Center of the launcher
	Y float64

	aim    float64
	minAim float64
	maxAim float64
	speed  float64

	loaded TileType
	next   TileType
	flight opt.Option[Projectile]
}

// NewLauncher places a launcher centered horizontally just below the grid.
func NewLauncher(cfg Config) *Launcher {
	geo := cfg.Geometry()
	return &Launcher{
		X:      geo.OriginX + geo.Width()/2,
		Y:      geo.OriginY + geo.Height() + geo.TileSize/2,
		aim:    90,
		minAim: cfg.MinAim,
		maxAim: cfg.MaxAim,
		speed:  cfg.ProjectileSpeed,
		flight: opt.None[Projectile](),
	}
}

// Aim returns the current aim angle in degrees (0 = right, 90 = up).
func (l *Launcher) Aim() float64 {
	return l.aim
}

// SetAim normalizes deg into [0, 360) and clamps it to the allowed arc.
// Angles pointing left or down-left clamp to the max; angles pointing right
// or down-right clamp to the min.
func (l *Launcher) SetAim(deg float64) {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a > 90 && a < 270 {
		if a > l.maxAim {
			a = l.maxAim
		}
	} else if a < l.minAim || a >= 270 {
		a = l.minAim
	}
	l.aim = a
}

// AimAt aims the launcher at a pixel position.
func (l *Launcher) AimAt(x, y float64) {
	l.SetAim(RadToDeg(math.Atan2(l.Y-y, x-l.X)))
}

// Nudge rotates the aim by delta degrees, staying within the arc.
func (l *Launcher) Nudge(delta float64) {
	l.SetAim(l.aim + delta)
}

// SetSpeed changes the projectile speed for subsequent motion.
func (l *Launcher) SetSpeed(pxPerSec float64) {
	if pxPerSec > 0 {
		l.speed = pxPerSec
	}
}

// Load sets the tile waiting at the launcher and the preview after it.
func (l *Launcher) Load(current, next TileType) {
	l.loaded = current
	l.next = next
}

// Loaded returns the tile waiting to be fired.
func (l *Launcher) Loaded() TileType {
	return l.loaded
}

// Next returns the preview tile.
func (l *Launcher) Next() TileType {
	return l.next
}

// Flight returns the projectile currently in flight, if any.
func (l *Launcher) Flight() opt.Option[Projectile] {
	return l.flight
}

// Fire launches the loaded tile along the current aim. It returns false
// when a projectile is already in flight.
func (l *Launcher) Fire() bool {
	if opt.IsSome(l.flight) {
		return false
	}
	l.flight = opt.Some(Projectile{Kind: l.loaded, X: l.X, Y: l.Y, AngleDeg: l.aim})
	return true
}

// Advance moves the projectile by dt seconds and reports whether it landed.
// Side walls reflect the projectile; the top edge and any tile stop it.
func (l *Launcher) Advance(dt float64, g *Grid) bool {
	if opt.IsNone(l.flight) {
		return false
	}
	p := l.flight.Value

	rad := DegToRad(p.AngleDeg)
	p.X += dt * l.speed * math.Cos(rad)
	p.Y -= dt * l.speed * math.Sin(rad)

	half := g.TileSize / 2
	left := g.OriginX + half
	right := g.OriginX + g.Width() - half
	if p.X <= left {
		p.AngleDeg = 180 - p.AngleDeg
		p.X = left
	} else if p.X >= right {
		p.AngleDeg = 180 - p.AngleDeg
		p.X = right
	}

	landed := false
	if top := g.OriginY + half; p.Y <= top {
		p.Y = top
		landed = true
	} else if g.HasCollision(p.X, p.Y) {
		landed = true
	}

	l.flight = opt.Some(p)
	return landed
}

// Land takes the projectile out of flight.
func (l *Launcher) Land() (Projectile, bool) {
	if opt.IsNone(l.flight) {
		return Projectile{}, false
	}
	p := l.flight.Value
	l.flight = opt.None[Projectile]()
	return p, true
}

// reset drops any in-flight projectile and re-centers the aim.
func (l *Launcher) reset() {
	l.flight = opt.None[Projectile]()
	l.aim = 90
}
