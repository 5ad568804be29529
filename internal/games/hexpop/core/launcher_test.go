package core_test

import (
	"math"
	"testing"

	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

func TestSetAimClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{90, 90},
		{100, 100},
		{0, 8},
		{5, 8},
		{8, 8},
		{172, 172},
		{180, 172},
		{200, 172},
		{269, 172},
		{270, 8},
		{300, 8},
		{-90, 8},
		{-10, 8},
		{450, 90},
	}

	for _, tt := range tests {
		l := core.NewLauncher(core.DefaultConfig())
		l.SetAim(tt.in)
		if got := l.Aim(); got != tt.want {
			t.Errorf("SetAim(%v) -> Aim() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAimAt(t *testing.T) {
	l := core.NewLauncher(core.DefaultConfig())

	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"straight up", l.X, l.Y - 100, 90},
		{"far right", l.X + 100, l.Y, 8},
		{"far left", l.X - 100, l.Y, 172},
		{"below", l.X, l.Y + 100, 8},
		{"up-right diagonal", l.X + 100, l.Y - 100, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l.AimAt(tt.x, tt.y)
			if got := l.Aim(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AimAt(%v, %v) -> Aim() = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNudgeStaysInArc(t *testing.T) {
	l := core.NewLauncher(core.DefaultConfig())
	for i := 0; i < 100; i++ {
		l.Nudge(5)
	}
	if got := l.Aim(); got != 172 {
		t.Errorf("Aim() after nudging left = %v, want 172", got)
	}
	for i := 0; i < 100; i++ {
		l.Nudge(-5)
	}
	if got := l.Aim(); got != 8 {
		t.Errorf("Aim() after nudging right = %v, want 8", got)
	}
}

func TestLauncherPosition(t *testing.T) {
	l := core.NewLauncher(core.DefaultConfig())
	if l.X != 194 || l.Y != 574 {
		t.Errorf("launcher at (%v, %v), want (194, 574)", l.X, l.Y)
	}
}

func TestFireOnlyOnce(t *testing.T) {
	l := core.NewLauncher(core.DefaultConfig())
	l.Load(2, 3)
	if !l.Fire() {
		t.Fatal("first Fire() = false, want true")
	}
	if l.Fire() {
		t.Error("second Fire() = true while in flight, want false")
	}
	p := l.Flight()
	if opt.IsNone(p) || p.Value.Kind != 2 {
		t.Errorf("Flight() = %+v, want loaded kind 2", p)
	}
	if l.Next() != 3 {
		t.Errorf("Next() = %v, want 3", l.Next())
	}
}

func TestAdvanceStraightUpLandsAtTop(t *testing.T) {
	cfg := core.DefaultConfig()
	g := newGrid(t, cfg)
	l := core.NewLauncher(cfg)
	l.Fire()

	landed := false
	for i := 0; i < 1000 && !landed; i++ {
		landed = l.Advance(1.0/60, g)
	}
	if !landed {
		t.Fatal("projectile never landed")
	}
	p, ok := l.Land()
	if !ok {
		t.Fatal("Land() ok = false")
	}
	if p.Y != cfg.OriginY+cfg.TileSize/2 {
		t.Errorf("landed at y=%v, want %v", p.Y, cfg.OriginY+cfg.TileSize/2)
	}
	if math.Abs(p.X-l.X) > 1e-6 {
		t.Errorf("landed at x=%v, want %v", p.X, l.X)
	}
	if opt.IsSome(l.Flight()) {
		t.Error("Flight() still set after Land()")
	}
}

func TestAdvanceBouncesOffWalls(t *testing.T) {
	cfg := core.DefaultConfig()
	g := newGrid(t, cfg)
	l := core.NewLauncher(cfg)
	l.SetAim(30)
	l.Fire()

	left := cfg.OriginX + cfg.TileSize/2
	right := cfg.OriginX + g.Width() - cfg.TileSize/2
	bounced := false

	landed := false
	for i := 0; i < 2000 && !landed; i++ {
		landed = l.Advance(1.0/120, g)
		p := l.Flight().Value
		if p.X < left || p.X > right {
			t.Fatalf("projectile left the playfield at x=%v", p.X)
		}
		if p.AngleDeg != 30 {
			bounced = true
			if p.AngleDeg != 150 {
				t.Fatalf("angle after bounce = %v, want 150", p.AngleDeg)
			}
		}
	}
	if !landed {
		t.Fatal("projectile never landed")
	}
	if !bounced {
		t.Error("projectile never bounced")
	}
}

func TestAdvanceStopsOnTile(t *testing.T) {
	cfg := smallConfig(4, 6, 2)
	g := newGrid(t, cfg, "AAAA", "AAAA")
	l := core.NewLauncher(cfg)
	l.Fire()

	landed := false
	for i := 0; i < 1000 && !landed; i++ {
		landed = l.Advance(1.0/60, g)
	}
	p := l.Flight().Value
	if !landed || p.Y <= cfg.TileSize/2 {
		t.Errorf("projectile at y=%v, want stop below the tiles", p.Y)
	}
	if !g.HasCollision(p.X, p.Y) {
		t.Error("landed without touching a tile")
	}
}
