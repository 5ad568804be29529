package core

// RemovalAnimator fades out a popped cluster and drops tiles that lost
// their connection to the ceiling.
type RemovalAnimator struct {
	popFadeRate  float64
	fallGravity  float64
	fallFadeRate float64

	popped Cluster
}

// NewRemovalAnimator creates an animator using the config's rates.
func NewRemovalAnimator(cfg Config) *RemovalAnimator {
	return &RemovalAnimator{
		popFadeRate:  cfg.PopFadeRate,
		fallGravity:  cfg.FallGravity,
		fallFadeRate: cfg.FallFadeRate,
	}
}

// Start begins animating a cluster whose tiles are already marked.
func (a *RemovalAnimator) Start(popped Cluster) {
	a.popped = popped
}

// Active reports whether a cluster is being animated.
func (a *RemovalAnimator) Active() bool {
	return a.popped != nil
}

// Tick advances the animation by dt seconds. It returns done once every
// popped and floating tile is gone, and the number of floating tiles that
// were retired during this tick.
func (a *RemovalAnimator) Tick(g *Grid, dt float64) (done bool, dropped int) {
	remaining := false

	for _, c := range a.popped {
		t := g.tile(c)
		if t.IsEmpty() {
			continue
		}
		t.Alpha -= a.popFadeRate * dt
		if t.Alpha <= 0 {
			t.clear()
			continue
		}
		remaining = true
	}

	bottom := g.OriginY + g.Height() + g.TileSize
	for _, cl := range g.FindFloatingClusters() {
		for _, c := range cl {
			t := g.tile(c)
			t.FallVelocity += a.fallGravity * dt
			t.FallOffset += t.FallVelocity * dt
			t.Alpha -= a.fallFadeRate * dt

			_, y := g.CellToPixel(c.Row, c.Column)
			if t.Alpha <= 0 || y+t.FallOffset > bottom {
				t.clear()
				dropped++
				continue
			}
			remaining = true
		}
	}

	return !remaining, dropped
}

// Finish clears removal marks and forgets the popped cluster.
func (a *RemovalAnimator) Finish(g *Grid) {
	g.ResetMarked()
	a.popped = nil
}
