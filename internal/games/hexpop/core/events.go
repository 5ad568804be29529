package core

import "time"

// PopEvent describes a cluster that reached the pop threshold.
type PopEvent struct {
	Kind  TileType
	Count int
	Score int // Total score after the pop was credited
}

// OverEvent describes the end of a game.
type OverEvent struct {
	Score   int
	Cleared bool // The board was emptied rather than overflowing
	Elapsed time.Duration
}

// EventSink receives notable simulation events. Implementations must not
// block; they are called from inside Machine.Advance.
type EventSink interface {
	OnClusterPopped(ev PopEvent)
	OnGameOver(ev OverEvent)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) OnClusterPopped(PopEvent) {}
func (NopSink) OnGameOver(OverEvent)     {}
