package core

import "time"

// EventKind identifies a gameplay event forwarded to the platform.
type EventKind string

const (
	EventClusterPopped EventKind = "cluster_popped"
	EventGameOver      EventKind = "game_over"
)

// Event is a platform-level gameplay notification. Games translate their own
// events into this shape so observers do not depend on game packages.
type Event struct {
	Kind     EventKind
	GameID   string
	TileType int // Matched type for EventClusterPopped
	Count    int // Cluster size for EventClusterPopped
	Score    int
	Cleared  bool // EventGameOver: the board was emptied
	Elapsed  time.Duration
	At       time.Time
}

// Observer receives gameplay events. Notify must return quickly; the
// simulation calls it from inside a tick.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Notify calls f(ev).
func (f ObserverFunc) Notify(ev Event) {
	f(ev)
}
