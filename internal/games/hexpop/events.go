package hexpop

import (
	"time"

	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/hexpop/internal/core"
	hcore "github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// observerSink forwards simulation events to the platform observer.
type observerSink struct {
	gameID   string
	observer core.Observer
}

func (s observerSink) OnClusterPopped(ev hcore.PopEvent) {
	if s.observer == nil {
		return
	}
	s.observer.Notify(core.Event{
		Kind:     core.EventClusterPopped,
		GameID:   s.gameID,
		TileType: int(ev.Kind),
		Count:    ev.Count,
		Score:    ev.Score,
		At:       time.Now(),
	})
}

func (s observerSink) OnGameOver(ev hcore.OverEvent) {
	if s.observer == nil {
		return
	}
	s.observer.Notify(core.Event{
		Kind:    core.EventGameOver,
		GameID:  s.gameID,
		Score:   ev.Score,
		Cleared: ev.Cleared,
		Elapsed: ev.Elapsed,
		At:      time.Now(),
	})
}

// pointer returns the frame's pointer position, if one was reported.
func pointer(in core.InputFrame) (core.Point, bool) {
	if opt.IsNone(in.Pointer) {
		return core.Point{}, false
	}
	return in.Pointer.Value, true
}
