package story

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/storage"
)

// LogHandler writes every event to a structured logger.
type LogHandler struct {
	Logger *log.Logger
}

// Handle implements Handler.
func (h LogHandler) Handle(_ context.Context, ev core.Event) error {
	switch ev.Kind {
	case core.EventClusterPopped:
		h.Logger.Info("cluster popped",
			"game", ev.GameID, "type", ev.TileType, "count", ev.Count, "score", ev.Score)
	case core.EventGameOver:
		h.Logger.Info("game over",
			"game", ev.GameID, "score", ev.Score, "cleared", ev.Cleared, "elapsed", ev.Elapsed.Round(time.Millisecond))
	default:
		h.Logger.Debug("event", "kind", ev.Kind, "game", ev.GameID)
	}
	return nil
}

// EventSaver persists journal rows. *storage.Store satisfies it.
type EventSaver interface {
	SaveEvent(ctx context.Context, ev storage.EventRecord) error
}

// JournalHandler appends events to the storage journal.
type JournalHandler struct {
	Store     EventSaver
	SessionID string
}

// Handle implements Handler.
func (h JournalHandler) Handle(ctx context.Context, ev core.Event) error {
	rec := storage.EventRecord{
		SessionID: h.SessionID,
		GameID:    ev.GameID,
		Kind:      string(ev.Kind),
		Count:     ev.Count,
		Score:     ev.Score,
	}
	if ev.Kind == core.EventClusterPopped {
		rec.TileType = sql.NullInt64{Int64: int64(ev.TileType), Valid: true}
	}
	if err := h.Store.SaveEvent(ctx, rec); err != nil {
		return fmt.Errorf("story: journal: %w", err)
	}
	return nil
}

// Chronicle turns events into short narrative lines and keeps the most
// recent ones for display.
type Chronicle struct {
	mu    sync.Mutex
	limit int
	lines []string
}

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("yr:yrs,wk:wks,day:days,hr:hrs,min:min,sec:sec,ms:ms,us:us")

// NewChronicle keeps up to limit lines (at least 1).
func NewChronicle(limit int) *Chronicle {
	if limit < 1 {
		limit = 1
	}
	return &Chronicle{limit: limit}
}

// Handle implements Handler.
func (c *Chronicle) Handle(_ context.Context, ev core.Event) error {
	line := c.narrate(ev)
	if line == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
	if len(c.lines) > c.limit {
		c.lines = append(c.lines[:0], c.lines[len(c.lines)-c.limit:]...)
	}
	return nil
}

// Lines returns a copy of the stored lines, oldest first.
func (c *Chronicle) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Reset forgets all lines.
func (c *Chronicle) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

func (c *Chronicle) narrate(ev core.Event) string {
	switch ev.Kind {
	case core.EventClusterPopped:
		verb := "popped"
		switch {
		case ev.Count >= 8:
			verb = "shattered"
		case ev.Count >= 5:
			verb = "burst"
		}
		return fmt.Sprintf("%s %d %s bubbles (%s pts)",
			verb, ev.Count, TypeName(ev.TileType), humanize.Comma(int64(ev.Score)))
	case core.EventGameOver:
		played := FormatPlayTime(ev.Elapsed)
		if ev.Cleared {
			return fmt.Sprintf("board cleared in %s with %s pts", played, humanize.Comma(int64(ev.Score)))
		}
		return fmt.Sprintf("the ceiling won after %s at %s pts", played, humanize.Comma(int64(ev.Score)))
	}
	return ""
}

// FormatPlayTime renders a play duration compactly, e.g. "2 min 5 sec".
func FormatPlayTime(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).Format(shortUnits)
}

var typeNames = []string{"red", "blue", "green", "yellow", "magenta", "cyan", "orange"}

// TypeName returns a display name for a tile type.
func TypeName(t int) string {
	if t >= 0 && t < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type-%d", t)
}
