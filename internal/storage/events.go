package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EventRecord is one row of the gameplay journal.
type EventRecord struct {
	ID        int64
	SessionID string
	GameID    string
	Kind      string
	TileType  sql.NullInt64 // Null when the event carries no tile type
	Count     int
	Score     int
	CreatedAt time.Time
}

// TypeStats aggregates pops for one tile type.
type TypeStats struct {
	TileType int
	Pops     int // Number of clusters popped
	Tiles    int // Number of tiles in those clusters
}

// SaveEvent appends an event to the journal.
func (s *Store) SaveEvent(ctx context.Context, ev EventRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (session_id, game_id, kind, tile_type, count, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.GameID, ev.Kind, ev.TileType, ev.Count, ev.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save event: %w", err)
	}
	return nil
}

// RecentEvents returns the newest journal entries for a game, newest first.
func (s *Store) RecentEvents(gameID string, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, game_id, kind, tile_type, count, score, created_at
		 FROM events
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var r EventRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.GameID, &r.Kind, &r.TileType, &r.Count, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// PopStats aggregates popped clusters per tile type for a game, ordered by
// tile type.
func (s *Store) PopStats(gameID, popKind string) ([]TypeStats, error) {
	rows, err := s.db.Query(
		`SELECT tile_type, COUNT(*), COALESCE(SUM(count), 0)
		 FROM events
		 WHERE game_id = ? AND kind = ? AND tile_type IS NOT NULL
		 GROUP BY tile_type
		 ORDER BY tile_type`,
		gameID, popKind,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pop stats: %w", err)
	}
	defer rows.Close()

	var stats []TypeStats
	for rows.Next() {
		var st TypeStats
		if err := rows.Scan(&st.TileType, &st.Pops, &st.Tiles); err != nil {
			return nil, fmt.Errorf("storage: cannot scan pop stats: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
