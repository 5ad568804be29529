package storage

import (
	"context"
	"database/sql"
	"testing"
)

func tileType(t int64) sql.NullInt64 {
	return sql.NullInt64{Int64: t, Valid: true}
}

func TestStoreEventsJournal(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	events := []EventRecord{
		{SessionID: "s1", GameID: "classic", Kind: "cluster_popped", TileType: tileType(2), Count: 3, Score: 300},
		{SessionID: "s1", GameID: "classic", Kind: "cluster_popped", TileType: tileType(2), Count: 5, Score: 800},
		{SessionID: "s1", GameID: "classic", Kind: "cluster_popped", TileType: tileType(0), Count: 4, Score: 1200},
		{SessionID: "s1", GameID: "classic", Kind: "game_over", Score: 1200},
		{SessionID: "s2", GameID: "mini", Kind: "cluster_popped", TileType: tileType(1), Count: 3, Score: 300},
	}
	for _, ev := range events {
		if err := store.SaveEvent(ctx, ev); err != nil {
			t.Fatalf("SaveEvent() failed: %v", err)
		}
	}

	recent, err := store.RecentEvents("classic", 2)
	if err != nil {
		t.Fatalf("RecentEvents() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentEvents() returned %d records, want 2", len(recent))
	}
	if recent[0].Kind != "game_over" || recent[0].TileType.Valid {
		t.Errorf("newest event = %+v, want game_over with a null tile type", recent[0])
	}
	if recent[1].TileType != tileType(0) || recent[1].Count != 4 {
		t.Errorf("second newest event = %+v, want the type 0 pop", recent[1])
	}

	stats, err := store.PopStats("classic", "cluster_popped")
	if err != nil {
		t.Fatalf("PopStats() failed: %v", err)
	}
	want := []TypeStats{
		{TileType: 0, Pops: 1, Tiles: 4},
		{TileType: 2, Pops: 2, Tiles: 8},
	}
	if len(stats) != len(want) {
		t.Fatalf("PopStats() = %+v, want %+v", stats, want)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("PopStats()[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
}

func TestStoreSaveEventCancelled(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.SaveEvent(ctx, EventRecord{SessionID: "s", GameID: "classic", Kind: "game_over"}); err == nil {
		t.Error("SaveEvent() with cancelled context = nil, want error")
	}
}

func TestStorePopStatsSkipsNullType(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, ev := range []EventRecord{
		{SessionID: "s", GameID: "classic", Kind: "cluster_popped", Count: 3},
		{SessionID: "s", GameID: "classic", Kind: "cluster_popped", TileType: tileType(4), Count: 5},
	} {
		if err := store.SaveEvent(ctx, ev); err != nil {
			t.Fatalf("SaveEvent() failed: %v", err)
		}
	}

	stats, err := store.PopStats("classic", "cluster_popped")
	if err != nil {
		t.Fatalf("PopStats() failed: %v", err)
	}
	if len(stats) != 1 || stats[0] != (TypeStats{TileType: 4, Pops: 1, Tiles: 5}) {
		t.Errorf("PopStats() = %+v, want only type 4", stats)
	}

	recent, err := store.RecentEvents("classic", 10)
	if err != nil {
		t.Fatalf("RecentEvents() failed: %v", err)
	}
	if len(recent) != 2 || recent[1].TileType.Valid {
		t.Errorf("RecentEvents() = %+v, want the untyped event read back as null", recent)
	}
}
