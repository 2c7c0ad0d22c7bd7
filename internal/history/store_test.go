package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"romuless/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := history.Run{
		Mode:      "SORT",
		Root:      "/library",
		Keep:      "en",
		Live:      true,
		Kept:      10,
		Moved:     3,
		StartedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		Elapsed:   1500 * time.Millisecond,
	}
	firstID, err := store.RecordRun(ctx, first, []history.MoveRecord{
		{SourceRel: "NES/Game (Japan).nes", DestRel: "Moved ROMS/NES/Game (Japan).nes"},
	})
	if err != nil {
		t.Fatalf("RecordRun returned error: %v", err)
	}
	if firstID == "" {
		t.Fatal("expected assigned run ID")
	}

	second := first
	second.Mode = "REMERGE"
	second.StartedAt = second.StartedAt.Add(time.Hour)
	if _, err := store.RecordRun(ctx, second, nil); err != nil {
		t.Fatalf("RecordRun (second) returned error: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Mode != "REMERGE" {
		t.Fatalf("newest first ordering broken: %+v", runs)
	}
	if runs[1].ID != firstID || runs[1].Kept != 10 || runs[1].Moved != 3 || !runs[1].Live {
		t.Fatalf("run round-trip mismatch: %+v", runs[1])
	}
	if runs[1].Elapsed != 1500*time.Millisecond {
		t.Fatalf("elapsed round-trip mismatch: %v", runs[1].Elapsed)
	}

	moves, err := store.Moves(ctx, firstID)
	if err != nil {
		t.Fatalf("Moves returned error: %v", err)
	}
	if len(moves) != 1 || moves[0].DestRel != "Moved ROMS/NES/Game (Japan).nes" {
		t.Fatalf("move round-trip mismatch: %+v", moves)
	}
}

func TestRecentRunsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := history.Run{Mode: "SORT", Root: "/library", Keep: "en", StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if _, err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun returned error: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit ignored: got %d runs", len(runs))
	}
}
