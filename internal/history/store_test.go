package history_test

import (
	"context"
	"path/filepath"
	"testing"

	"sift/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "main", "cmd/main.go"); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := store.Record(ctx, "config", ""); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Query != "config" {
		t.Fatalf("unexpected newest entry: %q", entries[0].Query)
	}
	if entries[0].Selection != "" {
		t.Fatalf("aborted run should have empty selection, got %q", entries[0].Selection)
	}
	if entries[1].Selection != "cmd/main.go" {
		t.Fatalf("unexpected selection: %q", entries[1].Selection)
	}
	if entries[1].CreatedAt.IsZero() {
		t.Fatal("created_at not recorded")
	}
}

func TestRecordSkipsEmptyQuery(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "   ", "x"); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("empty query was recorded: %v", entries)
	}
}

func TestRecentHonoursLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c", "d"} {
		if err := store.Record(ctx, q, ""); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(entries))
	}
	if entries[0].Query != "d" || entries[1].Query != "c" {
		t.Fatalf("unexpected order: %q, %q", entries[0].Query, entries[1].Query)
	}
}

func TestClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, q := range []string{"a", "b"} {
		if err := store.Record(ctx, q, ""); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("Clear deleted %d entries, want 2", deleted)
	}
	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries survived Clear: %v", entries)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Record(context.Background(), "persisted", ""); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Query != "persisted" {
		t.Fatalf("unexpected entries after reopen: %v", entries)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := history.Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
