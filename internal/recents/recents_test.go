package recents

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client), s
}

func TestAddAndList(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	item := Item{
		ID:    "rec_1",
		Type:  "document",
		Title: "Climate Report",
		Data:  json.RawMessage(`{"pages":[]}`),
	}
	if err := store.Add(ctx, "user-1", item); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := store.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "rec_1" || items[0].Title != "Climate Report" {
		t.Errorf("unexpected item: %+v", items[0])
	}
	if items[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set on add")
	}
}

func TestNewestFirstAndTrimmed(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for i := 0; i < MaxItems+3; i++ {
		item := Item{ID: fmt.Sprintf("rec_%d", i), Type: "document", Title: fmt.Sprintf("Doc %d", i)}
		if err := store.Add(ctx, "user-1", item); err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
	}

	items, err := store.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != MaxItems {
		t.Fatalf("expected list trimmed to %d, got %d", MaxItems, len(items))
	}
	// Newest first
	if items[0].ID != fmt.Sprintf("rec_%d", MaxItems+2) {
		t.Errorf("expected newest item first, got %s", items[0].ID)
	}
}

func TestListEmpty(t *testing.T) {
	store, _ := setupStore(t)

	items, err := store.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %d items", len(items))
	}
}

func TestPerUserIsolation(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, "user-1", Item{ID: "a", Type: "document"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, "user-2", Item{ID: "b", Type: "exam"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items1, _ := store.List(ctx, "user-1")
	items2, _ := store.List(ctx, "user-2")
	if len(items1) != 1 || items1[0].ID != "a" {
		t.Errorf("user-1 list wrong: %+v", items1)
	}
	if len(items2) != 1 || items2[0].ID != "b" {
		t.Errorf("user-2 list wrong: %+v", items2)
	}
}

func TestClear(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, "user-1", Item{ID: "a", Type: "document"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	items, err := store.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list after clear, got %d items", len(items))
	}
}

func TestListSkipsCorruptEntries(t *testing.T) {
	store, s := setupStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, "user-1", Item{ID: "good", Type: "document"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	s.Lpush("recents:user-1", "not json")

	items, err := store.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "good" {
		t.Errorf("expected corrupt entry skipped, got %+v", items)
	}
}
