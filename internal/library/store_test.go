package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/willbradshaw/gameplot/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rating := 8.5
	records := []model.GameRecord{
		{
			Title:            "Hades",
			Platforms:        []string{"Steam", "Switch"},
			HoursPerPlatform: []float64{30, 12},
			HoursTotal:       42,
			Tags:             []string{"Roguelike"},
			Status:           "Completed",
			Rating:           &rating,
			LastPlayed:       "2024-02-10",
			DisplayURL:       "https://store.steampowered.com/app/1145360",
			URLs:             []string{"https://store.steampowered.com/app/1145360", ""},
		},
		{Title: "Outer Wilds", Status: "Playing", HoursTotal: 9},
	}

	importedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.ReplaceAll(ctx, records, importedAt); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 records, got %d", len(loaded))
	}
	hades := loaded[0]
	if hades.Title != "Hades" {
		t.Fatalf("records not ordered by title: %q first", hades.Title)
	}
	if len(hades.Platforms) != 2 || hades.Platforms[1] != "Switch" {
		t.Fatalf("platforms = %v", hades.Platforms)
	}
	if len(hades.HoursPerPlatform) != 2 || hades.HoursPerPlatform[0] != 30 {
		t.Fatalf("hours per platform = %v", hades.HoursPerPlatform)
	}
	if hades.Rating == nil || *hades.Rating != 8.5 {
		t.Fatalf("rating = %v", hades.Rating)
	}
	if loaded[1].Rating != nil {
		t.Fatalf("unrated record came back rated: %v", *loaded[1].Rating)
	}

	got, ok, err := store.LastImportedAt(ctx)
	if err != nil {
		t.Fatalf("LastImportedAt: %v", err)
	}
	if !ok || !got.Equal(importedAt) {
		t.Fatalf("LastImportedAt = %v (ok=%v), want %v", got, ok, importedAt)
	}
}

func TestStoreReplaceAllSwapsContents(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := []model.GameRecord{{Title: "A"}, {Title: "B"}}
	if err := store.ReplaceAll(ctx, first, time.Now()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	second := []model.GameRecord{{Title: "C"}}
	if err := store.ReplaceAll(ctx, second, time.Now()); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Title != "C" {
		t.Fatalf("expected only replacement records, got %+v", loaded)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty library, got %d records", len(loaded))
	}
	if _, ok, err := store.LastImportedAt(ctx); err != nil || ok {
		t.Fatalf("LastImportedAt on fresh store = ok=%v err=%v", ok, err)
	}
}
