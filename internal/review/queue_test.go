package review_test

import (
	"context"
	"path/filepath"
	"testing"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/config"
	"tunetrace/internal/review"
	"tunetrace/internal/testsupport"
	"tunetrace/internal/verifier"
)

func seedRejected(t *testing.T, store *artiststore.Store, name, song, channelURL string) *artiststore.Artist {
	t.Helper()
	ctx := context.Background()
	artist := testsupport.SeedArtist(t, store, name, song)
	if err := store.SetChannelURL(ctx, name, channelURL); err != nil {
		t.Fatalf("SetChannelURL: %v", err)
	}
	if err := store.SetAutoVerified(ctx, name, artiststore.VerdictFail); err != nil {
		t.Fatalf("SetAutoVerified: %v", err)
	}
	return artist
}

func TestQueueOrdersByExportPriorityThenName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	seedRejected(t, store, "Aphex Twin", "Windowlicker", "https://www.youtube.com/@aphex")
	seedRejected(t, store, "Burial", "Archangel", "https://www.youtube.com/@burial")
	seedRejected(t, store, "Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk")

	// Export order decides priority: Daft Punk first, then Aphex Twin.
	export := verifier.NewReviewExport(cfg.Paths.ReviewDir)
	if err := export.Append("Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk"); err != nil {
		t.Fatalf("export append: %v", err)
	}
	if err := export.Append("Aphex Twin", "Windowlicker", "https://www.youtube.com/@aphex"); err != nil {
		t.Fatalf("export append: %v", err)
	}

	priority, err := review.LoadPriorityIndex(export.Path())
	if err != nil {
		t.Fatalf("LoadPriorityIndex: %v", err)
	}
	queue := review.NewQueue(store, priority)

	next, err := queue.Next(ctx, 0)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	wantOrder := []string{"Daft Punk", "Aphex Twin", "Burial"}
	if len(next) != len(wantOrder) {
		t.Fatalf("got %d records, want %d", len(next), len(wantOrder))
	}
	for i, name := range wantOrder {
		if next[i].Name != name {
			t.Fatalf("position %d = %q, want %q", i, next[i].Name, name)
		}
	}

	limited, err := queue.Next(ctx, 2)
	if err != nil {
		t.Fatalf("Next limited: %v", err)
	}
	if len(limited) != 2 || limited[1].Name != "Aphex Twin" {
		t.Fatalf("limited = %+v", limited)
	}
}

func TestQueueDecisionRemovesRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	artist := seedRejected(t, store, "Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk")
	queue := review.NewQueue(store, nil)

	if err := queue.SetDecision(ctx, artist.ID, artiststore.VerdictPass); err != nil {
		t.Fatalf("SetDecision: %v", err)
	}
	next, err := queue.Next(ctx, 0)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(next) != 0 {
		t.Fatalf("decided record still queued: %+v", next)
	}

	stored, err := store.GetByID(ctx, artist.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Verified() {
		t.Fatal("manual pass not persisted")
	}
}

func TestLoadPriorityIndexMissingFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, func(cfg *config.Config) {})
	priority, err := review.LoadPriorityIndex(filepath.Join(cfg.Paths.ReviewDir, "manual_review.csv"))
	if err != nil {
		t.Fatalf("LoadPriorityIndex: %v", err)
	}
	if len(priority) != 0 {
		t.Fatalf("expected empty index, got %v", priority)
	}
}
