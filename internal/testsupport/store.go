package testsupport

import (
	"context"
	"testing"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/config"
)

// MustOpenStore opens an artist store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *artiststore.Store {
	t.Helper()

	store, err := artiststore.Open(cfg)
	if err != nil {
		t.Fatalf("artiststore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedArtist upserts an artist row for tests and returns it.
func SeedArtist(t testing.TB, store *artiststore.Store, name, song string) *artiststore.Artist {
	t.Helper()

	artist, err := store.UpsertArtist(context.Background(), name, song)
	if err != nil {
		t.Fatalf("store.UpsertArtist: %v", err)
	}
	return artist
}
