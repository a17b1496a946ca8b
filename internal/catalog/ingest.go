package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/logging"
)

// IngestResult summarizes one playlist ingestion.
type IngestResult struct {
	Tracks  int
	Artists int
}

// Ingest fetches a playlist and upserts one (artist, first track seen) pair
// per artist into the store.
func Ingest(ctx context.Context, client *Client, store *artiststore.Store, playlist string, logger *slog.Logger) (IngestResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ingest")

	tracks, err := client.PlaylistTracks(ctx, playlist)
	if err != nil {
		return IngestResult{}, err
	}

	result := IngestResult{Tracks: len(tracks)}
	seen := make(map[string]struct{}, len(tracks))
	for _, track := range tracks {
		if _, ok := seen[track.Artist]; ok {
			continue
		}
		seen[track.Artist] = struct{}{}
		if _, err := store.UpsertArtist(ctx, track.Artist, track.Title); err != nil {
			return result, fmt.Errorf("upsert %q: %w", track.Artist, err)
		}
		result.Artists++
	}

	logger.Info("playlist ingested",
		logging.Int("tracks", result.Tracks),
		logging.Int("artists", result.Artists))
	return result, nil
}
