package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/config"
	"tunetrace/internal/logging"
	"tunetrace/internal/match"
	"tunetrace/internal/normalize"
	"tunetrace/internal/ytsearch"
)

// Resolver maps artist names to channel URLs, caching results durably.
type Resolver struct {
	store   *artiststore.Store
	search  *ytsearch.Client
	logger  *slog.Logger
	host    string
	limit   int
	group   singleflight.Group
	content *ContentCache
}

// New constructs a resolver. The content cache is owned by the resolver and
// shared with any collaborator that lists channel uploads.
func New(cfg *config.Config, store *artiststore.Store, search *ytsearch.Client, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		store:   store,
		search:  search,
		logger:  logging.NewComponentLogger(logger, "resolver"),
		host:    strings.TrimRight(cfg.Search.ResultHost, "/"),
		limit:   cfg.Search.ChannelLimit,
		content: NewContentCache(),
	}
}

// ContentCache returns the resolver-owned per-channel listing cache.
func (r *Resolver) ContentCache() *ContentCache {
	return r.content
}

// Resolve returns the artist's channel URL, resolving and persisting on a
// cache miss. An empty URL with a nil error means no confident match was
// found or the external search was unavailable; both leave the record
// unresolved and eligible for a future run.
func (r *Resolver) Resolve(ctx context.Context, artist string) (string, error) {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return "", errors.New("artist name required")
	}

	cached, err := r.store.ChannelURL(ctx, artist)
	if err != nil {
		return "", err
	}
	if cached != "" {
		return cached, nil
	}

	key := normalize.ChannelKey(artist)
	if key == "" {
		key = strings.ToLower(artist)
	}
	result, err, _ := r.group.Do(key, func() (any, error) {
		return r.resolveUncached(ctx, artist)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (r *Resolver) resolveUncached(ctx context.Context, artist string) (string, error) {
	// A flight that completed while we queued behind the cache check may
	// already have persisted a result.
	if cached, err := r.store.ChannelURL(ctx, artist); err == nil && cached != "" {
		return cached, nil
	}

	cands, err := r.search.SearchChannels(ctx, artist+" official channel", r.limit)
	if err != nil {
		if errors.Is(err, ytsearch.ErrSearchUnavailable) {
			r.logger.Warn("channel search unavailable",
				logging.String(logging.FieldArtist, artist),
				logging.Error(err))
			return "", nil
		}
		return "", err
	}

	best, score, ok := match.BestChannel(artist, cands)
	if !ok {
		r.logger.Info("no confident channel match",
			logging.String(logging.FieldArtist, artist),
			logging.Int("candidates", len(cands)))
		return "", nil
	}

	channelURL := absolutize(best.ChannelURL, r.host)
	if err := r.store.SetChannelURL(ctx, artist, channelURL); err != nil {
		return "", fmt.Errorf("persist resolution: %w", err)
	}
	r.logger.Info("resolved channel",
		logging.String(logging.FieldArtist, artist),
		logging.String(logging.FieldChannel, channelURL),
		logging.Float64(logging.FieldScore, score))
	return channelURL, nil
}

// ChannelContent lists a channel's recent uploads through the content cache,
// capped at limit when positive.
func (r *Resolver) ChannelContent(ctx context.Context, channelURL string, limit int) ([]ytsearch.Candidate, error) {
	cands, ok := r.content.Get(channelURL)
	if !ok {
		fetched, err := r.search.ChannelVideos(ctx, channelURL, 0)
		if err != nil {
			return nil, err
		}
		r.content.Put(channelURL, fetched)
		cands = fetched
	}
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return cands, nil
}

func absolutize(channelURL, host string) string {
	if channelURL == "" || strings.Contains(channelURL, "://") {
		return channelURL
	}
	if !strings.HasPrefix(channelURL, "/") {
		channelURL = "/" + channelURL
	}
	return host + channelURL
}
