package review_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tunetrace/internal/resolver"
	"tunetrace/internal/review"
	"tunetrace/internal/testsupport"
	"tunetrace/internal/ytsearch"
)

const channelPage = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Daft Punk">
<meta property="og:image" content="https://yt3.googleusercontent.com/avatar123">
<title>Daft Punk - YouTube</title>
</head><body>
<script>var ytInitialData = {"handle":"@daftpunk","subscriberCountText":{"simpleText":"4.2M subscribers"}};</script>
</body></html>`

func TestFetchScrapesMetadataAndListsUploads(t *testing.T) {
	var pageHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHits.Add(1)
		_, _ = w.Write([]byte(channelPage))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"One More Time | https://www.youtube.com/watch?v=1",
		"Get Lucky | https://www.youtube.com/watch?v=2",
		"Around the World | https://www.youtube.com/watch?v=3",
		"Harder Better Faster Stronger | https://www.youtube.com/watch?v=4",
		"Digital Love | https://www.youtube.com/watch?v=5",
		"Voyager | https://www.youtube.com/watch?v=6",
	}}
	client, err := ytsearch.New(cfg.Search.Binary, cfg.Search.TimeoutSeconds, ytsearch.WithExecutor(exec))
	if err != nil {
		t.Fatalf("ytsearch.New: %v", err)
	}
	res := resolver.New(cfg, store, client, nil)
	fetcher := review.NewMetadataFetcher(res, nil)

	meta, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.DisplayName != "Daft Punk" {
		t.Fatalf("display name = %q", meta.DisplayName)
	}
	if meta.Handle != "@daftpunk" {
		t.Fatalf("handle = %q", meta.Handle)
	}
	if meta.Subscribers != "4.2M subscribers" {
		t.Fatalf("subscribers = %q", meta.Subscribers)
	}
	if meta.Avatar != "https://yt3.googleusercontent.com/avatar123" {
		t.Fatalf("avatar = %q", meta.Avatar)
	}
	if len(meta.Videos) != 5 {
		t.Fatalf("got %d uploads, want 5", len(meta.Videos))
	}
	if meta.Videos[0].Title != "One More Time" {
		t.Fatalf("first upload = %+v", meta.Videos[0])
	}

	// Second fetch is served entirely from cache.
	if _, err := fetcher.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch cached: %v", err)
	}
	if pageHits.Load() != 1 {
		t.Fatalf("channel page fetched %d times, want 1", pageHits.Load())
	}
	if exec.Calls() != 1 {
		t.Fatalf("uploads listed %d times, want 1", exec.Calls())
	}
}

func TestFetchDegradesWhenScrapeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"One More Time | https://www.youtube.com/watch?v=1",
	}}
	client, err := ytsearch.New(cfg.Search.Binary, cfg.Search.TimeoutSeconds, ytsearch.WithExecutor(exec))
	if err != nil {
		t.Fatalf("ytsearch.New: %v", err)
	}
	fetcher := review.NewMetadataFetcher(resolver.New(cfg, store, client, nil), nil)

	meta, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.DisplayName != "" {
		t.Fatalf("unexpected display name %q", meta.DisplayName)
	}
	if len(meta.Videos) != 1 {
		t.Fatalf("uploads should still be listed, got %+v", meta.Videos)
	}
}
