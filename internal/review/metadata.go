package review

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tunetrace/internal/logging"
	"tunetrace/internal/resolver"
	"tunetrace/internal/ytsearch"
)

// topUploadCount is how many recent uploads are shown per channel.
const topUploadCount = 5

// ChannelMetadata holds the scraped channel-page details a reviewer sees.
// Fields the page did not expose stay empty.
type ChannelMetadata struct {
	DisplayName string
	Handle      string
	Banner      string
	Avatar      string
	Subscribers string
	Videos      []ytsearch.Candidate
}

// Channel pages embed most details inside a JSON blob rather than the DOM,
// so those fields are pulled by expression.
var (
	bannerPattern = regexp.MustCompile(`https://yt3\.googleusercontent\.com/[A-Za-z0-9_\-][^"]+`)
	avatarPattern = regexp.MustCompile(`"avatar":\{"thumbnails":\[\{"url":"(https://yt3\.googleusercontent\.com/[^"]+)"`)
	titlePattern  = regexp.MustCompile(`"channelMetadataRenderer":\{"title":"([^"]+)"`)
	handlePattern = regexp.MustCompile(`"handle":"([^"]+)"`)
	subsPattern   = regexp.MustCompile(`"subscriberCountText":\{"simpleText":"([^"]+)"`)
)

// MetadataFetcher scrapes channel pages and lists top uploads, memoizing per
// channel for the life of the process.
type MetadataFetcher struct {
	httpClient *http.Client
	resolver   *resolver.Resolver
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]*ChannelMetadata
}

// NewMetadataFetcher constructs a fetcher that shares the resolver's
// per-channel content cache for upload listings.
func NewMetadataFetcher(res *resolver.Resolver, logger *slog.Logger) *MetadataFetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &MetadataFetcher{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		resolver:   res,
		logger:     logging.NewComponentLogger(logger, "review"),
		cache:      make(map[string]*ChannelMetadata),
	}
}

// Fetch returns metadata for a channel. Scrape failures degrade to partial
// metadata rather than erroring; only context cancellation aborts.
func (f *MetadataFetcher) Fetch(ctx context.Context, channelURL string) (*ChannelMetadata, error) {
	f.mu.Lock()
	if meta, ok := f.cache[channelURL]; ok {
		f.mu.Unlock()
		return meta, nil
	}
	f.mu.Unlock()

	meta := &ChannelMetadata{}
	if err := f.scrapePage(ctx, channelURL, meta); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("channel page scrape failed",
			logging.String(logging.FieldChannel, channelURL),
			logging.Error(err))
	}

	videos, err := f.resolver.ChannelContent(ctx, channelURL, topUploadCount)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("upload listing failed",
			logging.String(logging.FieldChannel, channelURL),
			logging.Error(err))
	} else {
		meta.Videos = videos
	}

	f.mu.Lock()
	f.cache[channelURL] = meta
	f.mu.Unlock()
	return meta, nil
}

func (f *MetadataFetcher) scrapePage(ctx context.Context, channelURL string, meta *ChannelMetadata) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, channelURL, nil)
	if err != nil {
		return fmt.Errorf("build page request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch channel page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("channel page returned %s", resp.Status)
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read channel page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse channel page: %w", err)
	}
	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		meta.DisplayName = title
	}
	if image, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		meta.Avatar = image
	}

	text := string(html)
	if meta.DisplayName == "" {
		if m := titlePattern.FindStringSubmatch(text); m != nil {
			meta.DisplayName = m[1]
		} else {
			meta.DisplayName = strings.TrimSuffix(strings.TrimSpace(doc.Find("title").Text()), " - YouTube")
		}
	}
	if meta.Avatar == "" {
		if m := avatarPattern.FindStringSubmatch(text); m != nil {
			meta.Avatar = m[1]
		}
	}
	if m := bannerPattern.FindString(text); m != "" {
		meta.Banner = m
	}
	if m := handlePattern.FindStringSubmatch(text); m != nil {
		meta.Handle = m[1]
	}
	if m := subsPattern.FindStringSubmatch(text); m != nil {
		meta.Subscribers = m[1]
	}
	return nil
}
