package resolver

import (
	"sync"

	"tunetrace/internal/ytsearch"
)

// ContentCache memoizes per-channel upload listings for the lifetime of the
// process. Presence is the fast path; two workers racing on a cold key may
// each fetch once and the later Put wins, which is harmless because entries
// for the same channel are equivalent.
type ContentCache struct {
	mu      sync.Mutex
	entries map[string][]ytsearch.Candidate
}

// NewContentCache returns an empty cache.
func NewContentCache() *ContentCache {
	return &ContentCache{entries: make(map[string][]ytsearch.Candidate)}
}

// Get returns the cached listing for a channel, if present.
func (c *ContentCache) Get(channelURL string) ([]ytsearch.Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cands, ok := c.entries[channelURL]
	return cands, ok
}

// Put stores a channel's listing, replacing any existing entry.
func (c *ContentCache) Put(channelURL string, cands []ytsearch.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[channelURL] = cands
}
