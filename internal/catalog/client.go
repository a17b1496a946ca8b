package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"tunetrace/internal/config"
	"tunetrace/internal/logging"
)

const (
	envClientID     = "CATALOG_CLIENT_ID"
	envClientSecret = "CATALOG_CLIENT_SECRET"
)

// Track is one playlist entry reduced to the fields ingestion needs.
type Track struct {
	Artist string
	Title  string
}

// Client talks to the catalog service.
type Client struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	pageSize     int
	httpClient   *http.Client
	logger       *slog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient constructs a catalog client from configuration. Credentials fall
// back to the CATALOG_CLIENT_ID / CATALOG_CLIENT_SECRET environment
// variables, optionally sourced from the configured .env file.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	clientID, clientSecret, err := resolveCredentials(&cfg.Catalog)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.Catalog.BaseURL, "/"),
		tokenURL:     cfg.Catalog.TokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		pageSize:     cfg.Catalog.PageSize,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logging.NewComponentLogger(logger, "catalog"),
	}, nil
}

func resolveCredentials(cfg *config.Catalog) (string, string, error) {
	clientID := cfg.ClientID
	clientSecret := cfg.ClientSecret

	var fileValues map[string]string
	if cfg.EnvFile != "" {
		values, err := godotenv.Read(cfg.EnvFile)
		if err != nil {
			return "", "", fmt.Errorf("read env file: %w", err)
		}
		fileValues = values
	}
	lookup := func(key string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fileValues[key]
	}
	if clientID == "" {
		clientID = lookup(envClientID)
	}
	if clientSecret == "" {
		clientSecret = lookup(envClientSecret)
	}
	if clientID == "" || clientSecret == "" {
		return "", "", errors.New("catalog credentials missing: set them in config, the environment, or a .env file")
	}
	return clientID, clientSecret, nil
}

// ParsePlaylistID accepts a bare playlist ID or a playlist URL and returns
// the ID.
func ParsePlaylistID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("playlist required")
	}
	if !strings.Contains(value, "/") {
		return value, nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse playlist URL: %w", err)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "playlist" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("no playlist ID in %q", value)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if token.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	c.token = token.AccessToken
	// Refresh a minute early to avoid using a token at the edge of expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

type tracksPage struct {
	Items []struct {
		Track struct {
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"track"`
	} `json:"items"`
	Next  string `json:"next"`
	Total int    `json:"total"`
}

// PlaylistTracks fetches every track of a playlist in page-size batches.
// The playlist argument may be a bare ID or a playlist URL.
func (c *Client) PlaylistTracks(ctx context.Context, playlist string) ([]Track, error) {
	playlistID, err := ParsePlaylistID(playlist)
	if err != nil {
		return nil, err
	}

	pageSize := c.pageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	var tracks []Track
	for offset := 0; ; offset += pageSize {
		page, err := c.fetchTracksPage(ctx, playlistID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			if item.Track.Name == "" || len(item.Track.Artists) == 0 {
				continue
			}
			tracks = append(tracks, Track{
				Artist: item.Track.Artists[0].Name,
				Title:  item.Track.Name,
			})
		}
		if page.Next == "" || len(page.Items) < pageSize {
			break
		}
	}

	c.logger.Info("playlist fetched",
		logging.String("playlist", playlistID),
		logging.Int("tracks", len(tracks)))
	return tracks, nil
}

func (c *Client) fetchTracksPage(ctx context.Context, playlistID string, limit, offset int) (*tracksPage, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/playlists/%s/tracks?limit=%d&offset=%d", c.baseURL, url.PathEscape(playlistID), limit, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tracks request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tracks request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var page tracksPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode tracks page: %w", err)
	}
	return &page, nil
}
