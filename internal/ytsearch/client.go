package ytsearch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrSearchUnavailable marks an external search that produced no usable
// output because the tool timed out or exited non-zero. It means "no
// evidence", not "confirmed absence".
var ErrSearchUnavailable = errors.New("search unavailable")

// Candidate is one parsed search result line. Fields are populated according
// to the query shape that produced it; absent fields stay empty.
type Candidate struct {
	Title        string
	DisplayName  string
	UploaderName string
	URL          string
	ChannelURL   string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client invokes yt-dlp and parses its pipe-delimited print output.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a search client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("search binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchChannels runs a global text search and returns channel candidates.
// Lines are (title, channel display name, channel URL).
func (c *Client) SearchChannels(ctx context.Context, query string, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 20
	}
	args := []string{
		"--flat-playlist", "--quiet", "--no-warnings", "--ignore-errors",
		"--print", "%(title)s | %(channel)s | %(channel_url)s",
		fmt.Sprintf("ytsearch%d:%s", limit, query),
	}
	lines, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		fields, ok := splitFields(line, 3)
		if !ok {
			continue
		}
		if fields[1] == "" || fields[2] == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:       fields[0],
			DisplayName: fields[1],
			ChannelURL:  fields[2],
		})
	}
	return candidates, nil
}

// ChannelUploads searches within a channel's content listing, filtered by the
// provided query. Lines are (title, uploader, upload URL).
func (c *Client) ChannelUploads(ctx context.Context, channelURL, query string) ([]Candidate, error) {
	channelURL = strings.TrimRight(strings.TrimSpace(channelURL), "/")
	if channelURL == "" {
		return nil, errors.New("channel URL required")
	}
	target := channelURL + "/search?query=" + strings.ReplaceAll(strings.TrimSpace(query), " ", "+")
	args := []string{
		"--flat-playlist", "--quiet", "--no-warnings",
		"--print", "%(title)s | %(uploader)s | %(webpage_url)s",
		target,
	}
	lines, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		fields, ok := splitFields(line, 3)
		if !ok {
			continue
		}
		if fields[0] == "" || fields[2] == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:        fields[0],
			UploaderName: fields[1],
			URL:          fields[2],
		})
	}
	return candidates, nil
}

// ChannelVideos lists a channel's most recent uploads, capped at limit.
// Lines are (title, upload URL).
func (c *Client) ChannelVideos(ctx context.Context, channelURL string, limit int) ([]Candidate, error) {
	channelURL = strings.TrimRight(strings.TrimSpace(channelURL), "/")
	if channelURL == "" {
		return nil, errors.New("channel URL required")
	}
	args := []string{
		"--flat-playlist", "--quiet", "--no-warnings",
		"--print", "%(title)s | %(webpage_url)s",
		channelURL + "/videos",
	}
	lines, err := c.run(ctx, args)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, line := range lines {
		fields, ok := splitFields(line, 2)
		if !ok {
			continue
		}
		if fields[0] == "" || fields[1] == "" {
			continue
		}
		candidates = append(candidates, Candidate{Title: fields[0], URL: fields[1]})
		if limit > 0 && len(candidates) >= limit {
			break
		}
	}
	return candidates, nil
}

func (c *Client) run(ctx context.Context, args []string) ([]string, error) {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var lines []string
	err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSearchUnavailable, c.binary, err)
	}
	return lines, nil
}

// splitFields splits a pipe-delimited output line and trims each field.
// Returns false when the field count does not match, so callers skip the line.
func splitFields(line string, want int) ([]string, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != want {
		return nil, false
	}
	fields := make([]string, len(parts))
	for i, part := range parts {
		fields[i] = strings.TrimSpace(part)
	}
	return fields, true
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = io.Discard

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			onStdout(scanner.Text())
		}
		scanErr = scanner.Err()
	}()

	waitErr := cmd.Wait()
	wg.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if waitErr != nil {
		return waitErr
	}
	return scanErr
}
