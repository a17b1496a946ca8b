package ytsearch_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tunetrace/internal/testsupport"
	"tunetrace/internal/ytsearch"
)

func newClient(t *testing.T, exec ytsearch.Executor) *ytsearch.Client {
	t.Helper()
	client, err := ytsearch.New("yt-dlp", 12, ytsearch.WithExecutor(exec))
	if err != nil {
		t.Fatalf("ytsearch.New: %v", err)
	}
	return client
}

func TestSearchChannelsParsesResults(t *testing.T) {
	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"Get Lucky | Daft Punk | https://www.youtube.com/@daftpunk",
		"Get Lucky reaction | Daft Punk Fan Archive | https://www.youtube.com/channel/UCfan",
	}}
	client := newClient(t, exec)

	cands, err := client.SearchChannels(context.Background(), "Daft Punk", 20)
	if err != nil {
		t.Fatalf("SearchChannels: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[0].DisplayName != "Daft Punk" || cands[0].ChannelURL != "https://www.youtube.com/@daftpunk" {
		t.Fatalf("unexpected first candidate: %+v", cands[0])
	}
	if cands[0].Title != "Get Lucky" {
		t.Fatalf("unexpected title: %q", cands[0].Title)
	}

	args := exec.Args()
	if len(args) != 1 {
		t.Fatalf("got %d invocations, want 1", len(args))
	}
	target := args[0][len(args[0])-1]
	if target != "ytsearch20:Daft Punk" {
		t.Fatalf("unexpected search target %q", target)
	}
}

func TestSearchChannelsSkipsMalformedLines(t *testing.T) {
	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"not enough fields",
		"too | many | fields | here",
		"Get Lucky |  | https://www.youtube.com/@daftpunk",
		"Get Lucky | Daft Punk | https://www.youtube.com/@daftpunk",
	}}
	client := newClient(t, exec)

	cands, err := client.SearchChannels(context.Background(), "Daft Punk", 5)
	if err != nil {
		t.Fatalf("SearchChannels: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].DisplayName != "Daft Punk" {
		t.Fatalf("unexpected candidate: %+v", cands[0])
	}
}

func TestChannelUploadsBuildsSearchTarget(t *testing.T) {
	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"Daft Punk - Get Lucky (Official Audio) | Daft Punk | https://www.youtube.com/watch?v=abc",
	}}
	client := newClient(t, exec)

	cands, err := client.ChannelUploads(context.Background(), "https://www.youtube.com/@daftpunk/", "Get Lucky")
	if err != nil {
		t.Fatalf("ChannelUploads: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	if cands[0].URL != "https://www.youtube.com/watch?v=abc" {
		t.Fatalf("unexpected URL: %q", cands[0].URL)
	}
	if cands[0].UploaderName != "Daft Punk" {
		t.Fatalf("unexpected uploader: %q", cands[0].UploaderName)
	}

	args := exec.Args()
	target := args[0][len(args[0])-1]
	if target != "https://www.youtube.com/@daftpunk/search?query=Get+Lucky" {
		t.Fatalf("unexpected target %q", target)
	}
}

func TestChannelVideosCapsAtLimit(t *testing.T) {
	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"One | https://www.youtube.com/watch?v=1",
		"Two | https://www.youtube.com/watch?v=2",
		"Three | https://www.youtube.com/watch?v=3",
	}}
	client := newClient(t, exec)

	cands, err := client.ChannelVideos(context.Background(), "https://www.youtube.com/@daftpunk", 2)
	if err != nil {
		t.Fatalf("ChannelVideos: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2", len(cands))
	}
	if cands[1].Title != "Two" {
		t.Fatalf("unexpected second candidate: %+v", cands[1])
	}

	args := exec.Args()
	target := args[0][len(args[0])-1]
	if !strings.HasSuffix(target, "/videos") {
		t.Fatalf("unexpected target %q", target)
	}
}

func TestRunFailureIsSearchUnavailable(t *testing.T) {
	exec := &testsupport.ScriptedExecutor{Err: errors.New("exit status 1")}
	client := newClient(t, exec)

	cands, err := client.SearchChannels(context.Background(), "Daft Punk", 5)
	if !errors.Is(err, ytsearch.ErrSearchUnavailable) {
		t.Fatalf("err = %v, want ErrSearchUnavailable", err)
	}
	if cands != nil {
		t.Fatalf("expected nil candidates, got %v", cands)
	}
}

func TestRunTimeoutIsSearchUnavailable(t *testing.T) {
	slow := testsupport.ExecutorFunc(func(ctx context.Context, binary string, args []string, onStdout func(string)) error {
		<-ctx.Done()
		return ctx.Err()
	})
	client, err := ytsearch.New("yt-dlp", 0, ytsearch.WithExecutor(slow))
	if err != nil {
		t.Fatalf("ytsearch.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.SearchChannels(ctx, "Daft Punk", 5); !errors.Is(err, ytsearch.ErrSearchUnavailable) {
		t.Fatalf("err = %v, want ErrSearchUnavailable", err)
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ytsearch.New("  ", 12); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
