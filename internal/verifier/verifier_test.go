package verifier_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"testing"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/config"
	"tunetrace/internal/testsupport"
	"tunetrace/internal/verifier"
	"tunetrace/internal/ytsearch"
)

func newVerifier(t *testing.T, cfg *config.Config, store *artiststore.Store, exec ytsearch.Executor) *verifier.Verifier {
	t.Helper()
	client, err := ytsearch.New(cfg.Search.Binary, cfg.Search.TimeoutSeconds, ytsearch.WithExecutor(exec))
	if err != nil {
		t.Fatalf("ytsearch.New: %v", err)
	}
	return verifier.New(cfg, store, client, nil)
}

func resolvedArtist(t *testing.T, store *artiststore.Store, name, song, channelURL string) *artiststore.Artist {
	t.Helper()
	ctx := context.Background()
	testsupport.SeedArtist(t, store, name, song)
	if err := store.SetChannelURL(ctx, name, channelURL); err != nil {
		t.Fatalf("SetChannelURL: %v", err)
	}
	artist, err := store.GetByName(ctx, name)
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	return artist
}

func TestVerifyAcceptsOfficialAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	artist := resolvedArtist(t, store, "Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk")

	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"Daft Punk - Get Lucky (Official Audio) | Daft Punk | https://www.youtube.com/watch?v=audio",
		"Get Lucky (Live in Paris) | Daft Punk | https://www.youtube.com/watch?v=live",
	}}
	v := newVerifier(t, cfg, store, exec)

	verdict, err := v.Verify(context.Background(), artist)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verdict != artiststore.VerdictPass {
		t.Fatalf("verdict = %v, want pass", verdict)
	}

	stored, err := store.GetByName(context.Background(), "Daft Punk")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if !stored.Verified() {
		t.Fatal("verified artist not persisted as pass")
	}
	if stored.ChannelURL != artist.ChannelURL {
		t.Fatalf("verification mutated channel URL: %q", stored.ChannelURL)
	}
}

func TestVerifyRejectsLiveOnlyChannel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	artist := resolvedArtist(t, store, "Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk")

	exec := &testsupport.ScriptedExecutor{Lines: []string{
		"Get Lucky (Live in Paris) | Daft Punk | https://www.youtube.com/watch?v=live",
	}}
	v := newVerifier(t, cfg, store, exec)

	verdict, err := v.Verify(context.Background(), artist)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verdict != artiststore.VerdictFail {
		t.Fatalf("verdict = %v, want fail", verdict)
	}

	stored, err := store.GetByName(context.Background(), "Daft Punk")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if !stored.NeedsReview() {
		t.Fatal("rejected artist should need review")
	}

	file, err := os.Open(v.Export().Path())
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("export has %d rows, want header + 1", len(rows))
	}
	want := []string{"Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk"}
	for i, field := range want {
		if rows[1][i] != field {
			t.Fatalf("export row = %v, want %v", rows[1], want)
		}
	}
}

func TestVerifySearchUnavailableLeavesVerdictUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	artist := resolvedArtist(t, store, "Daft Punk", "Get Lucky", "https://www.youtube.com/@daftpunk")

	exec := &testsupport.ScriptedExecutor{Err: errors.New("exit status 1")}
	v := newVerifier(t, cfg, store, exec)

	verdict, err := v.Verify(context.Background(), artist)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verdict != artiststore.VerdictUnknown {
		t.Fatalf("verdict = %v, want unknown", verdict)
	}

	pending, err := store.PendingVerification(context.Background())
	if err != nil {
		t.Fatalf("PendingVerification: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "Daft Punk" {
		t.Fatalf("record should stay pending, got %+v", pending)
	}
	if _, err := os.Stat(v.Export().Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("unavailable search must not export a rejection")
	}
}

func TestVerifyRequiresChannelAndSong(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	v := newVerifier(t, cfg, store, &testsupport.ScriptedExecutor{})
	ctx := context.Background()

	if _, err := v.Verify(ctx, &artiststore.Artist{Name: "Daft Punk", SongName: "Get Lucky"}); err == nil {
		t.Fatal("expected error without channel URL")
	}
	if _, err := v.Verify(ctx, &artiststore.Artist{Name: "Daft Punk", ChannelURL: "https://www.youtube.com/@daftpunk"}); err == nil {
		t.Fatal("expected error without song")
	}
	if _, err := v.Verify(ctx, nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}
