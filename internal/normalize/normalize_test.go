package normalize_test

import (
	"testing"

	"tunetrace/internal/normalize"
)

func TestChannelKey(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Daft Punk", "daftpunk"},
		{"noise tokens stripped", "Daft Punk Official Channel", "daftpunk"},
		{"vevo stripped", "RihannaVEVO official", "rihannavevo"},
		{"punctuation dropped", "PLAT.mp3", "platmp3"},
		{"topic suffix", "Burial - Topic", "burial"},
		{"empty", "", ""},
		{"only noise", "Official Music Video", ""},
		{"fullwidth folded", "ＡＢＣ１２３", "abc123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalize.ChannelKey(tc.input); got != tc.want {
				t.Fatalf("ChannelKey(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestChannelKeyKeepsJoinedNoiseWords(t *testing.T) {
	// Noise stripping is word-boundary based; fused words keep their identity.
	if got := normalize.ChannelKey("officialmusic"); got != "officialmusic" {
		t.Fatalf("expected fused token kept, got %q", got)
	}
}

func TestTitleKey(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Get Lucky", "get lucky"},
		{"official audio stripped", "Daft Punk - Get Lucky (Official Audio)", "daft punk get lucky"},
		{"lyrics stripped", "Get Lucky Lyrics", "get lucky"},
		{"live kept", "Get Lucky (Live in Paris)", "get lucky live in paris"},
		{"whitespace collapsed", "  Get   Lucky  ", "get lucky"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalize.TitleKey(tc.input); got != tc.want {
				t.Fatalf("TitleKey(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizationIsIdempotent(t *testing.T) {
	inputs := []string{
		"Daft Punk Official Channel",
		"PLAT.mp3",
		"Get Lucky (Official Audio)",
		"ＡＢＣ１２３ remix",
		"",
		"Official Music Video",
	}
	for _, input := range inputs {
		once := normalize.ChannelKey(input)
		if twice := normalize.ChannelKey(once); twice != once {
			t.Fatalf("ChannelKey not idempotent for %q: %q -> %q", input, once, twice)
		}
		once = normalize.TitleKey(input)
		if twice := normalize.TitleKey(once); twice != once {
			t.Fatalf("TitleKey not idempotent for %q: %q -> %q", input, once, twice)
		}
	}
}
