package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// noiseTokens are platform boilerplate words that carry no identity signal.
// They are stripped on word boundaries before comparison.
var noiseTokens = map[string]struct{}{
	"vevo":       {},
	"topic":      {},
	"official":   {},
	"music":      {},
	"channel":    {},
	"video":      {},
	"audio":      {},
	"lyric":      {},
	"lyrics":     {},
	"visualizer": {},
	"mv":         {},
}

// ChannelKey returns the resolver-grade canonical form: lowercased, NFKC
// folded, noise tokens removed, all non-alphanumeric characters dropped.
func ChannelKey(s string) string {
	return strings.Join(keyTokens(s), "")
}

// TitleKey returns the verifier-grade canonical form: like ChannelKey but
// words stay separated by single spaces.
func TitleKey(s string) string {
	return strings.Join(keyTokens(s), " ")
}

// keyTokens folds the input and splits it into lowercase alphanumeric tokens
// with noise tokens removed.
func keyTokens(s string) []string {
	folded := strings.ToLower(norm.NFKC.String(s))

	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		current.Reset()
		if _, noisy := noiseTokens[token]; noisy {
			return
		}
		tokens = append(tokens, token)
	}

	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}
