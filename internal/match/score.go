package match

import (
	"strings"
	"unicode/utf8"

	edlib "github.com/hbollon/go-edlib"

	"tunetrace/internal/normalize"
	"tunetrace/internal/ytsearch"
)

// Acceptance thresholds per scope. Scores below threshold yield no match.
const (
	ResolveThreshold = 0.6
	VerifyThreshold  = 0.4
)

// lengthWindow bounds how far a channel name's canonical form may differ in
// length from the artist's before the candidate is discarded outright.
const lengthWindow = 3

// Score adjustments. Equality and containment are mutually exclusive;
// equality wins.
const (
	exactBonus       = 0.3
	containmentBonus = 0.2
	officialBonus    = 0.1
	preferredBonus   = 0.1
	handleBonus      = 0.15
	artistURLBonus   = 0.25

	channelPenalty = 0.05
	uploadPenalty  = 0.1
)

// preferredTokens mark clean studio uploads; penaltyTokens mark alternate
// versions that are poor evidence for the canonical recording. Both are
// matched against raw lowercased text, since canonical forms strip some of
// these words as noise.
var (
	preferredTokens = []string{"lyric", "audio"}
	penaltyTokens   = []string{"live", "remix", "cover", "performance"}
)

// Similarity is the Levenshtein similarity ratio between two strings in
// [0, 1]: one minus the edit distance over the longer rune length.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(edlib.LevenshteinDistance(a, b))/float64(longest)
}

// ChannelScore rates a channel candidate against an artist name. The second
// return is false when the candidate fails the length pre-filter and must be
// discarded without scoring.
func ChannelScore(artist string, cand ytsearch.Candidate) (float64, bool) {
	artistKey := normalize.ChannelKey(artist)
	nameKey := normalize.ChannelKey(cand.DisplayName)
	if delta := len(artistKey) - len(nameKey); delta > lengthWindow || delta < -lengthWindow {
		return 0, false
	}

	score := Similarity(artistKey, nameKey)

	// Empty canonical forms would satisfy equality or containment trivially.
	if artistKey != "" && nameKey != "" {
		switch {
		case artistKey == nameKey:
			score += exactBonus
		case strings.Contains(artistKey, nameKey) || strings.Contains(nameKey, artistKey):
			score += containmentBonus
		}
	}

	rawName := strings.ToLower(cand.DisplayName)
	if strings.Contains(rawName, "official") {
		score += officialBonus
	}
	rawText := rawName + " " + strings.ToLower(cand.Title)
	if containsAny(rawText, preferredTokens) {
		score += preferredBonus
	}
	if containsAny(rawText, penaltyTokens) {
		score -= channelPenalty
	}

	url := strings.ToLower(cand.ChannelURL)
	if strings.Contains(url, "/@") {
		score += handleBonus
	}
	if strings.Contains(url, "officialartistchannel") {
		score += artistURLBonus
	}
	return score, true
}

// UploadScore rates an upload candidate's title against a song name.
func UploadScore(song string, cand ytsearch.Candidate) float64 {
	score := Similarity(normalize.TitleKey(song), normalize.TitleKey(cand.Title))

	raw := strings.ToLower(cand.Title)
	if containsAny(raw, preferredTokens) {
		score += preferredBonus
	}
	if containsAny(raw, penaltyTokens) {
		score -= uploadPenalty
	}
	return score
}

// AcceptResolution reports whether a channel score clears the resolution
// threshold.
func AcceptResolution(score float64) bool {
	return score >= ResolveThreshold
}

// AcceptVerification reports whether an upload score clears the verification
// threshold.
func AcceptVerification(score float64) bool {
	return score >= VerifyThreshold
}

// BestChannel returns the highest-scoring accepted channel candidate. Ties
// keep the earliest candidate, preserving search ranking. The boolean is
// false when no candidate clears the threshold.
func BestChannel(artist string, cands []ytsearch.Candidate) (ytsearch.Candidate, float64, bool) {
	var best ytsearch.Candidate
	bestScore := -1.0
	for _, cand := range cands {
		score, ok := ChannelScore(artist, cand)
		if !ok {
			continue
		}
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	if !AcceptResolution(bestScore) {
		return ytsearch.Candidate{}, 0, false
	}
	return best, bestScore, true
}

// BestUpload returns the highest-scoring accepted upload candidate, with the
// same tie handling as BestChannel.
func BestUpload(song string, cands []ytsearch.Candidate) (ytsearch.Candidate, float64, bool) {
	var best ytsearch.Candidate
	bestScore := -1.0
	for _, cand := range cands {
		score := UploadScore(song, cand)
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	if !AcceptVerification(bestScore) {
		return ytsearch.Candidate{}, 0, false
	}
	return best, bestScore, true
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
