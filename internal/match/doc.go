// Package match scores search candidates against a target artist or song
// name.
//
// The base signal is a Levenshtein similarity ratio over canonical forms from
// the normalize package, adjusted by token bonuses and penalties that prefer
// official uploads over live/remix clutter. Resolution (channel discovery)
// and verification (upload lookup within a channel) are distinct scopes with
// their own adjustments and acceptance thresholds; below threshold the
// outcome is "no match", never a low-confidence guess.
package match
