// Package verifier checks that a resolved channel actually hosts an
// artist's representative song.
//
// It searches the channel's content listing for the song, scores titles with
// verification-scope rules, and persists the outcome as the automatic
// verdict. Records that fail verification are appended to a CSV export for
// human review. An unavailable search leaves the verdict untouched so the
// record stays eligible for a future run.
package verifier
