// Package ytsearch wraps the external yt-dlp binary behind a small client.
//
// Three query shapes are supported: global channel discovery via ytsearchN:,
// search listings within a channel, and a channel's recent uploads. Output is
// the tool's pipe-delimited --print format; lines with the wrong field count
// are skipped silently. Invocations carry a hard timeout, and any timeout or
// non-zero exit surfaces as ErrSearchUnavailable with zero candidates —
// callers must treat that as "no evidence", never as confirmed absence.
package ytsearch
