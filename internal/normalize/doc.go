// Package normalize produces the canonical text forms used for fuzzy
// comparison of artist names, channel names, and upload titles.
//
// Two grades exist and must not be mixed in a single comparison: ChannelKey
// collapses to a bare alphanumeric string for channel-name matching, while
// TitleKey keeps single-space word separators for upload-title matching.
// Both are pure, deterministic, and idempotent.
package normalize
