// Package artiststore persists artist records backed by SQLite.
//
// Each row tracks one artist: a representative song, the resolved channel
// URL, and two tri-state verification verdicts. The automatic verdict comes
// from upload matching; the manual verdict is a human override and always
// wins when set. Schema changes are applied as additive column migrations so
// existing databases survive upgrades untouched.
package artiststore
