// Package review supports the human pass over channels that failed
// automatic verification.
//
// The queue surfaces auto-rejected records without a manual verdict, ordered
// by their position in the verifier's CSV export and then by name. The
// metadata fetcher scrapes channel-page details and lists top uploads so a
// reviewer can judge a channel at a glance; the HTTP front end that renders
// them lives outside this module.
package review
