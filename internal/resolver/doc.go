// Package resolver answers "what is this artist's channel?".
//
// Resolution consults the durable cache first, then falls through to a
// global channel search, resolution-scope scoring, and a conditional persist.
// Concurrent requests for the same artist key collapse into a single
// in-flight search. A no-confident-match outcome and an unavailable search
// both leave the record unresolved and retryable; neither is an error.
package resolver
