// Package runner drives batches of per-artist work across a bounded worker
// pool.
//
// The batch operates on a snapshot of records taken before dispatch. Each
// unit persists its own result, so partial progress is always valid: a unit
// failure is recorded and the batch continues, and cancellation stops new
// dispatch while in-flight units finish under their own timeouts. Every run
// carries a correlation ID that tags all batch log lines.
package runner
