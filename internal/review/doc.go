// Package review persists the per-year queues of deferred file actions and
// exposes the status transitions a human applies to them.
//
// Each year maps 1:1 to a review-<year>.json file holding a JSON array of
// items in insertion order. Items are only ever appended or
// status-transitioned, never removed, so a queue is also the audit trail of
// every proposal made for that year. Every mutation rewrites the whole file
// atomically; an advisory lock serializes read-modify-write cycles.
package review
