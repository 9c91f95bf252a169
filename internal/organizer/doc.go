// Package organizer wraps the filesystem side effects photokeep may apply to
// a library: folder moves proposed by the planner and deletions approved by
// a human. Failures return descriptive errors so callers can report them and
// continue with the next file.
package organizer
