// Command photokeep is the CLI for organizing a local photo library. It
// indexes photos by creation year, finds byte-identical duplicates, runs an
// LLM planning loop that proposes moves and deletions, and walks the human
// through approving queued deletions.
package main
