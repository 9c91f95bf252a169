// Package planner runs the LLM-driven organization loop for one library
// year. The model works through a closed tool catalog (listing, duplicate
// scanning, folder moves, review enqueueing) and the dispatcher executes
// each call, feeding results back until the model produces a final summary.
// There is no deletion tool: removals always pass through the human review
// queue.
package planner
