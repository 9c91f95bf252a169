// Package llm provides the chat-completion client used by the planner. It
// speaks an OpenRouter-compatible API with function calling, retries
// transient transport failures with capped exponential backoff, and decodes
// the JSON payloads models actually emit (code fences, leading prose).
package llm
