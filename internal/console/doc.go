// Package console holds the terminal prompt helpers used by the approval
// session and the interactive CLI flows.
package console
