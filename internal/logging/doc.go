// Package logging configures slog output for photokeep.
//
// It provides a console handler that renders compact single-line records
// (timestamp, level, component, message, key=value attrs) plus a JSON handler
// for machine-readable logs, and small helpers for building attributes and
// component-scoped loggers.
package logging
