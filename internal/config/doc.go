// Package config loads, normalizes, and validates photokeep configuration
// from TOML. Path fields are tilde-expanded and made absolute; the planning
// service credential falls back to environment variables so it can be
// supplied out of band.
package config
