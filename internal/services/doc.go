// Package services defines the shared error taxonomy for photokeep
// collaborators. Sentinel markers classify failures so callers can decide
// between reporting a failed result back into the planning transcript and
// aborting the current run outright.
package services
