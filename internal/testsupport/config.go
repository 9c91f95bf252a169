package testsupport

import (
	"path/filepath"
	"testing"

	"photokeep/internal/config"
)

// NewConfig returns a Config rooted in per-test temp directories.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.ReviewDir = filepath.Join(base, "review")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}
