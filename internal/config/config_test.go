package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photokeep/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config file")
	}
	if cfg.Planner.MaxRounds != config.DefaultMaxRounds {
		t.Fatalf("expected default max rounds, got %d", cfg.Planner.MaxRounds)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.LibraryDir) {
		t.Fatalf("expected expanded library dir, got %q", cfg.Paths.LibraryDir)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[paths]
library_dir = "` + filepath.Join(dir, "photos") + `"
review_dir = "` + filepath.Join(dir, "review") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[planner]
max_rounds = 12
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be found, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Planner.MaxRounds != 12 {
		t.Fatalf("expected max_rounds 12, got %d", cfg.Planner.MaxRounds)
	}
}

func TestLoadRejectsBadPlannerBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[planner]\nmax_rounds = 9999\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for max_rounds out of bounds")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown log format")
	}
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("PHOTOKEEP_LLM_API_KEY", "from-env")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Fatalf("expected env fallback api key, got %q", cfg.LLM.APIKey)
	}
	if err := cfg.RequirePlannerCredentials(); err != nil {
		t.Fatalf("expected credentials satisfied, got %v", err)
	}
}

func TestRequirePlannerCredentialsMissing(t *testing.T) {
	t.Setenv("PHOTOKEEP_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	err = cfg.RequirePlannerCredentials()
	if err == nil {
		t.Fatal("expected credential error")
	}
	if !strings.Contains(err.Error(), "llm.api_key") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := config.ExpandPath("~/photos")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "photos") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatalf("sample config missing [paths] section")
	}
}
