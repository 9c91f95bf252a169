package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type cliTestEnv struct {
	configPath string
	libraryDir string
	reviewDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.toml"),
		libraryDir: filepath.Join(base, "library"),
		reviewDir:  filepath.Join(base, "review"),
	}

	content := fmt.Sprintf(`[paths]
library_dir = %q
review_dir = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`, env.libraryDir, env.reviewDir, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.MkdirAll(env.libraryDir, 0o755); err != nil {
		t.Fatalf("create library dir: %v", err)
	}
	return env
}

func (e *cliTestEnv) writePhoto(t *testing.T, name string, contents []byte) {
	t.Helper()
	path := filepath.Join(e.libraryDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create photo dir: %v", err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIYearsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "years")
	if err != nil {
		t.Fatalf("years: %v", err)
	}
	if !strings.Contains(out, "No photos found") {
		t.Fatalf("unexpected empty-library output: %q", out)
	}

	env.writePhoto(t, "a.jpg", []byte("aaa"))
	env.writePhoto(t, "b.jpg", []byte("bbb"))
	env.writePhoto(t, "notes.txt", []byte("not a photo"))

	out, _, err = runCLI(t, env.configPath, "years")
	if err != nil {
		t.Fatalf("years: %v", err)
	}
	year := fmt.Sprintf("%d", time.Now().Year())
	if !strings.Contains(out, year) || !strings.Contains(out, "2") {
		t.Fatalf("expected %s with 2 photos, got %q", year, out)
	}
}

func TestCLIDupesCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writePhoto(t, "a.jpg", []byte("same bytes"))
	env.writePhoto(t, "b.jpg", []byte("same bytes"))
	env.writePhoto(t, "c.jpg", []byte("different"))

	year := fmt.Sprintf("%d", time.Now().Year())
	out, _, err := runCLI(t, env.configPath, "dupes", year)
	if err != nil {
		t.Fatalf("dupes: %v", err)
	}
	if !strings.Contains(out, "a.jpg") || !strings.Contains(out, "b.jpg") {
		t.Fatalf("duplicate pair missing from output: %q", out)
	}
	if strings.Contains(out, "c.jpg") {
		t.Fatalf("unique file must not be listed: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "dupes", "1990")
	if err != nil {
		t.Fatalf("dupes empty year: %v", err)
	}
	if !strings.Contains(out, "No duplicates") {
		t.Fatalf("unexpected empty-year output: %q", out)
	}
}

func TestCLIDupesRejectsBadYear(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, env.configPath, "dupes", "soon"); err == nil {
		t.Fatal("expected error for non-numeric year")
	}
	if _, _, err := runCLI(t, env.configPath, "dupes", "1500"); err == nil {
		t.Fatal("expected error for out-of-range year")
	}
}

func TestCLIQueueCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "No review queues") {
		t.Fatalf("unexpected empty list output: %q", out)
	}

	queueFile := filepath.Join(env.reviewDir, "review-2024.json")
	if err := os.MkdirAll(env.reviewDir, 0o755); err != nil {
		t.Fatalf("create review dir: %v", err)
	}
	items := `[
  {"id": 1, "filename": "dup.jpg", "reason": "duplicate of a.jpg", "year": 2024, "timestamp": "2024-06-01T12:00:00Z", "status": "pending", "humanReviewed": false}
]`
	if err := os.WriteFile(queueFile, []byte(items), 0o644); err != nil {
		t.Fatalf("write queue file: %v", err)
	}

	out, _, err = runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(out, "2024") {
		t.Fatalf("queue list missing year: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "queue", "show", "2024")
	if err != nil {
		t.Fatalf("queue show: %v", err)
	}
	if !strings.Contains(out, "dup.jpg") || !strings.Contains(out, "pending") {
		t.Fatalf("queue show missing item: %q", out)
	}

	out, _, err = runCLI(t, env.configPath, "queue", "show", "1999")
	if err != nil {
		t.Fatalf("queue show empty: %v", err)
	}
	if !strings.Contains(out, "empty") {
		t.Fatalf("unexpected empty queue output: %q", out)
	}
}

func TestCLIPlanRequiresCredentials(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PHOTOKEEP_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	_, _, err := runCLI(t, env.configPath, "plan", "2024")
	if err == nil || !strings.Contains(err.Error(), "llm.api_key") {
		t.Fatalf("expected credential error, got %v", err)
	}
}

func TestCLIReviewWithoutPendingItems(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, env.configPath, "review", "2024")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if !strings.Contains(out, "No pending review items") {
		t.Fatalf("unexpected review output: %q", out)
	}
}

func TestCLIConfigInit(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "config.toml")

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout.String(), "Wrote sample configuration") {
		t.Fatalf("unexpected init output: %q", stdout.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") || !strings.Contains(string(data), "[llm]") {
		t.Fatalf("generated config incomplete: %q", string(data))
	}

	// A second init without --overwrite must refuse.
	cmd = newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}
