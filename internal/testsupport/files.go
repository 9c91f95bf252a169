package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the target path (and parent directories) with the given
// contents.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePhoto creates an image-named fixture file under the library root.
func WritePhoto(t testing.TB, root, name string, contents []byte) string {
	t.Helper()

	path := filepath.Join(root, name)
	WriteFile(t, path, contents)
	return path
}
