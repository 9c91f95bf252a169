package organizer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"photokeep/internal/logging"
	"photokeep/internal/organizer"
	"photokeep/internal/services"
	"photokeep/internal/testsupport"
)

func newOrganizer(t *testing.T) (*organizer.Organizer, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return organizer.New(cfg.Paths.LibraryDir, logging.NewNop()), cfg.Paths.LibraryDir
}

func TestMoveToFolderCreatesDestination(t *testing.T) {
	org, root := newOrganizer(t)
	testsupport.WritePhoto(t, root, "sunset.jpg", []byte("pixels"))

	rel, err := org.MoveToFolder("sunset.jpg", "favorites")
	if err != nil {
		t.Fatalf("MoveToFolder failed: %v", err)
	}
	if rel != filepath.Join("favorites", "sunset.jpg") {
		t.Fatalf("unexpected target path %q", rel)
	}
	if _, err := os.Stat(filepath.Join(root, "favorites", "sunset.jpg")); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "sunset.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("source should be gone, stat err=%v", err)
	}
}

func TestMoveToFolderIdempotentDestination(t *testing.T) {
	org, root := newOrganizer(t)
	testsupport.WritePhoto(t, root, "a.jpg", []byte("a"))
	testsupport.WritePhoto(t, root, "b.jpg", []byte("b"))

	if _, err := org.MoveToFolder("a.jpg", "keep"); err != nil {
		t.Fatalf("first move failed: %v", err)
	}
	// Destination folder already exists.
	if _, err := org.MoveToFolder("b.jpg", "keep"); err != nil {
		t.Fatalf("second move failed: %v", err)
	}
}

func TestMoveToFolderMissingSource(t *testing.T) {
	org, _ := newOrganizer(t)
	_, err := org.MoveToFolder("ghost.jpg", "keep")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveToFolderRejectsEscapingPaths(t *testing.T) {
	org, root := newOrganizer(t)
	testsupport.WritePhoto(t, root, "a.jpg", []byte("a"))

	if _, err := org.MoveToFolder("../a.jpg", "keep"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for escaping filename, got %v", err)
	}
	if _, err := org.MoveToFolder("a.jpg", "../outside"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for escaping folder, got %v", err)
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	org, root := newOrganizer(t)
	testsupport.WritePhoto(t, root, "old.jpg", []byte("bytes"))

	if err := org.Delete("old.jpg"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "old.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file should be deleted, stat err=%v", err)
	}
}

func TestDeleteMissingFileReportsNotFound(t *testing.T) {
	org, _ := newOrganizer(t)
	err := org.Delete("never-existed.jpg")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteInSubdirectory(t *testing.T) {
	org, root := newOrganizer(t)
	testsupport.WritePhoto(t, root, filepath.Join("trips", "x.jpg"), []byte("x"))

	if err := org.Delete(filepath.Join("trips", "x.jpg")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}
