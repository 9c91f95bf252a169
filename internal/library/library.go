package library

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"photokeep/internal/logging"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// IsImage reports whether the filename carries a recognized image extension.
func IsImage(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Index enumerates image files under a library root and partitions them by
// creation year. The walk is lexical, so listings are deterministic for an
// unchanged directory tree.
type Index struct {
	root   string
	logger *slog.Logger
}

// NewIndex constructs an index over the given library root.
func NewIndex(root string, logger *slog.Logger) *Index {
	return &Index{
		root:   root,
		logger: logging.NewComponentLogger(logger, "library"),
	}
}

// Root returns the library root directory.
func (ix *Index) Root() string {
	return ix.root
}

// ListYears returns every year that has at least one photo, newest first.
// A missing root yields an empty list, not an error.
func (ix *Index) ListYears() []int {
	seen := map[int]struct{}{}
	for _, photo := range ix.scan() {
		seen[photo.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// ListPhotos returns the photos whose creation year matches, in lexical
// listing order.
func (ix *Index) ListPhotos(year int) []PhotoFile {
	var photos []PhotoFile
	for _, photo := range ix.scan() {
		if photo.Year == year {
			photos = append(photos, photo)
		}
	}
	return photos
}

func (ix *Index) scan() []PhotoFile {
	var photos []PhotoFile
	err := filepath.WalkDir(ix.root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == ix.root {
				return walkErr
			}
			ix.logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(walkErr))
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if !IsImage(entry.Name()) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			ix.logger.Warn("skipping unreadable file",
				logging.String("path", path),
				logging.Error(err))
			return nil
		}
		rel, err := filepath.Rel(ix.root, path)
		if err != nil {
			rel = entry.Name()
		}
		created := birthTime(path, info)
		photos = append(photos, PhotoFile{
			Name:      rel,
			Path:      path,
			Size:      info.Size(),
			CreatedAt: created,
			Year:      created.Year(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			ix.logger.Warn("library root does not exist",
				logging.String("root", ix.root))
		} else {
			ix.logger.Warn("library scan failed",
				logging.String("root", ix.root),
				logging.Error(err))
		}
		return nil
	}
	return photos
}
