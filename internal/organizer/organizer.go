package organizer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"photokeep/internal/logging"
	"photokeep/internal/services"
)

// Organizer performs the concrete filesystem side effects for the library:
// moving photos into folders and deleting approved files. Every operation
// resolves names relative to the library root and refuses paths that escape
// it.
type Organizer struct {
	root   string
	logger *slog.Logger
}

// New constructs an organizer over the library root.
func New(root string, logger *slog.Logger) *Organizer {
	return &Organizer{
		root:   root,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// MoveToFolder relocates a photo into a folder under the library root,
// creating the folder if needed. It returns the new root-relative path.
func (o *Organizer) MoveToFolder(name, folder string) (string, error) {
	source, err := o.resolve(name)
	if err != nil {
		return "", err
	}
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return "", services.Wrap(services.ErrValidation, "organizer", "move", "folder name required", nil)
	}
	if !filepath.IsLocal(folder) {
		return "", services.Wrap(services.ErrValidation, "organizer", "move", fmt.Sprintf("folder %q escapes the library root", folder), nil)
	}
	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, "organizer", "move", fmt.Sprintf("file %q not found", name), nil)
		}
		return "", services.Wrap(services.ErrTransient, "organizer", "move", "inspect source", err)
	}

	destDir := filepath.Join(o.root, folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrTransient, "organizer", "move", "create destination folder", err)
	}
	target := filepath.Join(destDir, filepath.Base(source))

	if err := os.Rename(source, target); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if copyErr := copyFile(source, target); copyErr != nil {
				return "", services.Wrap(services.ErrTransient, "organizer", "move", "copy across devices", copyErr)
			}
			if err := os.Remove(source); err != nil {
				o.logger.Warn("failed to remove source after cross-device copy", logging.Error(err))
			}
		} else {
			return "", services.Wrap(services.ErrTransient, "organizer", "move", "relocate file", err)
		}
	}

	rel, err := filepath.Rel(o.root, target)
	if err != nil {
		rel = target
	}
	o.logger.Info("moved photo",
		logging.String("from", name),
		logging.String("to", rel))
	return rel, nil
}

// Delete removes a photo from the library. A missing file reports a
// not-found failure to the caller rather than crashing the session.
func (o *Organizer) Delete(name string) error {
	path, err := o.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "organizer", "delete", fmt.Sprintf("file %q not found", name), nil)
		}
		return services.Wrap(services.ErrTransient, "organizer", "delete", "remove file", err)
	}
	o.logger.Info("deleted photo", logging.String("filename", name))
	return nil
}

func (o *Organizer) resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", services.Wrap(services.ErrValidation, "organizer", "resolve", "filename required", nil)
	}
	if filepath.IsAbs(name) || !filepath.IsLocal(name) {
		return "", services.Wrap(services.ErrValidation, "organizer", "resolve", fmt.Sprintf("filename %q escapes the library root", name), nil)
	}
	return filepath.Join(o.root, name), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
