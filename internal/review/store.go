package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"photokeep/internal/logging"
	"photokeep/internal/services"
)

// Store persists one review queue per year as a human-readable JSON array
// under the review directory. Queues are loaded whole, mutated in memory,
// and written back whole; an advisory file lock guards each
// read-modify-write so two sessions cannot interleave against the same year.
type Store struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewStore constructs a store rooted at the given review directory.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "review"),
		now:    time.Now,
	}
}

// Path returns the backing file for a year's queue.
func (s *Store) Path(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("review-%d.json", year))
}

func (s *Store) lockPath(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("review-%d.lock", year))
}

func (s *Store) withLock(year int, fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "review", "ensure review dir", "failed to create review directory", err)
	}
	lock := flock.New(s.lockPath(year))
	if err := lock.Lock(); err != nil {
		return services.Wrap(services.ErrTransient, "review", "lock queue", "failed to acquire queue lock", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn()
}

// Enqueue appends a pending item for the year and persists the full queue
// before returning. Repeated filenames are allowed; the queue records every
// proposal it is given.
func (s *Store) Enqueue(year int, filename, reason string) (Item, error) {
	var item Item
	err := s.withLock(year, func() error {
		queue, err := s.Load(year)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		item = Item{
			ID:        nextID(queue, now),
			Filename:  filename,
			Reason:    reason,
			Year:      year,
			Timestamp: now,
			Status:    StatusPending,
		}
		queue.Items = append(queue.Items, item)
		return s.save(year, queue)
	})
	if err != nil {
		return Item{}, err
	}
	s.logger.Info("enqueued review item",
		logging.Int64("id", item.ID),
		logging.String("filename", item.Filename),
		logging.Int(logging.FieldYear, year))
	return item, nil
}

// nextID allocates a monotonic identifier, unique within the queue. The
// base is the current time in milliseconds; rapid enqueues within one
// millisecond fall back to lastID+1.
func nextID(queue Queue, now time.Time) int64 {
	id := now.UnixMilli()
	if n := len(queue.Items); n > 0 {
		if last := queue.Items[n-1].ID; id <= last {
			id = last + 1
		}
	}
	return id
}

// Load reads and parses the year's backing file. A missing file yields an
// empty queue; a malformed file is logged and treated as empty so the
// operator can keep working.
func (s *Store) Load(year int) (Queue, error) {
	queue := Queue{Year: year}
	data, err := os.ReadFile(s.Path(year))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return queue, nil
		}
		return queue, services.Wrap(services.ErrTransient, "review", "load queue", "failed to read queue file", err)
	}
	if len(data) == 0 {
		return queue, nil
	}
	if err := json.Unmarshal(data, &queue.Items); err != nil {
		s.logger.Error("queue file is malformed, starting empty",
			logging.String("path", s.Path(year)),
			logging.Error(err))
		queue.Items = nil
		return queue, nil
	}
	return queue, nil
}

// Save serializes the entire queue and replaces the backing file via a temp
// file and rename, so readers never observe a half-written queue.
func (s *Store) Save(year int, queue Queue) error {
	return s.withLock(year, func() error {
		return s.save(year, queue)
	})
}

func (s *Store) save(year int, queue Queue) error {
	items := queue.Items
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrTransient, "review", "save queue", "failed to encode queue", err)
	}

	path := s.Path(year)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return services.Wrap(services.ErrTransient, "review", "save queue", "failed to write temp file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return services.Wrap(services.ErrTransient, "review", "save queue", "failed to replace queue file", err)
	}
	return nil
}

// Years lists every year that has a backing queue file, newest first.
func (s *Store) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrTransient, "review", "list queues", "failed to read review directory", err)
	}
	var years []int
	for i := len(entries) - 1; i >= 0; i-- {
		name := entries[i].Name()
		var year int
		if n, err := fmt.Sscanf(name, "review-%d.json", &year); err == nil && n == 1 && filepath.Ext(name) == ".json" {
			years = append(years, year)
		}
	}
	return years, nil
}
