package dupes

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"

	"photokeep/internal/library"
	"photokeep/internal/logging"
)

// Group collects the files that share one fingerprint within a year. The
// original is the first file seen in listing order; it is never reported as
// a duplicate itself, so N identical files yield N-1 duplicates pointing at
// the same original.
type Group struct {
	Fingerprint string   `json:"fingerprint"`
	Original    string   `json:"original"`
	Duplicates  []string `json:"duplicates"`
	Size        int64    `json:"size"`
}

// Report summarizes one duplicate scan.
type Report struct {
	Year            int     `json:"year"`
	TotalPhotos     int     `json:"totalPhotos"`
	DuplicateGroups []Group `json:"duplicateGroups"`
}

// DuplicateCount returns the number of files flagged as duplicates.
func (r Report) DuplicateCount() int {
	count := 0
	for _, group := range r.DuplicateGroups {
		count += len(group.Duplicates)
	}
	return count
}

// Detector finds byte-identical photos within a year bucket.
type Detector struct {
	index  *library.Index
	logger *slog.Logger
}

// NewDetector constructs a detector over the given index.
func NewDetector(index *library.Index, logger *slog.Logger) *Detector {
	return &Detector{
		index:  index,
		logger: logging.NewComponentLogger(logger, "dupes"),
	}
}

// FindDuplicates hashes every photo in the year and groups files sharing a
// fingerprint. Unreadable files are skipped with a warning. The result is
// deterministic because the index lists files in lexical order.
func (d *Detector) FindDuplicates(year int) Report {
	photos := d.index.ListPhotos(year)
	report := Report{Year: year, TotalPhotos: len(photos)}

	groups := map[string]int{} // fingerprint -> index into report.DuplicateGroups
	firstSeen := map[string]library.PhotoFile{}

	for _, photo := range photos {
		fingerprint, err := Fingerprint(photo.Path)
		if err != nil {
			d.logger.Warn("skipping unreadable photo",
				logging.String("filename", photo.Name),
				logging.Error(err))
			continue
		}
		original, seen := firstSeen[fingerprint]
		if !seen {
			firstSeen[fingerprint] = photo
			continue
		}
		idx, exists := groups[fingerprint]
		if !exists {
			report.DuplicateGroups = append(report.DuplicateGroups, Group{
				Fingerprint: fingerprint,
				Original:    original.Name,
				Size:        original.Size,
			})
			idx = len(report.DuplicateGroups) - 1
			groups[fingerprint] = idx
		}
		report.DuplicateGroups[idx].Duplicates = append(report.DuplicateGroups[idx].Duplicates, photo.Name)
	}

	d.logger.Info("duplicate scan complete",
		logging.Int(logging.FieldYear, year),
		logging.Int("total_photos", report.TotalPhotos),
		logging.Int("duplicate_groups", len(report.DuplicateGroups)),
		logging.Int("duplicates", report.DuplicateCount()))
	return report
}

// Fingerprint computes the SHA-256 digest over the file's full byte stream.
// Equal fingerprints mean byte-identical content at this library's scale.
func Fingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
