// Package library enumerates image files under the configured photo root and
// buckets them by filesystem creation year.
//
// The walk is recursive and lexical, so two scans of an unchanged tree see
// the same files in the same order. Year always derives from the file's
// creation timestamp (statx birth time on Linux, modification time
// elsewhere), never from EXIF data. Missing roots and unreadable entries are
// logged and skipped rather than surfaced as errors.
package library
