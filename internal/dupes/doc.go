// Package dupes detects byte-identical photos within a year bucket by
// hashing file contents. The first file seen in listing order owns the
// group; later matches are reported as duplicates of it.
package dupes
