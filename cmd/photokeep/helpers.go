package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseYear accepts a four-digit year argument within a sane range for a
// personal photo library.
func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", arg)
	}
	if year < 1826 || year > time.Now().Year()+1 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}

// selectYear resolves an interactive answer against a descending year list:
// a small number is a 1-based index into the list, anything else must be a
// literal 4-digit year.
func selectYear(answer string, years []int) (int, error) {
	trimmed := strings.TrimSpace(answer)
	if index, err := strconv.Atoi(trimmed); err == nil && index >= 1 && index <= len(years) {
		return years[index-1], nil
	}
	return parseYear(trimmed)
}
