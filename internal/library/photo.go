package library

import "time"

// PhotoFile describes one image file in the library. Name is the path
// relative to the library root and is the identifier used across the review
// queue and planner tools.
type PhotoFile struct {
	Name      string    `json:"filename"`
	Path      string    `json:"-"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	Year      int       `json:"year"`
}
