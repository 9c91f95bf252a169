package review

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a review item. Items are never removed
// from a queue, only transitioned, so the queue doubles as an audit log.
type Status string

const (
	StatusPending      Status = "pending"
	StatusDeleted      Status = "deleted"
	StatusDeleteFailed Status = "delete_failed"
	StatusRejected     Status = "rejected"
)

var allStatuses = []Status{
	StatusPending,
	StatusDeleted,
	StatusDeleteFailed,
	StatusRejected,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Item is one deferred, human-approvable action record.
type Item struct {
	ID            int64     `json:"id"`
	Filename      string    `json:"filename"`
	Reason        string    `json:"reason"`
	Year          int       `json:"year"`
	Timestamp     time.Time `json:"timestamp"`
	Status        Status    `json:"status"`
	HumanReviewed bool      `json:"humanReviewed"`
}

// Queue holds every review item for exactly one year in insertion order.
type Queue struct {
	Year  int
	Items []Item
}

// Pending returns the items still awaiting a decision, preserving insertion
// order.
func (q Queue) Pending() []Item {
	var pending []Item
	for _, item := range q.Items {
		if item.Status == StatusPending {
			pending = append(pending, item)
		}
	}
	return pending
}

// ItemByID returns a pointer to the queue item with the given identifier.
func (q *Queue) ItemByID(id int64) *Item {
	for i := range q.Items {
		if q.Items[i].ID == id {
			return &q.Items[i]
		}
	}
	return nil
}

// Tally counts items per status.
func (q Queue) Tally() map[Status]int {
	tally := make(map[Status]int, len(allStatuses))
	for _, item := range q.Items {
		tally[item.Status]++
	}
	return tally
}
