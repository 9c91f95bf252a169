package approval

import (
	"context"
	"fmt"
	"log/slog"

	"photokeep/internal/logging"
	"photokeep/internal/organizer"
	"photokeep/internal/review"
)

// Prompter asks the human a yes/no question. Anything that is not an
// explicit yes counts as no.
type Prompter interface {
	Confirm(prompt string) (bool, error)
}

// Tally summarizes one approval pass over a year's queue.
type Tally struct {
	Year         int
	Reviewed     int
	Deleted      int
	DeleteFailed int
	Rejected     int
}

// Session walks a year's pending review items in insertion order and applies
// the human's decision to each: approve deletes the file, anything else
// rejects it. Every visited item is marked human reviewed and the queue is
// persisted after each decision, so an interrupted session loses at most the
// item being asked about.
type Session struct {
	store    *review.Store
	actions  *organizer.Organizer
	prompter Prompter
	logger   *slog.Logger
}

// NewSession wires an approval session over its collaborators.
func NewSession(store *review.Store, actions *organizer.Organizer, prompter Prompter, logger *slog.Logger) *Session {
	return &Session{
		store:    store,
		actions:  actions,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "approval"),
	}
}

// Review processes every pending item for the year. Failed deletions are
// recorded and the session continues; rerunning a fully reviewed year is a
// no-op.
func (s *Session) Review(ctx context.Context, year int) (Tally, error) {
	tally := Tally{Year: year}
	queue, err := s.store.Load(year)
	if err != nil {
		return tally, err
	}

	for i := range queue.Items {
		if err := ctx.Err(); err != nil {
			return tally, err
		}
		item := &queue.Items[i]
		if item.Status != review.StatusPending {
			continue
		}

		approved, err := s.prompter.Confirm(fmt.Sprintf("Delete %s? %s (queued %s)",
			item.Filename, item.Reason, item.Timestamp.Local().Format("2006-01-02")))
		if err != nil {
			return tally, err
		}

		if approved {
			if deleteErr := s.actions.Delete(item.Filename); deleteErr != nil {
				item.Status = review.StatusDeleteFailed
				tally.DeleteFailed++
				s.logger.Warn("approved deletion failed",
					logging.Int64("id", item.ID),
					logging.String("filename", item.Filename),
					logging.Error(deleteErr))
			} else {
				item.Status = review.StatusDeleted
				tally.Deleted++
			}
		} else {
			item.Status = review.StatusRejected
			tally.Rejected++
		}
		item.HumanReviewed = true
		tally.Reviewed++

		if err := s.store.Save(year, queue); err != nil {
			return tally, err
		}
	}

	if tally.Reviewed > 0 {
		if err := s.store.Save(year, queue); err != nil {
			return tally, err
		}
	}

	s.logger.Info("approval session finished",
		logging.Int(logging.FieldYear, year),
		logging.Int("reviewed", tally.Reviewed),
		logging.Int("deleted", tally.Deleted),
		logging.Int("delete_failed", tally.DeleteFailed),
		logging.Int("rejected", tally.Rejected))
	return tally, nil
}
