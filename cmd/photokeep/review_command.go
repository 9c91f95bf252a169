package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"photokeep/internal/approval"
	"photokeep/internal/console"
	"photokeep/internal/organizer"
	"photokeep/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review [year]",
		Short: "Approve or reject queued deletion proposals for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.newStore()
			if err != nil {
				return err
			}
			actions, err := ctx.newOrganizer()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				year, err := parseYear(args[0])
				if err != nil {
					return err
				}
				return runReviewYear(cmd, store, actions, logger, out, year)
			}

			if !console.IsInteractive() {
				return errors.New("a year argument is required when not running interactively")
			}
			return runReviewInteractive(cmd, store, actions, logger, out)
		},
	}
	return cmd
}

func runReviewInteractive(cmd *cobra.Command, store *review.Store, actions *organizer.Organizer, logger *slog.Logger, out io.Writer) error {
	years, err := store.Years()
	if err != nil {
		return err
	}
	if len(years) == 0 {
		fmt.Fprintln(out, "No review queues yet")
		return nil
	}
	fmt.Fprintln(out, "Years with review queues:")
	for i, year := range years {
		fmt.Fprintf(out, "  %d) %d\n", i+1, year)
	}

	prompter := console.NewPrompter(os.Stdin, out)
	for {
		answer, err := prompter.ReadLine("Which year should be reviewed (number or year)")
		if err != nil {
			return err
		}
		year, err := selectYear(answer, years)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := runReviewYear(cmd, store, actions, logger, out, year); err != nil {
			return err
		}
		again, err := prompter.Confirm("Review another year?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func runReviewYear(cmd *cobra.Command, store *review.Store, actions *organizer.Organizer, logger *slog.Logger, out io.Writer, year int) error {
	queue, err := store.Load(year)
	if err != nil {
		return err
	}
	pending := len(queue.Pending())
	if pending == 0 {
		fmt.Fprintf(out, "No pending review items for %d\n", year)
		return nil
	}
	fmt.Fprintf(out, "%d pending items for %d\n", pending, year)

	prompter := console.NewPrompter(os.Stdin, out)
	session := approval.NewSession(store, actions, prompter, logger)
	tally, err := session.Review(cmd.Context(), year)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Outcome", "Count"},
		[][]string{
			{"Deleted", strconv.Itoa(tally.Deleted)},
			{"Rejected", strconv.Itoa(tally.Rejected)},
			{"Delete failed", strconv.Itoa(tally.DeleteFailed)},
			{"Reviewed", strconv.Itoa(tally.Reviewed)},
		},
		[]columnAlignment{alignLeft, alignRight}))
	return nil
}
