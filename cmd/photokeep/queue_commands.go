package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photokeep/internal/review"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the review queues",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueShowCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List review queues per year with status counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.newStore()
			if err != nil {
				return err
			}
			years, err := store.Years()
			if err != nil {
				return err
			}

			type queueSummary struct {
				Year  int                   `json:"year"`
				Items int                   `json:"items"`
				Tally map[review.Status]int `json:"tally"`
			}
			var summaries []queueSummary
			for _, year := range years {
				queue, err := store.Load(year)
				if err != nil {
					return err
				}
				summaries = append(summaries, queueSummary{
					Year:  year,
					Items: len(queue.Items),
					Tally: queue.Tally(),
				})
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{"queues": summaries})
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No review queues yet")
				return nil
			}
			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				rows = append(rows, []string{
					strconv.Itoa(summary.Year),
					strconv.Itoa(summary.Items),
					strconv.Itoa(summary.Tally[review.StatusPending]),
					strconv.Itoa(summary.Tally[review.StatusDeleted]),
					strconv.Itoa(summary.Tally[review.StatusRejected]),
					strconv.Itoa(summary.Tally[review.StatusDeleteFailed]),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Year", "Items", "Pending", "Deleted", "Rejected", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newQueueShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:   "show <year>",
		Short: "Show the review queue for a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.newStore()
			if err != nil {
				return err
			}
			queue, err := store.Load(year)
			if err != nil {
				return err
			}

			items := queue.Items
			if pendingOnly {
				items = queue.Pending()
			}

			if jsonOutput {
				if items == nil {
					items = []review.Item{}
				}
				return writeJSON(cmd, map[string]any{"year": year, "items": items})
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "Review queue for %d is empty\n", year)
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.Filename,
					item.Reason,
					string(item.Status),
					yesNo(item.HumanReviewed),
					item.Timestamp.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Filename", "Reason", "Status", "Reviewed", "Queued"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Only show pending items")
	return cmd
}
