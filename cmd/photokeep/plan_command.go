package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"photokeep/internal/console"
	"photokeep/internal/dupes"
	"photokeep/internal/planner"
	"photokeep/internal/services/llm"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [year]",
		Short: "Run the LLM organizer over a year of photos",
		Long: `Runs the planning loop for one year: the model lists photos, finds
duplicates, moves keepers into folders, and queues deletion proposals for
human review. Nothing is deleted; run 'photokeep review' afterwards to
decide on the queued items. Without a year argument the command prompts
for years interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequirePlannerCredentials(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			index, _, err := ctx.newIndex()
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

			client := llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				Referer:        cfg.LLM.Referer,
				Title:          cfg.LLM.Title,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})
			dispatcher := planner.NewDispatcher(client, index,
				dupes.NewDetector(index, logger), store, actions,
				cfg.Planner.MaxRounds, logger)

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				year, err := parseYear(args[0])
				if err != nil {
					return err
				}
				return runPlanYear(cmd, dispatcher, out, year)
			}

			if !console.IsInteractive() {
				return errors.New("a year argument is required when not running interactively")
			}
			return runPlanInteractive(cmd, dispatcher, index.ListYears(), out)
		},
	}
	return cmd
}

func runPlanInteractive(cmd *cobra.Command, dispatcher *planner.Dispatcher, years []int, out io.Writer) error {
	if len(years) == 0 {
		fmt.Fprintln(out, "No photos found in the library")
		return nil
	}
	fmt.Fprintln(out, "Library years:")
	for i, year := range years {
		fmt.Fprintf(out, "  %d) %d\n", i+1, year)
	}

	prompter := console.NewPrompter(os.Stdin, out)
	for {
		answer, err := prompter.ReadLine("Which year should be organized (number or year)")
		if err != nil {
			return err
		}
		year, err := selectYear(answer, years)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := runPlanYear(cmd, dispatcher, out, year); err != nil {
			return err
		}
		again, err := prompter.Confirm("Process another year?")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func runPlanYear(cmd *cobra.Command, dispatcher *planner.Dispatcher, out io.Writer, year int) error {
	fmt.Fprintf(out, "Planning %d...\n", year)
	outcome, err := dispatcher.Run(cmd.Context(), year)
	if err != nil {
		return fmt.Errorf("plan %d: %w", year, err)
	}

	fmt.Fprintln(out, outcome.Summary)
	fmt.Fprintf(out, "Rounds: %d  Tool calls: %d  Moved: %d  Queued for review: %d\n",
		outcome.Rounds, outcome.ToolCalls, outcome.Moved, outcome.Enqueued)
	if outcome.Enqueued > 0 {
		fmt.Fprintf(out, "Run 'photokeep review %d' to decide on the queued deletions\n", year)
	}
	return nil
}
