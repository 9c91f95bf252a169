package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newYearsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "years",
		Short: "List library years with photo counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _, err := ctx.newIndex()
			if err != nil {
				return err
			}

			type yearSummary struct {
				Year   int    `json:"year"`
				Photos int    `json:"photos"`
				Bytes  int64  `json:"bytes"`
				Size   string `json:"size"`
			}
			var summaries []yearSummary
			for _, year := range index.ListYears() {
				var total int64
				photos := index.ListPhotos(year)
				for _, photo := range photos {
					total += photo.Size
				}
				summaries = append(summaries, yearSummary{
					Year:   year,
					Photos: len(photos),
					Bytes:  total,
					Size:   humanize.Bytes(uint64(total)),
				})
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{"years": summaries})
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No photos found in the library")
				return nil
			}
			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				rows = append(rows, []string{
					strconv.Itoa(summary.Year),
					strconv.Itoa(summary.Photos),
					summary.Size,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Year", "Photos", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
