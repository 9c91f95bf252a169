package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dupes <year>",
		Short: "Scan a year for byte-identical duplicate photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			detector, err := ctx.newDetector()
			if err != nil {
				return err
			}

			report := detector.FindDuplicates(year)
			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			if len(report.DuplicateGroups) == 0 {
				fmt.Fprintf(out, "No duplicates among %d photos from %d\n", report.TotalPhotos, year)
				return nil
			}

			rows := make([][]string, 0, len(report.DuplicateGroups))
			var wasted int64
			for _, group := range report.DuplicateGroups {
				wasted += group.Size * int64(len(group.Duplicates))
				rows = append(rows, []string{
					group.Original,
					strings.Join(group.Duplicates, ", "),
					humanize.Bytes(uint64(group.Size)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Original", "Duplicates", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(out, "%s duplicates across %s groups, %s reclaimable\n",
				strconv.Itoa(report.DuplicateCount()),
				strconv.Itoa(len(report.DuplicateGroups)),
				humanize.Bytes(uint64(wasted)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
