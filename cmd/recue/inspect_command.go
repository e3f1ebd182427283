package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"recue/internal/formats"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Summarize a subtitle file and list its cues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := formats.Open(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			format, _ := formats.Detect(args[0])
			fmt.Fprintf(out, "File:     %s\n", args[0])
			fmt.Fprintf(out, "Format:   %s\n", format)
			fmt.Fprintf(out, "Cues:     %d\n", len(subs.Items))
			fmt.Fprintf(out, "Duration: %s\n", formatClock(subs.Duration()))
			fmt.Fprintf(out, "Styles:   %d\n", len(subs.Styles))
			fmt.Fprintf(out, "Regions:  %d\n", len(subs.Regions))

			if len(subs.Items) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(subs.Items))
			for i, item := range subs.Items {
				if limit > 0 && i >= limit {
					break
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					formatClock(item.StartAt),
					formatClock(item.EndAt),
					truncate(item.String(), 60),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Text"},
				rows, 1,
			))
			if limit > 0 && len(subs.Items) > limit {
				fmt.Fprintf(out, "... %d more cues (raise --limit to see them)\n", len(subs.Items)-limit)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of cues to list (0 lists all)")
	return cmd
}
