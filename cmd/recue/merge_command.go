package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recue/internal/formats"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <input>...",
		Short: "Merge several subtitle files into one ordered timeline",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			started := time.Now()

			subs, err := formats.Open(args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				other, err := formats.Open(path)
				if err != nil {
					return err
				}
				subs.Merge(other)
			}
			if err := formats.Save(output, subs); err != nil {
				return err
			}

			ctx.loggerValue().Info("merge complete",
				"inputs", len(args),
				"output", output,
				"cues", len(subs.Items),
				"elapsed", time.Since(started).Round(time.Millisecond).String(),
			)
			ctx.recordHistory(cmd, "merge", args[0], output, subs)

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d files into %s (%d cues)\n", len(args), output, len(subs.Items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path")
	return cmd
}
