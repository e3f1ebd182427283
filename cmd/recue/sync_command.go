package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recue/internal/subtitle"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var points []string
	var output string

	cmd := &cobra.Command{
		Use:   "sync <input>",
		Short: "Retime cues with a linear correction through two reference points",
		Long: `Retime cues with a linear correction through two reference points.

Each point maps a timestamp as it appears in the file to the timestamp it
should have, e.g. --points 00:00:01.000=00:00:02.000. Exactly two points are
required; cues between and beyond them are scaled and shifted accordingly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(points) != 2 {
				return fmt.Errorf("expected exactly 2 sync points, got %d", len(points))
			}
			var actuals, desireds [2]time.Duration
			for i, point := range points {
				actual, desired, err := parsePoint(point)
				if err != nil {
					return err
				}
				actuals[i] = actual
				desireds[i] = desired
			}
			return ctx.runTransform(cmd, "sync", args[0], output, func(subs *subtitle.Subtitles) error {
				return subs.ApplyLinearCorrection(actuals[0], desireds[0], actuals[1], desireds[1])
			})
		},
	}

	cmd.Flags().StringArrayVar(&points, "points", nil, "Sync point as actual=desired (repeat twice)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to rewriting the input)")
	return cmd
}
