package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"recue/internal/subtitle"
)

func newShiftCommand(ctx *commandContext) *cobra.Command {
	var by time.Duration
	var output string

	cmd := &cobra.Command{
		Use:   "shift <input>",
		Short: "Shift every cue by a fixed offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if by == 0 {
				return errors.New("--by is required and must be non-zero")
			}
			return ctx.runTransform(cmd, "shift", args[0], output, func(subs *subtitle.Subtitles) error {
				subs.Add(by)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&by, "by", 0, "Offset to apply, e.g. 1.5s or -750ms")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to rewriting the input)")
	return cmd
}
