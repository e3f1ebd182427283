package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"recue/internal/subtitle"
)

func newFragmentCommand(ctx *commandContext) *cobra.Command {
	var window time.Duration
	var output string

	cmd := &cobra.Command{
		Use:   "fragment <input>",
		Short: "Split cues at fixed time-window boundaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if window <= 0 {
				return errors.New("--window must be a positive duration")
			}
			return ctx.runTransform(cmd, "fragment", args[0], output, func(subs *subtitle.Subtitles) error {
				subs.Fragment(window)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&window, "window", 0, "Fragment window, e.g. 2s")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to rewriting the input)")
	return cmd
}

func newUnfragmentCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "unfragment <input>",
		Short: "Merge adjacent cues that carry identical text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTransform(cmd, "unfragment", args[0], output, func(subs *subtitle.Subtitles) error {
				subs.Unfragment()
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to rewriting the input)")
	return cmd
}
