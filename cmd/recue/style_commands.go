package main

import (
	"github.com/spf13/cobra"

	"recue/internal/subtitle"
)

func newOptimizeCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "optimize <input>",
		Short: "Drop styles and regions no cue references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTransform(cmd, "optimize", args[0], output, func(subs *subtitle.Subtitles) error {
				subs.Optimize()
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to rewriting the input)")
	return cmd
}

func newStripCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "strip <input>",
		Short: "Remove all styling, leaving plain timed text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTransform(cmd, "strip", args[0], output, func(subs *subtitle.Subtitles) error {
				subs.RemoveStyling()
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to rewriting the input)")
	return cmd
}
