package main

import (
	"github.com/spf13/cobra"

	"recue/internal/subtitle"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a subtitle file to the format implied by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runTransform(cmd, "convert", args[0], args[1], func(*subtitle.Subtitles) error {
				return nil
			})
		},
	}
}
