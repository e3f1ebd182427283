package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past operations",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded operations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in configuration")
				return nil
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No recorded operations")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					strconv.FormatInt(record.ID, 10),
					record.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					record.Command,
					truncatePath(record.Source, 40),
					truncatePath(record.Output, 40),
					record.Format,
					strconv.Itoa(record.Cues),
					formatClock(record.Duration),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "When", "Command", "Source", "Output", "Format", "Cues", "Duration"},
				rows, 1, 7, 8,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show (0 shows all)")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled in configuration")
				return nil
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}
}
