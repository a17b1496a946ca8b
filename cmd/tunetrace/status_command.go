package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the artist database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Summarize(cmd.Context())
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Artists", strconv.Itoa(stats.Total)},
				{"Resolved", strconv.Itoa(stats.Resolved)},
				{"Awaiting resolution", strconv.Itoa(stats.AwaitingResolve)},
				{"Awaiting verification", strconv.Itoa(stats.AwaitingVerified)},
				{"Auto-verified", strconv.Itoa(stats.AutoVerified)},
				{"Auto-rejected", strconv.Itoa(stats.AutoFailed)},
				{"Manual verdicts", strconv.Itoa(stats.ManualOverrides)},
				{"Awaiting review", strconv.Itoa(stats.AwaitingReview)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
