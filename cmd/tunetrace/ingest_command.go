package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunetrace/internal/catalog"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <playlist>",
		Short: "Ingest artists from a catalog playlist ID or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBatchLock(func() error {
				store, cfg, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}

				client, err := catalog.NewClient(cfg, logger)
				if err != nil {
					return err
				}

				result, err := catalog.Ingest(cmd.Context(), client, store, args[0], logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d artists from %d tracks\n", result.Artists, result.Tracks)
				return nil
			})
		},
	}
}
