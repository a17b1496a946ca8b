package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/runner"
	"tunetrace/internal/verifier"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify resolved channels against representative songs",
		Args:  cobra.NoArgs,
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

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				pending, err := store.PendingVerification(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(pending) == 0 {
					fmt.Fprintln(out, "Nothing to verify")
					return nil
				}

				search, err := ctx.searchClient()
				if err != nil {
					return err
				}
				v := verifier.New(cfg, store, search, logger)

				pool := runner.New(poolWidth(workers, cfg.Verify.Workers), logger,
					runner.WithProgress(newProgressPrinter(out)))
				summary := pool.Run(runCtx, "verify", pending, func(unitCtx context.Context, artist *artiststore.Artist) error {
					_, err := v.Verify(unitCtx, artist)
					return err
				})

				printSummary(out, summary)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool width (defaults to config)")
	return cmd
}
