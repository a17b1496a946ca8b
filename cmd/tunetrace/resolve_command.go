package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/resolver"
	"tunetrace/internal/runner"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve pending artists to channel URLs",
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

				pending, err := store.PendingResolution(runCtx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(pending) == 0 {
					fmt.Fprintln(out, "Nothing to resolve")
					return nil
				}

				search, err := ctx.searchClient()
				if err != nil {
					return err
				}
				res := resolver.New(cfg, store, search, logger)

				pool := runner.New(poolWidth(workers, cfg.Resolve.Workers), logger,
					runner.WithProgress(newProgressPrinter(out)))
				summary := pool.Run(runCtx, "resolve", pending, func(unitCtx context.Context, artist *artiststore.Artist) error {
					_, err := res.Resolve(unitCtx, artist.Name)
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

func poolWidth(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}
