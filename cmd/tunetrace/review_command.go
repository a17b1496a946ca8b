package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/resolver"
	"tunetrace/internal/review"
	"tunetrace/internal/verifier"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Work the manual-review backlog",
	}

	reviewCmd.AddCommand(newReviewNextCommand(ctx))
	reviewCmd.AddCommand(newReviewInspectCommand(ctx))
	reviewCmd.AddCommand(newReviewDecideCommand(ctx))
	return reviewCmd
}

func newReviewQueue(ctx *commandContext, store *artiststore.Store) (*review.Queue, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	priority, err := review.LoadPriorityIndex(verifier.NewReviewExport(cfg.Paths.ReviewDir).Path())
	if err != nil {
		return nil, err
	}
	return review.NewQueue(store, priority), nil
}

func newReviewNextCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "next",
		Short: "List records awaiting a manual verdict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			queue, err := newReviewQueue(ctx, store)
			if err != nil {
				return err
			}
			artists, err := queue.Next(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(artists) == 0 {
				fmt.Fprintln(out, "Review backlog is empty")
				return nil
			}

			rows := make([][]string, 0, len(artists))
			for _, artist := range artists {
				rows = append(rows, []string{
					strconv.FormatInt(artist.ID, 10),
					artist.Name,
					artist.SongName,
					artist.ChannelURL,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Artist", "Song", "Channel"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum records to list (0 for all)")
	return cmd
}

func newReviewInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <artist>",
		Short: "Show channel-page details for one queued record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			artist, err := store.GetByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if artist.ChannelURL == "" {
				return fmt.Errorf("artist %q has no resolved channel", artist.Name)
			}

			search, err := ctx.searchClient()
			if err != nil {
				return err
			}
			fetcher := review.NewMetadataFetcher(resolver.New(cfg, store, search, logger), logger)
			meta, err := fetcher.Fetch(cmd.Context(), artist.ChannelURL)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Artist:      %s\n", artist.Name)
			fmt.Fprintf(out, "Song:        %s\n", artist.SongName)
			fmt.Fprintf(out, "Channel:     %s\n", artist.ChannelURL)
			if meta.DisplayName != "" {
				fmt.Fprintf(out, "Page name:   %s\n", meta.DisplayName)
			}
			if meta.Handle != "" {
				fmt.Fprintf(out, "Handle:      %s\n", meta.Handle)
			}
			if meta.Subscribers != "" {
				fmt.Fprintf(out, "Subscribers: %s\n", meta.Subscribers)
			}
			if len(meta.Videos) > 0 {
				fmt.Fprintln(out, "Top uploads:")
				for _, video := range meta.Videos {
					fmt.Fprintf(out, "  %s  %s\n", video.Title, video.URL)
				}
			}
			return nil
		},
	}
}

func newReviewDecideCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "decide <id> <yes|no|clear>",
		Short: "Record a manual verdict for one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record ID %q", args[0])
			}
			var verdict artiststore.Verdict
			switch args[1] {
			case "yes":
				verdict = artiststore.VerdictPass
			case "no":
				verdict = artiststore.VerdictFail
			case "clear":
				verdict = artiststore.VerdictUnknown
			default:
				return errors.New("verdict must be yes, no, or clear")
			}

			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			queue, err := newReviewQueue(ctx, store)
			if err != nil {
				return err
			}
			if err := queue.SetDecision(cmd.Context(), id, verdict); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for record %d\n", verdict, id)
			return nil
		},
	}
}
