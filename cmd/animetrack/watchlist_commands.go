package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"animetracker/internal/domain"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.identity(); err != nil {
				return err
			}
			if err := a.watchlist.Reload(cmd.Context()); err != nil {
				return err
			}

			entries := a.watchlist.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Your watchlist is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				total := domain.TotalEpisodes(entry.Anime, a.cfg.FallbackEpisodes)
				next := domain.CurrentEpisode(entry.Progress).String()
				if entry.Status == domain.StatusCompleted {
					next = "-"
				}
				rows = append(rows, []string{
					strconv.FormatInt(entry.AnimeID(), 10),
					truncate(entry.Anime.DisplayTitle(), 48),
					string(entry.Status),
					next,
					fmt.Sprintf("%d/%s", domain.WatchedCount(entry.Progress), episodesLabel(entry.Anime)),
					percent(domain.CompletionFraction(entry.Progress, total)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Status", "Next up", "Watched", "Progress"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <anime-id>",
		Short: "Add an anime to your watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := parseAnimeID(args[0])
			if err != nil {
				return err
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.identity(); err != nil {
				return err
			}

			item := a.lookup.Details(cmd.Context(), animeID)
			if item == nil {
				return fmt.Errorf("anime %d not found", animeID)
			}

			a.syncWatchlist(cmd.Context())
			already := a.watchlist.Contains(animeID)
			if err := a.watchlist.Add(cmd.Context(), *item); err != nil {
				return fmt.Errorf("add %s: %w", item.DisplayTitle(), err)
			}
			if already {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already in your watchlist\n", item.DisplayTitle())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", item.DisplayTitle())
			return nil
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <anime-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an anime from your watchlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := parseAnimeID(args[0])
			if err != nil {
				return err
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.identity(); err != nil {
				return err
			}

			a.syncWatchlist(cmd.Context())
			title := strconv.FormatInt(animeID, 10)
			if entry, ok := a.watchlist.Entry(animeID); ok {
				title = entry.Anime.DisplayTitle()
			}
			if err := a.watchlist.Remove(cmd.Context(), animeID); err != nil {
				return fmt.Errorf("remove %s: %w", title, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", title)
			return nil
		},
	}
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var watched, unwatched bool

	cmd := &cobra.Command{
		Use:   "watch <anime-id> <season> <episode>",
		Short: "Toggle the watched flag of an episode",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := parseAnimeID(args[0])
			if err != nil {
				return err
			}
			season, err := parsePositive("season", args[1])
			if err != nil {
				return err
			}
			episode, err := parsePositive("episode", args[2])
			if err != nil {
				return err
			}

			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := a.identity()
			if err != nil {
				return err
			}

			var now bool
			switch {
			case watched || unwatched:
				now = watched
				err = a.watchlist.SetEpisode(cmd.Context(), id, animeID, domain.EpisodeMark{
					Season:  season,
					Episode: episode,
					Watched: watched,
				})
			default:
				a.syncWatchlist(cmd.Context())
				now, err = a.watchlist.ToggleEpisode(cmd.Context(), id, animeID, season, episode)
			}
			switch {
			case errors.Is(err, domain.ErrEntryCompleted):
				return fmt.Errorf("anime %d is completed; progress is read-only", animeID)
			case errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("anime %d is not in your watchlist", animeID)
			case err != nil:
				return err
			}

			state := "unwatched"
			if now {
				state = "watched"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "S%d E%d marked %s\n", season, episode, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watched, "watched", false, "Mark the episode watched instead of toggling")
	cmd.Flags().BoolVar(&unwatched, "unwatched", false, "Mark the episode unwatched instead of toggling")
	cmd.MarkFlagsMutuallyExclusive("watched", "unwatched")

	return cmd
}

func newCompleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <anime-id>",
		Short: "Mark an anime as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := parseAnimeID(args[0])
			if err != nil {
				return err
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			id, err := a.identity()
			if err != nil {
				return err
			}

			a.syncWatchlist(cmd.Context())
			err = a.watchlist.MarkCompleted(cmd.Context(), id, animeID)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("anime %d is not in your watchlist", animeID)
			}
			if err != nil {
				return err
			}

			title := strconv.FormatInt(animeID, 10)
			if entry, ok := a.watchlist.Entry(animeID); ok {
				title = entry.Anime.DisplayTitle()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as completed\n", title)
			return nil
		},
	}
}

func newProgressCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <anime-id>",
		Short: "Show episode progress for a tracked anime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animeID, err := parseAnimeID(args[0])
			if err != nil {
				return err
			}
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.identity(); err != nil {
				return err
			}
			if err := a.watchlist.Reload(cmd.Context()); err != nil {
				return err
			}

			entry, ok := a.watchlist.Entry(animeID)
			if !ok {
				return fmt.Errorf("anime %d is not in your watchlist", animeID)
			}

			total := domain.TotalEpisodes(entry.Anime, a.cfg.FallbackEpisodes)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, entry.Anime.DisplayTitle())
			fmt.Fprintf(out, "Status:   %s\n", entry.Status)
			if entry.Status == domain.StatusWatching {
				fmt.Fprintf(out, "Next up:  %s\n", domain.CurrentEpisode(entry.Progress))
			}
			fmt.Fprintf(out, "Progress: %s\n", percent(domain.CompletionFraction(entry.Progress, total)))

			seasons := domain.Seasons(entry.Anime, total)
			rows := make([][]string, 0, len(seasons))
			for _, season := range domain.SortedSeasonNumbers(seasons) {
				count := 0
				for _, m := range entry.Progress {
					if m.Season == season && m.Watched {
						count++
					}
				}
				rows = append(rows, []string{
					strconv.Itoa(season),
					strconv.Itoa(count),
					strconv.Itoa(seasons[season]),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Season", "Watched", "Episodes"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
