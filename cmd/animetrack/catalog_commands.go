package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"animetracker/internal/catalog"
	"animetracker/internal/domain"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <title>",
		Short: "Search the catalog by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if !catalog.ValidQuery(title) {
				return fmt.Errorf("search needs at least %d characters", catalog.MinQueryLength)
			}

			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}

			a.syncWatchlist(cmd.Context())
			items := a.lookup.Search(cmd.Context(), title)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results")
				return nil
			}
			printCatalog(cmd.OutOrStdout(), items, a.watchlist.Contains)
			return nil
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <anime-id>",
		Short: "Show catalog details for one anime",
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

			item := a.lookup.Details(cmd.Context(), animeID)
			if item == nil {
				return fmt.Errorf("anime %d not found", animeID)
			}
			a.syncWatchlist(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, item.DisplayTitle())
			if item.Title.English != "" && item.Title.Romaji != "" && item.Title.Romaji != item.Title.English {
				fmt.Fprintf(out, "  (%s)\n", item.Title.Romaji)
			}
			fmt.Fprintf(out, "Score:    %s\n", item.Score())
			fmt.Fprintf(out, "Episodes: %s\n", episodesLabel(*item))
			if len(item.Genres) > 0 {
				fmt.Fprintf(out, "Genres:   %s\n", strings.Join(item.Genres, ", "))
			}
			if item.NextAiringEpisode != nil {
				fmt.Fprintf(out, "Next:     %s\n", countdownLabel(*item))
			}
			if a.watchlist.Contains(item.ID) {
				fmt.Fprintln(out, "In your watchlist")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, item.CleanDescription())
			return nil
		},
	}
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <anime-id>",
		Short: "List recommendations for an anime",
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

			a.syncWatchlist(cmd.Context())
			items := a.lookup.Recommendations(cmd.Context(), animeID)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recommendations")
				return nil
			}
			printCatalog(cmd.OutOrStdout(), items, a.watchlist.Contains)
			return nil
		},
	}
}

func newAiringCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "airing",
		Short: "List anime currently airing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}

			items := a.lookup.Airing(cmd.Context())
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing airing")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					truncate(item.DisplayTitle(), 48),
					item.Score(),
					countdownLabel(item),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Score", "Next episode"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func printCatalog(w io.Writer, items []domain.CatalogItem, tracked func(int64) bool) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		mark := ""
		if tracked(item.ID) {
			mark = "✓"
		}
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			truncate(item.DisplayTitle(), 48),
			episodesLabel(item),
			item.Score(),
			truncate(strings.Join(item.Genres, ", "), 32),
			mark,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"ID", "Title", "Episodes", "Score", "Genres", "Tracked"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	))
}
