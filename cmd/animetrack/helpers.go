package main

import (
	"fmt"
	"strconv"
	"strings"

	"animetracker/internal/domain"
)

var errSignInRequired = fmt.Errorf("no user set; pass --user, set user_id in the config or ANIMETRACK_USER_ID: %w", domain.ErrAuthRequired)

func parseAnimeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid anime id %q", raw)
	}
	return id, nil
}

func parsePositive(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", name, raw)
	}
	return n, nil
}

func episodesLabel(item domain.CatalogItem) string {
	if item.Episodes == nil || *item.Episodes <= 0 {
		return "?"
	}
	return strconv.Itoa(*item.Episodes)
}

func countdownLabel(item domain.CatalogItem) string {
	if item.NextAiringEpisode == nil {
		return "-"
	}
	return fmt.Sprintf("Ep %d in %s", item.NextAiringEpisode.Episode, domain.FormatCountdown(item.NextAiringEpisode.TimeUntilAiring))
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
