package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	untitled      = "Untitled"
	noDescription = "No description available."
)

var markupPattern = regexp.MustCompile(`<[^>]+>`)

// CatalogItem is an anime as the external catalog describes it. The watchlist
// keeps a snapshot taken when the entry was added and never re-syncs it.
type CatalogItem struct {
	ID                int64          `json:"id"`
	Title             Title          `json:"title"`
	CoverImage        CoverImage     `json:"coverImage"`
	Description       string         `json:"description,omitempty"`
	Genres            []string       `json:"genres,omitempty"`
	AverageScore      *int           `json:"averageScore,omitempty"`
	Episodes          *int           `json:"episodes,omitempty"`
	Seasons           map[int]int    `json:"seasons,omitempty"`
	NextAiringEpisode *AiringEpisode `json:"nextAiringEpisode,omitempty"`
}

type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english,omitempty"`
}

type CoverImage struct {
	Large string `json:"large,omitempty"`
}

// AiringEpisode describes the next scheduled broadcast. AiringAt is a unix
// timestamp, TimeUntilAiring is in seconds.
type AiringEpisode struct {
	Episode         int   `json:"episode"`
	AiringAt        int64 `json:"airingAt"`
	TimeUntilAiring int64 `json:"timeUntilAiring"`
}

// DisplayTitle prefers the english title and falls back to romaji.
func (c CatalogItem) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title.English); t != "" {
		return t
	}
	if t := strings.TrimSpace(c.Title.Romaji); t != "" {
		return t
	}
	return untitled
}

// CleanDescription returns the synopsis with catalog markup removed.
func (c CatalogItem) CleanDescription() string {
	if c.Description == "" {
		return noDescription
	}
	return strings.TrimSpace(markupPattern.ReplaceAllString(c.Description, ""))
}

// Score renders the average score out of 100, or N/A when the catalog has none.
func (c CatalogItem) Score() string {
	if c.AverageScore == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d/100", *c.AverageScore)
}

// FormatCountdown renders seconds as "Xd Xh Xm".
func FormatCountdown(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dd %dh %dm", d, h, m)
}
