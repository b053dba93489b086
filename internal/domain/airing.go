package domain

import "time"

// AiringStats holds statistics about one airing notification run.
type AiringStats struct {
	Fetched  int
	Matched  int
	Notified int
	Skipped  int
	Errors   int
	Duration time.Duration
}

// AiringState remembers the last episode announced for an anime.
type AiringState struct {
	AnimeID     int64     `db:"anime_id"`
	LastEpisode int       `db:"last_episode"`
	NotifiedAt  time.Time `db:"notified_at"`
}
