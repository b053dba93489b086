package domain

import "time"

type Status string

const (
	StatusWatching  Status = "watching"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusWatching || s == StatusCompleted
}

// CanTransition reports whether an entry may move from s to next.
// Completion is one-way: there is no path back to watching.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	return s == StatusWatching && next == StatusCompleted
}

// EpisodeMark is the watched flag of a single (season, episode) pair.
type EpisodeMark struct {
	Season  int  `json:"season"`
	Episode int  `json:"episode"`
	Watched bool `json:"watched"`
}

// WatchlistEntry is one user's tracked relationship to one catalog item.
type WatchlistEntry struct {
	ID        string        `json:"_id"`
	UserID    string        `json:"userId"`
	Anime     CatalogItem   `json:"anime"`
	Status    Status        `json:"status"`
	Progress  []EpisodeMark `json:"progress"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (e WatchlistEntry) AnimeID() int64 {
	return e.Anime.ID
}

func (e WatchlistEntry) IsWatched(season, episode int) bool {
	for _, m := range e.Progress {
		if m.Season == season && m.Episode == episode {
			return m.Watched
		}
	}
	return false
}

// WatchlistEvent is what gets published after a watchlist mutation.
type WatchlistEvent struct {
	Action    string          `json:"action"`
	UserID    string          `json:"userId"`
	AnimeID   int64           `json:"animeId"`
	Entry     *WatchlistEntry `json:"entry,omitempty"`
	Airing    *AiringEpisode  `json:"airing,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	ActionAdded     = "added"
	ActionRemoved   = "removed"
	ActionProgress  = "progress"
	ActionCompleted = "completed"
	ActionAiring    = "episode_airing"
)
