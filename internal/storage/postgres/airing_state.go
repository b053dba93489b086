package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"animetracker/internal/domain"
)

// AiringStateStore remembers which episode was last announced per anime so
// the notifier publishes each broadcast once.
type AiringStateStore struct {
	db *sqlx.DB
}

func NewAiringStateStore(db *sqlx.DB) *AiringStateStore {
	return &AiringStateStore{db: db}
}

// LastEpisodes maps anime id to the last announced episode. Anime never
// announced are absent from the result.
func (s *AiringStateStore) LastEpisodes(ctx context.Context, animeIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int)
	if len(animeIDs) == 0 {
		return result, nil
	}

	var states []domain.AiringState
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &states,
		"SELECT anime_id, last_episode, notified_at FROM airing_state WHERE anime_id = ANY($1)",
		pq.Array(animeIDs),
	)
	if err != nil {
		return nil, err
	}

	for _, st := range states {
		result[st.AnimeID] = st.LastEpisode
	}
	return result, nil
}

func (s *AiringStateStore) Update(ctx context.Context, state *domain.AiringState) error {
	query := `
		INSERT INTO airing_state (anime_id, last_episode, notified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (anime_id) DO UPDATE SET
			last_episode = EXCLUDED.last_episode,
			notified_at = EXCLUDED.notified_at
		WHERE airing_state.last_episode < EXCLUDED.last_episode`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.AnimeID,
		state.LastEpisode,
		state.NotifiedAt,
	)
	return err
}
