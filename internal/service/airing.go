package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"animetracker/internal/domain"
)

// AiringService tells watching users when the next episode of a tracked
// anime is announced. Each (anime, episode) pair is announced once.
type AiringService struct {
	source    AiringSource
	entries   WatchlistStore
	state     AiringStateStore
	publisher Publisher
	logger    *slog.Logger
}

func NewAiringService(
	source AiringSource,
	entries WatchlistStore,
	state AiringStateStore,
	publisher Publisher,
	logger *slog.Logger,
) *AiringService {
	return &AiringService{
		source:    source,
		entries:   entries,
		state:     state,
		publisher: publisher,
		logger:    logger.With("component", "airing"),
	}
}

func (s *AiringService) Notify(ctx context.Context) (*domain.AiringStats, error) {
	startTime := time.Now()
	s.logger.Info("starting airing check")

	items, err := s.source.Airing(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch airing: %w", err)
	}

	items = withNextEpisode(items)
	s.logger.Debug("fetched airing anime", "count", len(items))

	pending, err := s.filterPending(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("filter pending: %w", err)
	}

	stats := &domain.AiringStats{
		Fetched: len(items),
		Skipped: len(items) - len(pending),
	}

	watchers, err := s.watchersByAnime(ctx, pending)
	if err != nil {
		return stats, fmt.Errorf("load watchers: %w", err)
	}

	for i := range pending {
		item := &pending[i]
		entries := watchers[item.ID]
		stats.Matched += len(entries)

		failed := false
		for j := range entries {
			if err := s.announce(ctx, &entries[j], item.NextAiringEpisode); err != nil {
				s.logger.Warn("publish airing event",
					"anime_id", item.ID,
					"user_id", entries[j].UserID,
					"error", err,
				)
				stats.Errors++
				failed = true
				continue
			}
			stats.Notified++
		}

		// Leave the state behind on failure so the next run retries.
		if failed {
			continue
		}

		err := s.state.Update(ctx, &domain.AiringState{
			AnimeID:     item.ID,
			LastEpisode: item.NextAiringEpisode.Episode,
			NotifiedAt:  time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("update airing state", "anime_id", item.ID, "error", err)
			stats.Errors++
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("airing check completed",
		"fetched", stats.Fetched,
		"matched", stats.Matched,
		"notified", stats.Notified,
		"skipped", stats.Skipped,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

func withNextEpisode(items []domain.CatalogItem) []domain.CatalogItem {
	var filtered []domain.CatalogItem
	for _, item := range items {
		if item.NextAiringEpisode != nil && item.NextAiringEpisode.Episode > 0 {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (s *AiringService) filterPending(ctx context.Context, items []domain.CatalogItem) ([]domain.CatalogItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	last, err := s.state.LastEpisodes(ctx, ids)
	if err != nil {
		return nil, err
	}

	var pending []domain.CatalogItem
	for _, item := range items {
		if item.NextAiringEpisode.Episode > last[item.ID] {
			pending = append(pending, item)
		}
	}
	return pending, nil
}

func (s *AiringService) watchersByAnime(ctx context.Context, items []domain.CatalogItem) (map[int64][]domain.WatchlistEntry, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	entries, err := s.entries.ListByAnimeIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]domain.WatchlistEntry, len(items))
	for _, e := range entries {
		grouped[e.AnimeID()] = append(grouped[e.AnimeID()], e)
	}
	return grouped, nil
}

func (s *AiringService) announce(ctx context.Context, entry *domain.WatchlistEntry, next *domain.AiringEpisode) error {
	if s.publisher == nil {
		return nil
	}

	err := s.publisher.Publish(ctx, &domain.WatchlistEvent{
		Action:    domain.ActionAiring,
		UserID:    entry.UserID,
		AnimeID:   entry.AnimeID(),
		Entry:     entry,
		Airing:    next,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	airingNotifications.Inc()
	return nil
}
