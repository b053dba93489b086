package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"animetracker/internal/domain"
)

type WatchlistService struct {
	store     WatchlistStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

// NewWatchlistService wires the watchlist rules. publisher may be nil.
func NewWatchlistService(
	store WatchlistStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *WatchlistService {
	return &WatchlistService{
		store:     store,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "watchlist"),
	}
}

// List returns the user's entries, newest first.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]domain.WatchlistEntry, error) {
	if err := validateUser(userID); err != nil {
		return nil, err
	}

	entries, err := s.store.List(ctx, userID)
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return entries, nil
}

func (s *WatchlistService) Exists(ctx context.Context, userID string, animeID int64) (bool, error) {
	if err := validateKey(userID, animeID); err != nil {
		return false, err
	}

	exists, err := s.store.Exists(ctx, userID, animeID)
	observe("exists", err)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return exists, nil
}

// Add starts tracking anime for the user. A second add for the same pair
// fails with domain.ErrAlreadyExists, whether caught by the pre-check or
// by the store's uniqueness guarantee.
func (s *WatchlistService) Add(ctx context.Context, userID string, anime domain.CatalogItem) (*domain.WatchlistEntry, error) {
	if err := validateKey(userID, anime.ID); err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, userID, anime.ID)
	if err != nil {
		observe("add", err)
		return nil, fmt.Errorf("check watchlist: %w", err)
	}
	if exists {
		observe("add", domain.ErrAlreadyExists)
		return nil, domain.ErrAlreadyExists
	}

	entry, err := s.store.Create(ctx, userID, anime)
	observe("add", err)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.logger.Info("anime added", "user_id", userID, "anime_id", anime.ID)
	s.publish(ctx, domain.ActionAdded, userID, anime.ID, entry)

	return entry, nil
}

// UpdateProgress records a watched flag for one episode and returns the
// full progress sequence after the merge. The read-merge-write runs under
// a row lock so concurrent toggles on different episodes never lose marks.
func (s *WatchlistService) UpdateProgress(ctx context.Context, userID string, animeID int64, mark domain.EpisodeMark) ([]domain.EpisodeMark, error) {
	if err := validateKey(userID, animeID); err != nil {
		return nil, err
	}
	if err := mark.Validate(); err != nil {
		return nil, err
	}

	var entry *domain.WatchlistEntry
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.store.GetForUpdate(txCtx, userID, animeID)
		if err != nil {
			return err
		}

		current.Progress = domain.MergeMark(current.Progress, mark)
		updatedAt, err := s.store.SaveProgress(txCtx, current.ID, current.Progress)
		if err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		current.UpdatedAt = updatedAt
		entry = current
		return nil
	})
	observe("progress", err)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("progress updated",
		"user_id", userID,
		"anime_id", animeID,
		"season", mark.Season,
		"episode", mark.Episode,
		"watched", mark.Watched,
	)
	s.publish(ctx, domain.ActionProgress, userID, animeID, entry)

	return entry.Progress, nil
}

// MarkCompleted moves the entry to the completed state. Progress is left
// untouched. Completing an already completed entry is a no-op and publishes
// nothing.
func (s *WatchlistService) MarkCompleted(ctx context.Context, userID string, animeID int64) error {
	if err := validateKey(userID, animeID); err != nil {
		return err
	}

	var (
		entry   *domain.WatchlistEntry
		changed bool
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.store.GetForUpdate(txCtx, userID, animeID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransition(domain.StatusCompleted) {
			return fmt.Errorf("complete entry in status %q: %w", current.Status, domain.ErrInvalidTransition)
		}
		if current.Status == domain.StatusCompleted {
			return nil
		}

		entry, err = s.store.MarkCompleted(txCtx, userID, animeID)
		if err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}
		changed = true
		return nil
	})
	observe("complete", err)
	if err != nil {
		return err
	}
	if !changed {
		s.logger.Debug("anime already completed", "user_id", userID, "anime_id", animeID)
		return nil
	}

	s.logger.Info("anime completed", "user_id", userID, "anime_id", animeID)
	s.publish(ctx, domain.ActionCompleted, userID, animeID, entry)

	return nil
}

// Remove deletes the entry. Removing an absent entry succeeds.
func (s *WatchlistService) Remove(ctx context.Context, userID string, animeID int64) error {
	if err := validateKey(userID, animeID); err != nil {
		return err
	}

	removed, err := s.store.Delete(ctx, userID, animeID)
	observe("remove", err)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if removed {
		s.logger.Info("anime removed", "user_id", userID, "anime_id", animeID)
		s.publish(ctx, domain.ActionRemoved, userID, animeID, nil)
	}

	return nil
}

// publish reports a mutation downstream. The mutation already succeeded,
// so a failure here is logged and swallowed.
func (s *WatchlistService) publish(ctx context.Context, action, userID string, animeID int64, entry *domain.WatchlistEntry) {
	if s.publisher == nil {
		return
	}

	event := &domain.WatchlistEvent{
		Action:    action,
		UserID:    userID,
		AnimeID:   animeID,
		Entry:     entry,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish watchlist event",
			"action", action,
			"user_id", userID,
			"anime_id", animeID,
			"error", err,
		)
	}
}

func validateUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}
	return nil
}

func validateKey(userID string, animeID int64) error {
	if err := validateUser(userID); err != nil {
		return err
	}
	if animeID <= 0 {
		return fmt.Errorf("%w: anime id must be positive", domain.ErrInvalidInput)
	}
	return nil
}
