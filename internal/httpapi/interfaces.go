package httpapi

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"animetracker/internal/domain"
)

type WatchlistService interface {
	List(ctx context.Context, userID string) ([]domain.WatchlistEntry, error)
	Exists(ctx context.Context, userID string, animeID int64) (bool, error)
	Add(ctx context.Context, userID string, anime domain.CatalogItem) (*domain.WatchlistEntry, error)
	UpdateProgress(ctx context.Context, userID string, animeID int64, mark domain.EpisodeMark) ([]domain.EpisodeMark, error)
	MarkCompleted(ctx context.Context, userID string, animeID int64) error
	Remove(ctx context.Context, userID string, animeID int64) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}
