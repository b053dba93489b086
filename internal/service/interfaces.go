package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"animetracker/internal/domain"
)

type WatchlistStore interface {
	List(ctx context.Context, userID string) ([]domain.WatchlistEntry, error)
	ListByAnimeIDs(ctx context.Context, ids []int64) ([]domain.WatchlistEntry, error)
	Exists(ctx context.Context, userID string, animeID int64) (bool, error)
	GetForUpdate(ctx context.Context, userID string, animeID int64) (*domain.WatchlistEntry, error)
	Create(ctx context.Context, userID string, anime domain.CatalogItem) (*domain.WatchlistEntry, error)
	SaveProgress(ctx context.Context, id string, progress []domain.EpisodeMark) (time.Time, error)
	MarkCompleted(ctx context.Context, userID string, animeID int64) (*domain.WatchlistEntry, error)
	Delete(ctx context.Context, userID string, animeID int64) (bool, error)
}

type AiringStateStore interface {
	LastEpisodes(ctx context.Context, animeIDs []int64) (map[int64]int, error)
	Update(ctx context.Context, state *domain.AiringState) error
}

type AiringSource interface {
	Airing(ctx context.Context) ([]domain.CatalogItem, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.WatchlistEvent) error
	Close() error
}
