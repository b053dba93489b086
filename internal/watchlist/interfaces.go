package watchlist

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"animetracker/internal/domain"
	"animetracker/internal/identity"
)

// API is the remote watchlist the container reconciles against.
type API interface {
	List(ctx context.Context, id identity.Identity) ([]domain.WatchlistEntry, error)
	Exists(ctx context.Context, id identity.Identity, animeID int64) (bool, error)
	Create(ctx context.Context, id identity.Identity, anime domain.CatalogItem) (*domain.WatchlistEntry, error)
	UpdateProgress(ctx context.Context, id identity.Identity, animeID int64, mark domain.EpisodeMark) ([]domain.EpisodeMark, error)
	MarkCompleted(ctx context.Context, id identity.Identity, animeID int64) error
	Delete(ctx context.Context, id identity.Identity, animeID int64) error
}

// Identities supplies the current identity and announces changes.
type Identities interface {
	Current() identity.Identity
	Subscribe(fn func(identity.Identity)) func()
}
