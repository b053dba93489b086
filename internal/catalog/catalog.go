package catalog

import (
	"context"
	"log/slog"
	"strings"

	"animetracker/internal/domain"
)

// MinQueryLength is the shortest title worth sending to the catalog.
const MinQueryLength = 3

// Source answers catalog queries and reports transport failures.
type Source interface {
	Search(ctx context.Context, title string) ([]domain.CatalogItem, error)
	Details(ctx context.Context, id int64) (*domain.CatalogItem, error)
	Recommendations(ctx context.Context, id int64) ([]domain.CatalogItem, error)
	Airing(ctx context.Context) ([]domain.CatalogItem, error)
}

// ValidQuery reports whether title is long enough to search for.
func ValidQuery(title string) bool {
	return len([]rune(strings.TrimSpace(title))) >= MinQueryLength
}

// Lookup is the read path used by presentation code. Failures are logged
// and come back as "no data": an empty slice or a nil item.
type Lookup struct {
	source Source
	logger *slog.Logger
}

func NewLookup(source Source, logger *slog.Logger) *Lookup {
	return &Lookup{
		source: source,
		logger: logger.With("component", "catalog"),
	}
}

func (l *Lookup) Search(ctx context.Context, title string) []domain.CatalogItem {
	if !ValidQuery(title) {
		return []domain.CatalogItem{}
	}

	items, err := l.source.Search(ctx, strings.TrimSpace(title))
	if err != nil {
		l.logger.Warn("catalog search failed", "title", title, "error", err)
		return []domain.CatalogItem{}
	}
	return nonNil(items)
}

func (l *Lookup) Details(ctx context.Context, id int64) *domain.CatalogItem {
	item, err := l.source.Details(ctx, id)
	if err != nil {
		l.logger.Warn("catalog details failed", "anime_id", id, "error", err)
		return nil
	}
	return item
}

func (l *Lookup) Recommendations(ctx context.Context, id int64) []domain.CatalogItem {
	items, err := l.source.Recommendations(ctx, id)
	if err != nil {
		l.logger.Warn("catalog recommendations failed", "anime_id", id, "error", err)
		return []domain.CatalogItem{}
	}
	return nonNil(items)
}

func (l *Lookup) Airing(ctx context.Context) []domain.CatalogItem {
	items, err := l.source.Airing(ctx)
	if err != nil {
		l.logger.Warn("catalog airing failed", "error", err)
		return []domain.CatalogItem{}
	}
	return nonNil(items)
}

func nonNil(items []domain.CatalogItem) []domain.CatalogItem {
	if items == nil {
		return []domain.CatalogItem{}
	}
	return items
}
