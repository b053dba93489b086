//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"animetracker/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(Migrate(s.ctx, s.db))
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM watchlist_entries")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM airing_state")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func anime(id int64, title string) domain.CatalogItem {
	episodes := 12
	return domain.CatalogItem{
		ID:         id,
		Title:      domain.Title{Romaji: title},
		CoverImage: domain.CoverImage{Large: "https://img.example/" + title + ".jpg"},
		Genres:     []string{"Action", "Drama"},
		Episodes:   &episodes,
	}
}

func (s *PostgresIntegrationSuite) TestMigrate_Idempotent() {
	s.NoError(Migrate(s.ctx, s.db))
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_CreateAndGet() {
	store := NewWatchlistStore(s.db)

	created, err := store.Create(s.ctx, "user-1", anime(16498, "Shingeki no Kyojin"))
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.Equal(domain.StatusWatching, created.Status)
	s.Empty(created.Progress)

	got, err := store.Get(s.ctx, "user-1", 16498)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal("Shingeki no Kyojin", got.Anime.Title.Romaji)
	s.Equal([]string{"Action", "Drama"}, got.Anime.Genres)
	s.Require().NotNil(got.Anime.Episodes)
	s.Equal(12, *got.Anime.Episodes)
	s.NotNil(got.Progress)
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_Create_UniqueConstraint() {
	store := NewWatchlistStore(s.db)

	_, err := store.Create(s.ctx, "user-1", anime(1, "a"))
	s.Require().NoError(err)

	_, err = store.Create(s.ctx, "user-1", anime(1, "a"))
	s.ErrorIs(err, domain.ErrAlreadyExists)

	_, err = store.Create(s.ctx, "user-2", anime(1, "a"))
	s.NoError(err, "other users may track the same anime")
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_Create_ConcurrentRace() {
	store := NewWatchlistStore(s.db)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Create(s.ctx, "racer", anime(77, "race"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domain.ErrAlreadyExists)
	}
	s.Equal(1, succeeded)

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM watchlist_entries WHERE user_id = $1", "racer"))
	s.Equal(1, count)
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_List_NewestFirst() {
	store := NewWatchlistStore(s.db)

	for i := int64(1); i <= 3; i++ {
		_, err := store.Create(s.ctx, "user-1", anime(i, "a"))
		s.Require().NoError(err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := store.Create(s.ctx, "user-2", anime(99, "other"))
	s.Require().NoError(err)

	entries, err := store.List(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(int64(3), entries[0].AnimeID())
	s.Equal(int64(2), entries[1].AnimeID())
	s.Equal(int64(1), entries[2].AnimeID())

	empty, err := store.List(s.ctx, "nobody")
	s.NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_Exists() {
	store := NewWatchlistStore(s.db)

	exists, err := store.Exists(s.ctx, "user-1", 5)
	s.NoError(err)
	s.False(exists)

	_, err = store.Create(s.ctx, "user-1", anime(5, "a"))
	s.Require().NoError(err)

	exists, err = store.Exists(s.ctx, "user-1", 5)
	s.NoError(err)
	s.True(exists)
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_SaveProgress() {
	store := NewWatchlistStore(s.db)

	created, err := store.Create(s.ctx, "user-1", anime(5, "a"))
	s.Require().NoError(err)

	progress := []domain.EpisodeMark{
		{Season: 1, Episode: 1, Watched: true},
		{Season: 1, Episode: 2, Watched: false},
	}
	_, err = store.SaveProgress(s.ctx, created.ID, progress)
	s.Require().NoError(err)

	got, err := store.Get(s.ctx, "user-1", 5)
	s.Require().NoError(err)
	s.Equal(progress, got.Progress)
	s.True(got.UpdatedAt.After(created.UpdatedAt) || got.UpdatedAt.Equal(created.UpdatedAt))
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_MarkCompleted() {
	store := NewWatchlistStore(s.db)

	_, err := store.MarkCompleted(s.ctx, "user-1", 404)
	s.ErrorIs(err, domain.ErrNotFound)

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM watchlist_entries"))
	s.Equal(0, count, "no write for a missing entry")

	_, err = store.Create(s.ctx, "user-1", anime(5, "a"))
	s.Require().NoError(err)

	entry, err := store.MarkCompleted(s.ctx, "user-1", 5)
	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, entry.Status)
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_Delete_Idempotent() {
	store := NewWatchlistStore(s.db)

	_, err := store.Create(s.ctx, "user-1", anime(5, "a"))
	s.Require().NoError(err)

	removed, err := store.Delete(s.ctx, "user-1", 5)
	s.NoError(err)
	s.True(removed)

	removed, err = store.Delete(s.ctx, "user-1", 5)
	s.NoError(err)
	s.False(removed)

	entries, err := store.List(s.ctx, "user-1")
	s.NoError(err)
	s.Empty(entries)
}

func (s *PostgresIntegrationSuite) TestWatchlistStore_ListByAnimeIDs_SkipsCompleted() {
	store := NewWatchlistStore(s.db)

	_, err := store.Create(s.ctx, "user-1", anime(5, "a"))
	s.Require().NoError(err)
	_, err = store.Create(s.ctx, "user-2", anime(5, "a"))
	s.Require().NoError(err)
	_, err = store.Create(s.ctx, "user-3", anime(6, "b"))
	s.Require().NoError(err)
	_, err = store.MarkCompleted(s.ctx, "user-2", 5)
	s.Require().NoError(err)

	entries, err := store.ListByAnimeIDs(s.ctx, []int64{5, 6, 7})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("user-1", entries[0].UserID)
	s.Equal("user-3", entries[1].UserID)
}

func (s *PostgresIntegrationSuite) TestAiringStateStore_UpdateOnlyMovesForward() {
	store := NewAiringStateStore(s.db)
	now := time.Now().Truncate(time.Microsecond)

	last, err := store.LastEpisodes(s.ctx, []int64{1})
	s.NoError(err)
	s.Empty(last)

	s.NoError(store.Update(s.ctx, &domain.AiringState{AnimeID: 1, LastEpisode: 5, NotifiedAt: now}))
	s.NoError(store.Update(s.ctx, &domain.AiringState{AnimeID: 1, LastEpisode: 3, NotifiedAt: now}))

	last, err = store.LastEpisodes(s.ctx, []int64{1, 2})
	s.NoError(err)
	s.Equal(map[int64]int{1: 5}, last)
}

func (s *PostgresIntegrationSuite) TestTransaction_RollbackReleasesProgress() {
	tm := NewTransactionManager(s.db)
	store := NewWatchlistStore(s.db)

	created, err := store.Create(s.ctx, "user-1", anime(5, "a"))
	s.Require().NoError(err)

	err = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		entry, err := store.GetForUpdate(ctx, "user-1", 5)
		if err != nil {
			return err
		}
		progress := domain.MergeMark(entry.Progress, domain.EpisodeMark{Season: 1, Episode: 1, Watched: true})
		if _, err := store.SaveProgress(ctx, created.ID, progress); err != nil {
			return err
		}
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	got, err := store.Get(s.ctx, "user-1", 5)
	s.Require().NoError(err)
	s.Empty(got.Progress)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	store := NewWatchlistStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		_, err := store.Create(ctx, "user-1", anime(9, "tx"))
		return err
	})
	s.NoError(err)

	exists, err := store.Exists(s.ctx, "user-1", 9)
	s.NoError(err)
	s.True(exists)
}

func (s *PostgresIntegrationSuite) TestTransaction_NestedJoinsOuter() {
	tm := NewTransactionManager(s.db)
	store := NewWatchlistStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := store.Create(ctx, "user-1", anime(10, "outer")); err != nil {
			return err
		}
		if err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			_, err := store.Create(ctx, "user-1", anime(11, "inner"))
			return err
		}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	entries, err := store.List(s.ctx, "user-1")
	s.NoError(err)
	s.Empty(entries, "inner work rolls back with the outer transaction")
}

func (s *PostgresIntegrationSuite) TestTransaction_PanicRollsBack() {
	tm := NewTransactionManager(s.db)
	store := NewWatchlistStore(s.db)

	s.Panics(func() {
		_ = tm.WithTransaction(s.ctx, func(ctx context.Context) error {
			if _, err := store.Create(ctx, "user-1", anime(12, "panic")); err != nil {
				return err
			}
			panic("boom")
		})
	})

	exists, err := store.Exists(s.ctx, "user-1", 12)
	s.NoError(err)
	s.False(exists)
}
