package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"animetracker/internal/domain"
)

const uniqueViolation = "23505"

const entryColumns = `id, user_id, anime_id, anime, status, progress, created_at, updated_at`

type entryRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	AnimeID   int64     `db:"anime_id"`
	Anime     []byte    `db:"anime"`
	Status    string    `db:"status"`
	Progress  []byte    `db:"progress"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r entryRow) toDomain() (domain.WatchlistEntry, error) {
	entry := domain.WatchlistEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if !entry.Status.Valid() {
		return entry, fmt.Errorf("entry %s has unknown status %q", r.ID, r.Status)
	}
	if err := json.Unmarshal(r.Anime, &entry.Anime); err != nil {
		return entry, fmt.Errorf("decode anime document: %w", err)
	}
	if err := json.Unmarshal(r.Progress, &entry.Progress); err != nil {
		return entry, fmt.Errorf("decode progress: %w", err)
	}
	if entry.Progress == nil {
		entry.Progress = []domain.EpisodeMark{}
	}
	return entry, nil
}

// WatchlistStore keeps one JSONB document per (user, anime) pair.
type WatchlistStore struct {
	db *sqlx.DB
}

func NewWatchlistStore(db *sqlx.DB) *WatchlistStore {
	return &WatchlistStore{db: db}
}

func (s *WatchlistStore) List(ctx context.Context, userID string) ([]domain.WatchlistEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM watchlist_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	var rows []entryRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, userID); err != nil {
		return nil, err
	}
	return toEntries(rows)
}

// ListByAnimeIDs returns the entries still being watched for any of ids.
func (s *WatchlistStore) ListByAnimeIDs(ctx context.Context, ids []int64) ([]domain.WatchlistEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + entryColumns + `
		FROM watchlist_entries
		WHERE anime_id = ANY($1) AND status = $2
		ORDER BY anime_id, user_id`

	var rows []entryRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, pq.Array(ids), string(domain.StatusWatching)); err != nil {
		return nil, err
	}
	return toEntries(rows)
}

func (s *WatchlistStore) Exists(ctx context.Context, userID string, animeID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists,
		"SELECT EXISTS (SELECT 1 FROM watchlist_entries WHERE user_id = $1 AND anime_id = $2)",
		userID, animeID,
	)
	return exists, err
}

func (s *WatchlistStore) Get(ctx context.Context, userID string, animeID int64) (*domain.WatchlistEntry, error) {
	return s.get(ctx, userID, animeID, false)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (s *WatchlistStore) GetForUpdate(ctx context.Context, userID string, animeID int64) (*domain.WatchlistEntry, error) {
	return s.get(ctx, userID, animeID, true)
}

func (s *WatchlistStore) get(ctx context.Context, userID string, animeID int64, lock bool) (*domain.WatchlistEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM watchlist_entries
		WHERE user_id = $1 AND anime_id = $2`
	if lock {
		query += " FOR UPDATE"
	}

	var row entryRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, userID, animeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	entry, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a new entry in the watching state with empty progress.
// The unique (user_id, anime_id) constraint turns a lost race into
// domain.ErrAlreadyExists.
func (s *WatchlistStore) Create(ctx context.Context, userID string, anime domain.CatalogItem) (*domain.WatchlistEntry, error) {
	doc, err := json.Marshal(anime)
	if err != nil {
		return nil, fmt.Errorf("encode anime document: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := &domain.WatchlistEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Anime:     anime,
		Status:    domain.StatusWatching,
		Progress:  []domain.EpisodeMark{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO watchlist_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, $6, $7)`

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		anime.ID,
		string(doc),
		string(entry.Status),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *WatchlistStore) SaveProgress(ctx context.Context, id string, progress []domain.EpisodeMark) (time.Time, error) {
	if progress == nil {
		progress = []domain.EpisodeMark{}
	}
	doc, err := json.Marshal(progress)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode progress: %w", err)
	}

	var updatedAt time.Time
	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &updatedAt,
		"UPDATE watchlist_entries SET progress = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at",
		id, string(doc),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, domain.ErrNotFound
	}
	return updatedAt, err
}

// MarkCompleted sets the status to completed. Completion is a user
// declaration: progress is not inspected.
func (s *WatchlistStore) MarkCompleted(ctx context.Context, userID string, animeID int64) (*domain.WatchlistEntry, error) {
	query := `
		UPDATE watchlist_entries
		SET status = $3, updated_at = NOW()
		WHERE user_id = $1 AND anime_id = $2
		RETURNING ` + entryColumns

	var row entryRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, userID, animeID, string(domain.StatusCompleted))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	entry, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes the entry if present and reports whether a row was removed.
func (s *WatchlistStore) Delete(ctx context.Context, userID string, animeID int64) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"DELETE FROM watchlist_entries WHERE user_id = $1 AND anime_id = $2",
		userID, animeID,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *WatchlistStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func toEntries(rows []entryRow) ([]domain.WatchlistEntry, error) {
	entries := make([]domain.WatchlistEntry, 0, len(rows))
	for _, r := range rows {
		entry, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", r.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
