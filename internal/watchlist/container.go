package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"animetracker/internal/domain"
	"animetracker/internal/identity"
)

// DefaultLoadTimeout bounds the reload triggered by an identity change.
const DefaultLoadTimeout = 15 * time.Second

// Container is the in-memory watchlist of the current identity. All
// mutations go through the API; local state follows the server's answers
// except for removal, which is applied before the request is sent.
type Container struct {
	api        API
	identities Identities
	logger     *slog.Logger

	mu      sync.RWMutex
	owner   string
	entries []domain.WatchlistEntry

	unsubscribe func()
}

// NewContainer builds a container and loads the watchlist whenever the
// identity changes. Call Close to stop following identity changes.
func NewContainer(api API, identities Identities, logger *slog.Logger) *Container {
	c := &Container{
		api:        api,
		identities: identities,
		logger:     logger.With("component", "watchlist_container"),
		entries:    []domain.WatchlistEntry{},
	}
	c.unsubscribe = identities.Subscribe(func(id identity.Identity) {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultLoadTimeout)
		defer cancel()
		c.Load(ctx, id)
	})
	return c
}

func (c *Container) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// Load replaces local state with the server's list for id. A guest gets
// an empty list. On failure the list is left as it was, or emptied if it
// belonged to someone else.
func (c *Container) Load(ctx context.Context, id identity.Identity) {
	if id.Guest() {
		c.replace("", []domain.WatchlistEntry{})
		return
	}

	entries, err := c.api.List(ctx, id)
	if err != nil {
		c.logger.Warn("load watchlist failed", "user_id", id.UserID, "error", err)
		c.mu.Lock()
		if c.owner != id.UserID {
			c.owner = id.UserID
			c.entries = []domain.WatchlistEntry{}
		}
		c.mu.Unlock()
		return
	}

	c.replace(id.UserID, entries)
}

// Reload is Load for the current identity that reports a failed fetch.
func (c *Container) Reload(ctx context.Context) error {
	id := c.identities.Current()
	if id.Guest() {
		c.replace("", []domain.WatchlistEntry{})
		return domain.ErrAuthRequired
	}

	entries, err := c.api.List(ctx, id)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	c.replace(id.UserID, entries)
	return nil
}

// Add starts tracking item. A guest gets domain.ErrAuthRequired and no
// request is made. An item already on the server counts as added.
func (c *Container) Add(ctx context.Context, item domain.CatalogItem) error {
	id := c.identities.Current()
	if id.Guest() {
		return domain.ErrAuthRequired
	}

	entry, err := c.api.Create(ctx, id, item)
	if errors.Is(err, domain.ErrAlreadyExists) {
		c.logger.Debug("anime already in watchlist", "anime_id", item.ID)
		c.Load(ctx, id)
		return nil
	}
	if err != nil {
		c.logger.Warn("add to watchlist failed", "anime_id", item.ID, "error", err)
		return err
	}

	c.mu.Lock()
	if c.owner == id.UserID {
		if i := c.indexLocked(entry.AnimeID()); i >= 0 {
			c.entries[i] = *entry
		} else {
			c.entries = append([]domain.WatchlistEntry{*entry}, c.entries...)
		}
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.Load(ctx, id)
	return nil
}

// Remove drops the entry locally, then asks the server to delete it. A
// failed delete is logged and returned; the local removal stands.
func (c *Container) Remove(ctx context.Context, animeID int64) error {
	id := c.identities.Current()
	if id.Guest() {
		return domain.ErrAuthRequired
	}

	c.mu.Lock()
	if i := c.indexLocked(animeID); i >= 0 {
		c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
	}
	c.mu.Unlock()

	if err := c.api.Delete(ctx, id, animeID); err != nil {
		c.logger.Warn("remove from watchlist failed", "anime_id", animeID, "error", err)
		return err
	}
	return nil
}

// ToggleEpisode flips the watched flag of one episode and returns the new
// flag. Completed entries refuse with domain.ErrEntryCompleted.
func (c *Container) ToggleEpisode(ctx context.Context, id identity.Identity, animeID int64, season, episode int) (bool, error) {
	watched := true
	if entry, ok := c.Entry(animeID); ok {
		if entry.Status == domain.StatusCompleted {
			return false, domain.ErrEntryCompleted
		}
		watched = !entry.IsWatched(season, episode)
	}

	mark := domain.EpisodeMark{Season: season, Episode: episode, Watched: watched}
	if err := c.SetEpisode(ctx, id, animeID, mark); err != nil {
		return false, err
	}
	return watched, nil
}

// SetEpisode sends mark to the server and adopts the progress it returns.
func (c *Container) SetEpisode(ctx context.Context, id identity.Identity, animeID int64, mark domain.EpisodeMark) error {
	if id.Guest() {
		return domain.ErrAuthRequired
	}
	if err := mark.Validate(); err != nil {
		return err
	}

	progress, err := c.api.UpdateProgress(ctx, id, animeID, mark)
	if err != nil {
		c.logger.Warn("update progress failed",
			"anime_id", animeID,
			"season", mark.Season,
			"episode", mark.Episode,
			"error", err,
		)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner != id.UserID {
		return nil
	}
	if i := c.indexLocked(animeID); i >= 0 {
		c.entries[i].Progress = progress
	}
	return nil
}

// MarkCompleted asks the server to complete the entry, then re-reads it
// rather than assuming the change applied.
func (c *Container) MarkCompleted(ctx context.Context, id identity.Identity, animeID int64) error {
	if id.Guest() {
		return domain.ErrAuthRequired
	}

	if err := c.api.MarkCompleted(ctx, id, animeID); err != nil {
		c.logger.Warn("mark completed failed", "anime_id", animeID, "error", err)
		return err
	}

	return c.Refresh(ctx, id, animeID)
}

// Refresh re-reads the server list and replaces the one entry for animeID.
func (c *Container) Refresh(ctx context.Context, id identity.Identity, animeID int64) error {
	if id.Guest() {
		return domain.ErrAuthRequired
	}

	entries, err := c.api.List(ctx, id)
	if err != nil {
		c.logger.Warn("refresh entry failed", "anime_id", animeID, "error", err)
		return fmt.Errorf("refresh entry: %w", err)
	}

	var fresh *domain.WatchlistEntry
	for i := range entries {
		if entries[i].AnimeID() == animeID {
			fresh = &entries[i]
			break
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owner != id.UserID {
		return nil
	}

	i := c.indexLocked(animeID)
	switch {
	case fresh == nil && i >= 0:
		c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
	case fresh != nil && i >= 0:
		c.entries[i] = *fresh
	case fresh != nil:
		c.entries = append([]domain.WatchlistEntry{*fresh}, c.entries...)
	}
	return nil
}

// Entries returns a copy of the local watchlist, newest first.
func (c *Container) Entries() []domain.WatchlistEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.WatchlistEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Container) Contains(animeID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexLocked(animeID) >= 0
}

func (c *Container) Entry(animeID int64) (domain.WatchlistEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexLocked(animeID)
	if i < 0 {
		return domain.WatchlistEntry{}, false
	}
	return c.entries[i], true
}

func (c *Container) replace(owner string, entries []domain.WatchlistEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owner = owner
	c.entries = entries
}

func (c *Container) indexLocked(animeID int64) int {
	for i := range c.entries {
		if c.entries[i].AnimeID() == animeID {
			return i
		}
	}
	return -1
}
