package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"animetracker/internal/domain"
)

// Config holds AniList client configuration.
type Config struct {
	BaseURL        string
	PageSize       int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client queries the AniList GraphQL API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	pageSize       int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// StatusError is a non-200 answer from AniList.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

// QueryError carries the first error AniList reported for a query.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return "graphql: " + e.Message
}

func New(cfg Config, logger *slog.Logger) *Client {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		pageSize:       cfg.PageSize,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", "anilist"),
	}
}

// Search returns up to one page of anime matching title.
func (c *Client) Search(ctx context.Context, title string) ([]domain.CatalogItem, error) {
	var data pageData
	err := c.query(ctx, searchQuery, map[string]any{
		"search":  title,
		"perPage": c.pageSize,
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}

	c.logger.Debug("search completed", "title", title, "results", len(data.Page.Media))
	return c.transform(data.Page.Media), nil
}

// Details returns a single anime with episode and airing metadata.
// An unknown id yields domain.ErrNotFound.
func (c *Client) Details(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	var data mediaData
	err := c.query(ctx, detailsQuery, map[string]any{"id": id}, &data)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("details %d: %w", id, err)
	}
	if data.Media == nil {
		return nil, domain.ErrNotFound
	}

	item := toCatalogItem(*data.Media)
	return &item, nil
}

// Recommendations returns anime AniList users recommend alongside id.
func (c *Client) Recommendations(ctx context.Context, id int64) ([]domain.CatalogItem, error) {
	var data recommendationsData
	err := c.query(ctx, recommendationsQuery, map[string]any{
		"id":      id,
		"perPage": c.pageSize,
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("recommendations %d: %w", id, err)
	}
	if data.Media == nil {
		return []domain.CatalogItem{}, nil
	}

	var media []Media
	for _, node := range data.Media.Recommendations.Nodes {
		if node.MediaRecommendation != nil {
			media = append(media, *node.MediaRecommendation)
		}
	}
	return c.transform(media), nil
}

// Airing returns the most popular anime currently releasing.
func (c *Client) Airing(ctx context.Context) ([]domain.CatalogItem, error) {
	var data pageData
	err := c.query(ctx, airingQuery, map[string]any{"perPage": c.pageSize}, &data)
	if err != nil {
		return nil, fmt.Errorf("airing: %w", err)
	}
	return c.transform(data.Page.Media), nil
}

func (c *Client) query(ctx context.Context, q string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: q, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 1; ; attempt++ {
		err = c.doRequest(ctx, body, out)
		if err == nil {
			return nil
		}

		if attempt >= c.maxAttempts || !retryable(err) {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	if c.maxAttempts > 1 && retryable(err) {
		return fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "AnimeTracker/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return &QueryError{Message: envelope.Errors[0].Message}
	}
	if len(envelope.Data) == 0 {
		return errors.New("graphql: empty data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}

	return nil
}

// retryable reports whether another attempt could succeed. Client errors
// other than rate limiting will fail the same way again.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var queryErr *QueryError
	if errors.As(err, &queryErr) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return true
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *Client) transform(media []Media) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(media))
	for _, m := range media {
		if m.ID <= 0 {
			c.logger.Warn("skipping media without id")
			continue
		}
		items = append(items, toCatalogItem(m))
	}
	return items
}

func toCatalogItem(m Media) domain.CatalogItem {
	item := domain.CatalogItem{
		ID:           m.ID,
		Genres:       m.Genres,
		AverageScore: m.AverageScore,
		Episodes:     m.Episodes,
	}
	if m.Title.Romaji != nil {
		item.Title.Romaji = *m.Title.Romaji
	}
	if m.Title.English != nil {
		item.Title.English = *m.Title.English
	}
	if m.Description != nil {
		item.Description = *m.Description
	}
	if m.CoverImage != nil {
		item.CoverImage.Large = m.CoverImage.Large
	}
	if m.NextAiringEpisode != nil {
		item.NextAiringEpisode = &domain.AiringEpisode{
			Episode:         m.NextAiringEpisode.Episode,
			AiringAt:        m.NextAiringEpisode.AiringAt,
			TimeUntilAiring: m.NextAiringEpisode.TimeUntilAiring,
		}
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}
	return item
}
