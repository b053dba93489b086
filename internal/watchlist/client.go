package watchlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"animetracker/internal/domain"
	"animetracker/internal/identity"
)

const basePath = "/api/watchlist"

// StatusError is a non-success answer from the watchlist API. It unwraps
// to the matching domain error where one exists.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("watchlist api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("watchlist api: status %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthRequired
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	}
	return nil
}

// Client talks to the watchlist HTTP API. Calls are never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("component", "watchlist_client"),
	}
}

type createRequest struct {
	UserID string             `json:"userId"`
	Anime  domain.CatalogItem `json:"anime"`
}

type progressResponse struct {
	Message  string               `json:"message"`
	Progress []domain.EpisodeMark `json:"progress"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) List(ctx context.Context, id identity.Identity) ([]domain.WatchlistEntry, error) {
	var entries []domain.WatchlistEntry
	if err := c.do(ctx, id, http.MethodGet, userPath(id.UserID), nil, &entries); err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	if entries == nil {
		entries = []domain.WatchlistEntry{}
	}
	return entries, nil
}

func (c *Client) Exists(ctx context.Context, id identity.Identity, animeID int64) (bool, error) {
	var resp existsResponse
	path := "/check" + entryPath(id.UserID, animeID)
	if err := c.do(ctx, id, http.MethodGet, path, nil, &resp); err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return resp.Exists, nil
}

func (c *Client) Create(ctx context.Context, id identity.Identity, anime domain.CatalogItem) (*domain.WatchlistEntry, error) {
	var entry domain.WatchlistEntry
	req := createRequest{UserID: id.UserID, Anime: anime}
	if err := c.do(ctx, id, http.MethodPost, "/", req, &entry); err != nil {
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}
	return &entry, nil
}

func (c *Client) UpdateProgress(ctx context.Context, id identity.Identity, animeID int64, mark domain.EpisodeMark) ([]domain.EpisodeMark, error) {
	var resp progressResponse
	path := "/progress" + entryPath(id.UserID, animeID)
	if err := c.do(ctx, id, http.MethodPost, path, mark, &resp); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	if resp.Progress == nil {
		resp.Progress = []domain.EpisodeMark{}
	}
	return resp.Progress, nil
}

func (c *Client) MarkCompleted(ctx context.Context, id identity.Identity, animeID int64) error {
	path := "/complete" + entryPath(id.UserID, animeID)
	if err := c.do(ctx, id, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id identity.Identity, animeID int64) error {
	if err := c.do(ctx, id, http.MethodDelete, entryPath(id.UserID, animeID), nil, nil); err != nil {
		return fmt.Errorf("remove from watchlist: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, id identity.Identity, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("watchlist request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	statusErr := &StatusError{StatusCode: resp.StatusCode}

	var msg messageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&msg); err == nil {
		statusErr.Message = msg.Error
		if statusErr.Message == "" {
			statusErr.Message = msg.Message
		}
	}
	return statusErr
}

func userPath(userID string) string {
	return "/" + url.PathEscape(userID)
}

func entryPath(userID string, animeID int64) string {
	return userPath(userID) + "/" + strconv.FormatInt(animeID, 10)
}
