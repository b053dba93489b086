package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"animetracker/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service WatchlistService
	health  HealthChecker
	logger  *slog.Logger
}

func NewHandler(service WatchlistService, health HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		health:  health,
		logger:  logger,
	}
}

type createRequest struct {
	UserID string              `json:"userId"`
	Anime  *domain.CatalogItem `json:"anime"`
}

type progressRequest struct {
	Season  int   `json:"season"`
	Episode int   `json:"episode"`
	Watched *bool `json:"watched"`
}

type progressResponse struct {
	Message  string               `json:"message"`
	Progress []domain.EpisodeMark `json:"progress"`
}

// List handles GET /api/watchlist/{userId}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userParam(w, r)
	if !ok {
		return
	}
	if !h.authorize(w, r, userID) {
		return
	}

	entries, err := h.service.List(r.Context(), userID)
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("list watchlist", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch watchlist")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Check handles GET /api/watchlist/check/{userId}/{animeId}.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, animeID, ok := h.entryKey(w, r)
	if !ok {
		return
	}

	exists, err := h.service.Exists(r.Context(), userID, animeID)
	if err != nil {
		h.logger.Error("check watchlist", "user_id", userID, "anime_id", animeID, "error", err)
		writeError(w, http.StatusInternalServerError, "Check failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// Create handles POST /api/watchlist.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if req.Anime == nil || req.Anime.ID <= 0 {
		writeError(w, http.StatusBadRequest, "anime.id is required")
		return
	}
	if !h.authorize(w, r, req.UserID) {
		return
	}

	entry, err := h.service.Add(r.Context(), req.UserID, *req.Anime)
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		writeMessage(w, http.StatusConflict, "Anime already in watchlist")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("add to watchlist", "user_id", req.UserID, "anime_id", req.Anime.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add to watchlist")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Progress handles POST /api/watchlist/progress/{userId}/{animeId}.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, animeID, ok := h.entryKey(w, r)
	if !ok {
		return
	}

	var req progressRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Watched == nil {
		writeError(w, http.StatusBadRequest, "watched is required")
		return
	}

	mark := domain.EpisodeMark{Season: req.Season, Episode: req.Episode, Watched: *req.Watched}
	progress, err := h.service.UpdateProgress(r.Context(), userID, animeID, mark)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Watchlist item not found")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("update progress", "user_id", userID, "anime_id", animeID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update progress")
		return
	}

	writeJSON(w, http.StatusOK, progressResponse{Message: "Progress updated", Progress: progress})
}

// Complete handles POST /api/watchlist/complete/{userId}/{animeId}.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, animeID, ok := h.entryKey(w, r)
	if !ok {
		return
	}

	err := h.service.MarkCompleted(r.Context(), userID, animeID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Watchlist item not found")
		return
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Watchlist item cannot be completed")
		return
	case err != nil:
		h.logger.Error("mark completed", "user_id", userID, "anime_id", animeID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to mark completed")
		return
	}

	writeMessage(w, http.StatusOK, "Marked as completed")
}

// Remove handles DELETE /api/watchlist/{userId}/{animeId}.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, animeID, ok := h.entryKey(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, animeID); err != nil {
		h.logger.Error("remove from watchlist", "user_id", userID, "anime_id", animeID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to remove from watchlist")
		return
	}

	writeMessage(w, http.StatusOK, "Removed from watchlist")
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// entryKey reads {userId} and {animeId} and checks the caller may act for
// that user. It writes the response itself when it returns false.
func (h *Handler) entryKey(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	userID, ok := userParam(w, r)
	if !ok {
		return "", 0, false
	}
	animeID, err := strconv.ParseInt(chi.URLParam(r, "animeId"), 10, 64)
	if err != nil || animeID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid anime id")
		return "", 0, false
	}
	if !h.authorize(w, r, userID) {
		return "", 0, false
	}
	return userID, animeID, true
}

// userParam returns the decoded {userId}. chi matches on the raw path when
// the request has one, so params are still escaped in that case.
func userParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userId")
	var err error
	if r.URL.RawPath != "" {
		userID, err = url.PathUnescape(userID)
	}
	if err != nil || userID == "" {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return "", false
	}
	return userID, true
}

// authorize rejects requests whose token belongs to someone else. Without
// authentication configured every request is allowed.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, userID string) bool {
	tokenUser, ok := UserIDFromContext(r.Context())
	if !ok || tokenUser == userID {
		return true
	}
	writeError(w, http.StatusForbidden, "Forbidden")
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
