package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"animetracker/internal/domain"
	"animetracker/internal/httpapi/mocks"
	"animetracker/internal/identity"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	service *mocks.MockWatchlistService
	health  *mocks.MockHealthChecker
	logger  *slog.Logger
	router  http.Handler
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockWatchlistService(s.ctrl)
	s.health = mocks.NewMockHealthChecker(s.ctrl)
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.router = NewRouter(NewHandler(s.service, s.health, s.logger), Config{}, s.logger)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(router http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) body(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *HandlerTestSuite) TestList() {
	entries := []domain.WatchlistEntry{
		{ID: "b", UserID: "alice", Anime: domain.CatalogItem{ID: 2}, Status: domain.StatusWatching, Progress: []domain.EpisodeMark{}},
		{ID: "a", UserID: "alice", Anime: domain.CatalogItem{ID: 1}, Status: domain.StatusCompleted, Progress: []domain.EpisodeMark{}},
	}
	s.service.EXPECT().List(gomock.Any(), "alice").Return(entries, nil)

	rec := s.do(s.router, http.MethodGet, "/api/watchlist/alice", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	var got []domain.WatchlistEntry
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Len(got, 2)
	s.Equal("b", got[0].ID)
	s.Contains(rec.Body.String(), `"_id":"b"`)
}

func (s *HandlerTestSuite) TestList_Failure() {
	s.service.EXPECT().List(gomock.Any(), "alice").Return(nil, errors.New("db down"))

	rec := s.do(s.router, http.MethodGet, "/api/watchlist/alice", "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("Failed to fetch watchlist", s.body(rec)["error"])
}

func (s *HandlerTestSuite) TestCheck() {
	s.service.EXPECT().Exists(gomock.Any(), "alice", int64(21)).Return(true, nil)

	rec := s.do(s.router, http.MethodGet, "/api/watchlist/check/alice/21", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(true, s.body(rec)["exists"])
}

func (s *HandlerTestSuite) TestCheck_BadAnimeID() {
	rec := s.do(s.router, http.MethodGet, "/api/watchlist/check/alice/abc", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestCreate() {
	anime := domain.CatalogItem{ID: 16498, Title: domain.Title{English: "Attack on Titan"}, Genres: []string{"Action"}}
	s.service.EXPECT().Add(gomock.Any(), "alice", anime).Return(&domain.WatchlistEntry{
		ID:       "e1",
		UserID:   "alice",
		Anime:    anime,
		Status:   domain.StatusWatching,
		Progress: []domain.EpisodeMark{},
	}, nil)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist",
		`{"userId":"alice","anime":{"id":16498,"title":{"english":"Attack on Titan"},"genres":["Action"]}}`)

	s.Equal(http.StatusCreated, rec.Code)
	body := s.body(rec)
	s.Equal("e1", body["_id"])
	s.Equal("watching", body["status"])
	s.Equal([]any{}, body["progress"])
}

func (s *HandlerTestSuite) TestCreate_Duplicate() {
	s.service.EXPECT().Add(gomock.Any(), "alice", gomock.Any()).Return(nil, domain.ErrAlreadyExists)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/", `{"userId":"alice","anime":{"id":1}}`)

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("Anime already in watchlist", s.body(rec)["message"])
}

func (s *HandlerTestSuite) TestCreate_Validation() {
	tests := map[string]string{
		"malformed":    `{"userId":`,
		"missing user": `{"anime":{"id":1}}`,
		"blank user":   `{"userId":"  ","anime":{"id":1}}`,
		"no anime":     `{"userId":"alice"}`,
		"zero id":      `{"userId":"alice","anime":{"id":0}}`,
	}
	for name, body := range tests {
		s.Run(name, func() {
			rec := s.do(s.router, http.MethodPost, "/api/watchlist/", body)
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *HandlerTestSuite) TestCreate_Failure() {
	s.service.EXPECT().Add(gomock.Any(), "alice", gomock.Any()).Return(nil, errors.New("insert failed"))

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/", `{"userId":"alice","anime":{"id":1}}`)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("Failed to add to watchlist", s.body(rec)["error"])
}

func (s *HandlerTestSuite) TestProgress() {
	mark := domain.EpisodeMark{Season: 1, Episode: 3, Watched: true}
	progress := []domain.EpisodeMark{{Season: 1, Episode: 1, Watched: true}, mark}
	s.service.EXPECT().UpdateProgress(gomock.Any(), "alice", int64(21), mark).Return(progress, nil)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/progress/alice/21", `{"season":1,"episode":3,"watched":true}`)

	s.Equal(http.StatusOK, rec.Code)
	var resp progressResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("Progress updated", resp.Message)
	s.Equal(progress, resp.Progress)
}

func (s *HandlerTestSuite) TestProgress_NotFound() {
	s.service.EXPECT().UpdateProgress(gomock.Any(), "alice", int64(21), gomock.Any()).Return(nil, domain.ErrNotFound)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/progress/alice/21", `{"season":1,"episode":1,"watched":false}`)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("Watchlist item not found", s.body(rec)["error"])
}

func (s *HandlerTestSuite) TestProgress_RequiresWatched() {
	rec := s.do(s.router, http.MethodPost, "/api/watchlist/progress/alice/21", `{"season":1,"episode":1}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestProgress_InvalidMark() {
	s.service.EXPECT().UpdateProgress(gomock.Any(), "alice", int64(21), gomock.Any()).
		Return(nil, domain.ErrInvalidInput)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/progress/alice/21", `{"season":0,"episode":1,"watched":true}`)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestComplete() {
	s.service.EXPECT().MarkCompleted(gomock.Any(), "alice", int64(21)).Return(nil)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/complete/alice/21", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Marked as completed", s.body(rec)["message"])
}

func (s *HandlerTestSuite) TestComplete_NotFound() {
	s.service.EXPECT().MarkCompleted(gomock.Any(), "alice", int64(21)).Return(domain.ErrNotFound)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/complete/alice/21", "")

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerTestSuite) TestComplete_InvalidTransition() {
	s.service.EXPECT().MarkCompleted(gomock.Any(), "alice", int64(21)).Return(domain.ErrInvalidTransition)

	rec := s.do(s.router, http.MethodPost, "/api/watchlist/complete/alice/21", "")

	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestRemove() {
	s.service.EXPECT().Remove(gomock.Any(), "alice", int64(21)).Return(nil)

	rec := s.do(s.router, http.MethodDelete, "/api/watchlist/alice/21", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Removed from watchlist", s.body(rec)["message"])
}

func (s *HandlerTestSuite) TestRemove_Failure() {
	s.service.EXPECT().Remove(gomock.Any(), "alice", int64(21)).Return(errors.New("boom"))

	rec := s.do(s.router, http.MethodDelete, "/api/watchlist/alice/21", "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("Failed to remove from watchlist", s.body(rec)["error"])
}

func (s *HandlerTestSuite) TestHealth() {
	s.health.EXPECT().Ping(gomock.Any()).Return(nil)
	rec := s.do(s.router, http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, rec.Code)

	s.health.EXPECT().Ping(gomock.Any()).Return(errors.New("no db"))
	rec = s.do(s.router, http.MethodGet, "/healthz", "")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *HandlerTestSuite) TestMetricsEndpoint() {
	rec := s.do(s.router, http.MethodGet, "/metrics", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "animetracker_http_requests_in_flight")
}

func (s *HandlerTestSuite) TestMetrics_UnmatchedPathIsNotALabel() {
	rec := s.do(s.router, http.MethodGet, "/nope/3f9c2a71", "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(s.router, http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	body := rec.Body.String()
	s.Contains(body, `path="unmatched"`)
	s.NotContains(body, "3f9c2a71")
}

func (s *HandlerTestSuite) TestAuth() {
	secret := "test-secret"
	router := NewRouter(NewHandler(s.service, s.health, s.logger), Config{JWTSecret: secret}, s.logger)

	rec := s.do(router, http.MethodGet, "/api/watchlist/alice", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(router, http.MethodGet, "/api/watchlist/alice", "", "Authorization", "Bearer garbage")
	s.Equal(http.StatusUnauthorized, rec.Code)

	token, err := identity.GenerateToken("alice", []byte(secret), time.Hour)
	s.Require().NoError(err)

	rec = s.do(router, http.MethodGet, "/api/watchlist/bob", "", "Authorization", "Bearer "+token)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(router, http.MethodPost, "/api/watchlist/", `{"userId":"bob","anime":{"id":1}}`, "Authorization", "Bearer "+token)
	s.Equal(http.StatusForbidden, rec.Code)

	s.service.EXPECT().List(gomock.Any(), "alice").Return([]domain.WatchlistEntry{}, nil)
	rec = s.do(router, http.MethodGet, "/api/watchlist/alice", "", "Authorization", "Bearer "+token)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("[]\n", rec.Body.String())
}

func (s *HandlerTestSuite) TestRateLimit() {
	router := NewRouter(NewHandler(s.service, s.health, s.logger), Config{RateLimit: 2, RateWindow: time.Minute}, s.logger)
	s.service.EXPECT().Exists(gomock.Any(), "alice", int64(1)).Return(false, nil).Times(2)

	for i := 0; i < 2; i++ {
		rec := s.do(router, http.MethodGet, "/api/watchlist/check/alice/1", "")
		s.Equal(http.StatusOK, rec.Code)
	}

	rec := s.do(router, http.MethodGet, "/api/watchlist/check/alice/1", "")
	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.Equal("60", rec.Header().Get("Retry-After"))
}

func (s *HandlerTestSuite) TestRateLimit_Disabled() {
	router := NewRouter(NewHandler(s.service, s.health, s.logger), Config{RateLimit: -1, RateWindow: time.Minute}, s.logger)
	s.service.EXPECT().Exists(gomock.Any(), "alice", int64(1)).Return(false, nil).Times(20)

	for i := 0; i < 20; i++ {
		rec := s.do(router, http.MethodGet, "/api/watchlist/check/alice/1", "")
		s.Equal(http.StatusOK, rec.Code)
	}
}

func (s *HandlerTestSuite) TestUserIDIsDecoded() {
	s.service.EXPECT().List(gomock.Any(), "a/b").Return([]domain.WatchlistEntry{}, nil)
	rec := s.do(s.router, http.MethodGet, "/api/watchlist/a%2Fb", "")
	s.Equal(http.StatusOK, rec.Code)

	s.service.EXPECT().Exists(gomock.Any(), "a/b", int64(7)).Return(true, nil)
	rec = s.do(s.router, http.MethodGet, "/api/watchlist/check/a%2Fb/7", "")
	s.Equal(http.StatusOK, rec.Code)

	s.service.EXPECT().Remove(gomock.Any(), "a/b", int64(7)).Return(nil)
	rec = s.do(s.router, http.MethodDelete, "/api/watchlist/a%2Fb/7", "")
	s.Equal(http.StatusOK, rec.Code)

	s.service.EXPECT().List(gomock.Any(), "50%off").Return([]domain.WatchlistEntry{}, nil)
	rec = s.do(s.router, http.MethodGet, "/api/watchlist/50%25off", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestUserIDWithSlash_Authorized() {
	secret := "test-secret"
	router := NewRouter(NewHandler(s.service, s.health, s.logger), Config{JWTSecret: secret}, s.logger)
	token, err := identity.GenerateToken("a/b", []byte(secret), time.Hour)
	s.Require().NoError(err)

	s.service.EXPECT().MarkCompleted(gomock.Any(), "a/b", int64(7)).Return(nil)
	rec := s.do(router, http.MethodPost, "/api/watchlist/complete/a%2Fb/7", "", "Authorization", "Bearer "+token)
	s.Equal(http.StatusOK, rec.Code)
}
