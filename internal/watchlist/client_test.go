package watchlist

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"animetracker/internal/domain"
	"animetracker/internal/httpapi"
	httpmocks "animetracker/internal/httpapi/mocks"
	"animetracker/internal/identity"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, testLogger())
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/watchlist/alice", r.URL.Path)
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"_id":"e1","userId":"alice","anime":{"id":21,"title":{"romaji":"One Piece"}},
			"status":"watching","progress":[{"season":1,"episode":1,"watched":true}],
			"createdAt":"2024-01-02T03:04:05Z","updatedAt":"2024-01-02T03:04:05Z"}]`)
	})

	entries, err := client.List(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, int64(21), entries[0].AnimeID())
	assert.True(t, entries[0].IsWatched(1, 1))
}

func TestClient_ListEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	entries, err := client.List(context.Background(), alice)

	require.NoError(t, err)
	assert.NotNil(t, entries)
}

func TestClient_EscapesUserID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/watchlist/check/a%2Fb/7", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"exists":true}`)
	})

	exists, err := client.Exists(context.Background(), identity.Identity{UserID: "a/b"}, 7)

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClient_UserIDRoundTripsThroughRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := httpmocks.NewMockWatchlistService(ctrl)
	health := httpmocks.NewMockHealthChecker(ctrl)

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(service, health, testLogger()), httpapi.Config{}, testLogger()))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, 2*time.Second, testLogger())

	id := identity.Identity{UserID: "a/b"}
	anime := domain.CatalogItem{ID: 7}
	entry := &domain.WatchlistEntry{ID: "e1", UserID: "a/b", Anime: anime, Status: domain.StatusWatching, Progress: []domain.EpisodeMark{}}

	service.EXPECT().Add(gomock.Any(), "a/b", anime).Return(entry, nil)
	service.EXPECT().List(gomock.Any(), "a/b").Return([]domain.WatchlistEntry{*entry}, nil)
	service.EXPECT().Remove(gomock.Any(), "a/b", int64(7)).Return(nil)

	ctx := context.Background()
	_, err := client.Create(ctx, id, anime)
	require.NoError(t, err)

	entries, err := client.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a/b", entries[0].UserID)

	require.NoError(t, client.Delete(ctx, id, 7))
}

func TestClient_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/watchlist/", r.URL.Path)

		var body createRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body.UserID)
		assert.Equal(t, int64(16498), body.Anime.ID)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"_id":"new","userId":"alice","anime":{"id":16498},"status":"watching","progress":[]}`)
	})

	entry, err := client.Create(context.Background(), alice, titan())

	require.NoError(t, err)
	assert.Equal(t, "new", entry.ID)
	assert.Equal(t, domain.StatusWatching, entry.Status)
}

func TestClient_CreateConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"Anime already in watchlist"}`)
	})

	_, err := client.Create(context.Background(), alice, titan())

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Anime already in watchlist", statusErr.Message)
}

func TestClient_UpdateProgress(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/watchlist/progress/alice/21", r.URL.Path)

		var mark domain.EpisodeMark
		require.NoError(t, json.NewDecoder(r.Body).Decode(&mark))
		assert.Equal(t, domain.EpisodeMark{Season: 1, Episode: 2, Watched: true}, mark)

		_, _ = io.WriteString(w, `{"message":"Progress updated","progress":[{"season":1,"episode":2,"watched":true}]}`)
	})

	progress, err := client.UpdateProgress(context.Background(), alice, 21, domain.EpisodeMark{Season: 1, Episode: 2, Watched: true})

	require.NoError(t, err)
	assert.Equal(t, []domain.EpisodeMark{{Season: 1, Episode: 2, Watched: true}}, progress)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusUnauthorized, domain.ErrAuthRequired},
		{http.StatusForbidden, domain.ErrAuthRequired},
		{http.StatusBadRequest, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"error":"nope"}`)
			})

			err := client.MarkCompleted(context.Background(), alice, 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_ServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to remove item"}`)
	})

	err := client.Delete(context.Background(), alice, 1)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "Failed to remove item", statusErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = io.WriteString(w, `{"message":"Removed from watchlist"}`)
	})

	err := client.Delete(context.Background(), identity.Identity{UserID: "bob"}, 3)

	assert.NoError(t, err)
}
