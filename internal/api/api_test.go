package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrium-music/quadrium/internal/api"
	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/storage"
)

// capturingPublisher records published events instead of dispatching them.
type capturingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *capturingPublisher) Publish(ev eventbus.Event) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *capturingPublisher) all() []eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]eventbus.Event, len(p.events))
	copy(out, p.events)
	return out
}

// testHarness bundles the publisher, store and router used by every test.
type testHarness struct {
	publisher *capturingPublisher
	store     storage.PlaylistStore
	router    chi.Router
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "quadrium.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	publisher := &capturingPublisher{}
	store := storage.NewSQLitePlaylistStore(db)
	srv := api.New(publisher, store, slog.Default())

	r := chi.NewRouter()
	srv.Mount(r)

	return &testHarness{
		publisher: publisher,
		store:     store,
		router:    r,
	}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *testHarness) doJSON(method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

// ---------- Library ----------

func TestLibraryInspect(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   eventbus.Kind
	}{
		{
			name:       "success",
			body:       `{"path":"/srv/music/track.flac"}`,
			wantStatus: http.StatusAccepted,
			wantKind:   eventbus.KindAskRetrieveMusicInformation,
		},
		{
			name:       "invalid JSON",
			body:       `{bad`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty path",
			body:       `{"path":""}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			w := h.doJSON(http.MethodPost, "/library/inspect", tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusAccepted {
				events := h.publisher.all()
				require.Len(t, events, 1)
				assert.Equal(t, tc.wantKind, events[0].Kind)

				fields := events[0].Payload.Describe()
				require.Len(t, fields, 1)
				assert.Equal(t, "path_file", fields[0].Name)
				assert.Equal(t, "/srv/music/track.flac", fields[0].Value)
			} else {
				assert.Empty(t, h.publisher.all())
			}
		})
	}
}

func TestLibraryScan(t *testing.T) {
	h := newHarness(t)
	w := h.doJSON(http.MethodPost, "/library/scan", `{"path":"/srv/music"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	events := h.publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, eventbus.KindAskRetrieveMusicDirectory, events[0].Kind)

	fields := events[0].Payload.Describe()
	require.Len(t, fields, 1)
	assert.Equal(t, "path_directory", fields[0].Name)
	assert.Equal(t, "/srv/music", fields[0].Value)
}

// ---------- Playlists ----------

func TestCreatePlaylist(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"Evening"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid JSON",
			body:       `{bad`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty name",
			body:       `{"name":""}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			w := h.doJSON(http.MethodPost, "/playlists", tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusCreated {
				var result storage.Playlist
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
				assert.Equal(t, "Evening", result.Name)
				assert.NotEmpty(t, result.ID)
			}
		})
	}
}

func TestGetPlaylist(t *testing.T) {
	h := newHarness(t)
	p, err := h.store.CreatePlaylist(context.Background(), "Morning")
	require.NoError(t, err)
	require.NoError(t, h.store.AddTrack(context.Background(), p.ID, "/srv/music/a.flac"))

	w := h.do(httptest.NewRequest(http.MethodGet, "/playlists/"+p.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var result storage.Playlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Morning", result.Name)
	assert.Equal(t, []string{"/srv/music/a.flac"}, result.Tracks)
}

func TestGetPlaylistNotFound(t *testing.T) {
	h := newHarness(t)
	w := h.do(httptest.NewRequest(http.MethodGet, "/playlists/no-exist", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "playlist not found", result["error"])
}

func TestListPlaylists(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		_, err := h.store.CreatePlaylist(context.Background(), fmt.Sprintf("list-%d", i))
		require.NoError(t, err)
	}

	w := h.do(httptest.NewRequest(http.MethodGet, "/playlists", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var result []*storage.Playlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result, 3)
}

func TestRenamePlaylist(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		useRealID  bool
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"Renamed"}`,
			useRealID:  true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "not found",
			body:       `{"name":"Renamed"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid JSON",
			body:       `{bad`,
			useRealID:  true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			id := "no-exist"
			if tc.useRealID {
				p, err := h.store.CreatePlaylist(context.Background(), "Original")
				require.NoError(t, err)
				id = p.ID
			}

			w := h.doJSON(http.MethodPut, "/playlists/"+id, tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusNoContent {
				p, err := h.store.GetPlaylist(context.Background(), id)
				require.NoError(t, err)
				assert.Equal(t, "Renamed", p.Name)
			}
		})
	}
}

func TestDeletePlaylist(t *testing.T) {
	h := newHarness(t)
	p, err := h.store.CreatePlaylist(context.Background(), "Doomed")
	require.NoError(t, err)

	w := h.do(httptest.NewRequest(http.MethodDelete, "/playlists/"+p.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = h.do(httptest.NewRequest(http.MethodDelete, "/playlists/"+p.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddAndRemoveTrack(t *testing.T) {
	h := newHarness(t)
	p, err := h.store.CreatePlaylist(context.Background(), "Tracks")
	require.NoError(t, err)

	w := h.doJSON(http.MethodPost, "/playlists/"+p.ID+"/tracks", `{"path":"/srv/music/a.flac"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = h.doJSON(http.MethodPost, "/playlists/"+p.ID+"/tracks", `{"path":"/srv/music/b.flac"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	got, err := h.store.GetPlaylist(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/music/a.flac", "/srv/music/b.flac"}, got.Tracks)

	w = h.doJSON(http.MethodDelete, "/playlists/"+p.ID+"/tracks", `{"path":"/srv/music/a.flac"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	got, err = h.store.GetPlaylist(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/music/b.flac"}, got.Tracks)
}

func TestAddTrackValidation(t *testing.T) {
	h := newHarness(t)
	p, err := h.store.CreatePlaylist(context.Background(), "Tracks")
	require.NoError(t, err)

	w := h.doJSON(http.MethodPost, "/playlists/"+p.ID+"/tracks", `{"path":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.doJSON(http.MethodPost, "/playlists/no-exist/tracks", `{"path":"/srv/music/a.flac"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ---------- Version ----------

func TestVersion(t *testing.T) {
	h := newHarness(t)
	w := h.do(httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Contains(t, result, "version")
	assert.Contains(t, result, "commit")
	assert.Contains(t, result, "build_date")
}

// ---------- Response content-type verification ----------

func TestResponseContentType(t *testing.T) {
	h := newHarness(t)
	w := h.do(httptest.NewRequest(http.MethodGet, "/playlists", nil))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
