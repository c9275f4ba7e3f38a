package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrium-music/quadrium/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLitePlaylistStore {
	t.Helper()
	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "quadrium.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewSQLitePlaylistStore(db)
}

func TestCreateAndGetPlaylist(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.CreatePlaylist(ctx, "Morning")
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	got, err := store.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning", got.Name)
	assert.Empty(t, got.Tracks)
}

func TestGetPlaylistNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPlaylist(context.Background(), "nope")
	require.ErrorIs(t, err, storage.ErrPlaylistNotFound)
}

func TestTrackOrderPreserved(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.CreatePlaylist(ctx, "Drive")
	require.NoError(t, err)

	tracks := []string{"/music/a.flac", "/music/c.flac", "/music/b.flac"}
	for _, tr := range tracks {
		require.NoError(t, store.AddTrack(ctx, p.ID, tr))
	}

	got, err := store.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, tracks, got.Tracks)
}

func TestRemoveTrack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.CreatePlaylist(ctx, "Focus")
	require.NoError(t, err)
	require.NoError(t, store.AddTrack(ctx, p.ID, "/music/a.flac"))
	require.NoError(t, store.AddTrack(ctx, p.ID, "/music/b.flac"))
	require.NoError(t, store.RemoveTrack(ctx, p.ID, "/music/a.flac"))

	got, err := store.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/music/b.flac"}, got.Tracks)
}

func TestRenameAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.CreatePlaylist(ctx, "Old")
	require.NoError(t, err)

	require.NoError(t, store.RenamePlaylist(ctx, p.ID, "New"))
	got, err := store.GetPlaylist(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	require.NoError(t, store.DeletePlaylist(ctx, p.ID))
	_, err = store.GetPlaylist(ctx, p.ID)
	require.ErrorIs(t, err, storage.ErrPlaylistNotFound)

	require.ErrorIs(t, store.RenamePlaylist(ctx, p.ID, "Gone"), storage.ErrPlaylistNotFound)
	require.ErrorIs(t, store.AddTrack(ctx, p.ID, "/music/x.flac"), storage.ErrPlaylistNotFound)
}

func TestListPlaylists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreatePlaylist(ctx, "One")
	require.NoError(t, err)
	p2, err := store.CreatePlaylist(ctx, "Two")
	require.NoError(t, err)
	require.NoError(t, store.AddTrack(ctx, p2.ID, "/music/a.flac"))

	all, err := store.ListPlaylists(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "One", all[0].Name)
	assert.Equal(t, "Two", all[1].Name)
	assert.Equal(t, []string{"/music/a.flac"}, all[1].Tracks)
}
