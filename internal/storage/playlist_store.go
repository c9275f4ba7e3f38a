package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrPlaylistNotFound is returned when an operation targets a playlist ID
// that does not exist.
var ErrPlaylistNotFound = errors.New("playlist not found")

// Playlist is a named, ordered collection of track file paths.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    []string  `json:"tracks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaylistStore is the persistence interface for playlists.
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, name string) (*Playlist, error)
	RenamePlaylist(ctx context.Context, id, name string) error
	DeletePlaylist(ctx context.Context, id string) error
	AddTrack(ctx context.Context, id, pathFile string) error
	RemoveTrack(ctx context.Context, id, pathFile string) error
	GetPlaylist(ctx context.Context, id string) (*Playlist, error)
	ListPlaylists(ctx context.Context) ([]*Playlist, error)
}

// SQLitePlaylistStore implements PlaylistStore backed by a SQLite database.
type SQLitePlaylistStore struct {
	db *sql.DB
}

// NewSQLitePlaylistStore returns a new SQLitePlaylistStore.
func NewSQLitePlaylistStore(db *sql.DB) *SQLitePlaylistStore {
	return &SQLitePlaylistStore{db: db}
}

// CreatePlaylist inserts a new empty playlist and returns it.
func (s *SQLitePlaylistStore) CreatePlaylist(ctx context.Context, name string) (*Playlist, error) {
	now := time.Now().UTC()
	p := &Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		Tracks:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO playlists (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating playlist %q: %w", name, err)
	}
	return p, nil
}

// RenamePlaylist updates the playlist name.
func (s *SQLitePlaylistStore) RenamePlaylist(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE playlists SET name = ?, updated_at = ? WHERE id = ?",
		name, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("renaming playlist %q: %w", id, err)
	}
	return requireRowAffected(res, id)
}

// DeletePlaylist removes the playlist and, via cascade, its tracks.
func (s *SQLitePlaylistStore) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting playlist %q: %w", id, err)
	}
	return requireRowAffected(res, id)
}

// AddTrack appends a track path at the end of the playlist.
func (s *SQLitePlaylistStore) AddTrack(ctx context.Context, id, pathFile string) error {
	if err := s.touch(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_tracks (playlist_id, path_file, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM playlist_tracks WHERE playlist_id = ?))`,
		id, pathFile, id)
	if err != nil {
		return fmt.Errorf("adding track to playlist %q: %w", id, err)
	}
	return nil
}

// RemoveTrack deletes every occurrence of the track path from the playlist.
func (s *SQLitePlaylistStore) RemoveTrack(ctx context.Context, id, pathFile string) error {
	if err := s.touch(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM playlist_tracks WHERE playlist_id = ? AND path_file = ?",
		id, pathFile)
	if err != nil {
		return fmt.Errorf("removing track from playlist %q: %w", id, err)
	}
	return nil
}

// GetPlaylist returns the playlist with its tracks in position order.
func (s *SQLitePlaylistStore) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM playlists WHERE id = ?", id)

	p := &Playlist{Tracks: []string{}}
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting playlist %q: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT path_file FROM playlist_tracks WHERE playlist_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("listing tracks of playlist %q: %w", id, err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scanning track of playlist %q: %w", id, err)
		}
		p.Tracks = append(p.Tracks, path)
	}
	return p, rows.Err()
}

// ListPlaylists returns all playlists (with tracks) ordered by creation time.
func (s *SQLitePlaylistStore) ListPlaylists(ctx context.Context) ([]*Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM playlists ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning playlist id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	playlists := make([]*Playlist, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetPlaylist(ctx, id)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, nil
}

// touch bumps updated_at and doubles as an existence check.
func (s *SQLitePlaylistStore) touch(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE playlists SET updated_at = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("touching playlist %q: %w", id, err)
	}
	return requireRowAffected(res, id)
}

func requireRowAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected for playlist %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("playlist %q: %w", id, ErrPlaylistNotFound)
	}
	return nil
}
