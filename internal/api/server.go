package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/storage"
)

// EventPublisher is the slice of the event bus the API needs: library
// requests are fire-and-forget publishes, results surface through the
// registered listeners.
type EventPublisher interface {
	Publish(ev eventbus.Event)
}

// Server holds all dependencies for the REST API handlers.
type Server struct {
	publisher EventPublisher
	playlists storage.PlaylistStore
	logger    *slog.Logger
}

// New creates a new API Server backed by the event bus and playlist store.
func New(publisher EventPublisher, playlists storage.PlaylistStore, logger *slog.Logger) *Server {
	return &Server{
		publisher: publisher,
		playlists: playlists,
		logger:    logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	// Library requests ride the event bus; these return 202 Accepted.
	r.Post("/library/inspect", s.handleLibraryInspect)
	r.Post("/library/scan", s.handleLibraryScan)

	// Playlists read and write the store directly.
	r.Get("/playlists", s.handleListPlaylists)
	r.Post("/playlists", s.handleCreatePlaylist)
	r.Get("/playlists/{id}", s.handleGetPlaylist)
	r.Put("/playlists/{id}", s.handleRenamePlaylist)
	r.Delete("/playlists/{id}", s.handleDeletePlaylist)
	r.Post("/playlists/{id}/tracks", s.handleAddTrack)
	r.Delete("/playlists/{id}/tracks", s.handleRemoveTrack)

	r.Get("/version", s.handleVersion)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
