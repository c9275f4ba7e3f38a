package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quadrium-music/quadrium/internal/storage"
)

type playlistRequest struct {
	Name string `json:"name"`
}

type trackRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.playlists.ListPlaylists(r.Context())
	if err != nil {
		s.logger.Error("listing playlists", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list playlists")
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := s.playlists.CreatePlaylist(r.Context(), req.Name)
	if err != nil {
		s.logger.Error("creating playlist", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create playlist")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.playlists.GetPlaylist(r.Context(), id)
	if errors.Is(err, storage.ErrPlaylistNotFound) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	if err != nil {
		s.logger.Error("getting playlist", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get playlist")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRenamePlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.playlists.RenamePlaylist(r.Context(), id, req.Name); err != nil {
		s.playlistError(w, "renaming playlist", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.playlists.DeletePlaylist(r.Context(), id); err != nil {
		s.playlistError(w, "deleting playlist", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTrack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := s.playlists.AddTrack(r.Context(), id, req.Path); err != nil {
		s.playlistError(w, "adding track", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveTrack(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := s.playlists.RemoveTrack(r.Context(), id, req.Path); err != nil {
		s.playlistError(w, "removing track", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// playlistError translates store errors into HTTP responses.
func (s *Server) playlistError(w http.ResponseWriter, op, id string, err error) {
	if errors.Is(err, storage.ErrPlaylistNotFound) {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}
	s.logger.Error(op, "id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "playlist operation failed")
}
