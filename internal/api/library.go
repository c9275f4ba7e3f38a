package api

import (
	"encoding/json"
	"net/http"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/library"
)

type inspectRequest struct {
	Path string `json:"path"`
}

// handleLibraryInspect publishes an ask-retrieve-music-information event for
// a single file. Results are delivered asynchronously to bus listeners, so
// the handler only acknowledges the request.
func (s *Server) handleLibraryInspect(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	s.publisher.Publish(eventbus.Event{
		Kind:    eventbus.KindAskRetrieveMusicInformation,
		Payload: library.PathRequest{Path: req.Path},
	})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "path": req.Path})
}

// handleLibraryScan publishes an ask-retrieve-music-directory event for a
// directory walk.
func (s *Server) handleLibraryScan(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	s.publisher.Publish(eventbus.Event{
		Kind:    eventbus.KindAskRetrieveMusicDirectory,
		Payload: library.DirectoryRequest{Path: req.Path},
	})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "path": req.Path})
}
