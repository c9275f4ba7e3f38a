// Package playlist implements the playlist collaborator of the event bus:
// ask-operate-playlist and ask-retrieve-playlist requests are executed
// against the SQLite store and answered with operate-playlist-state and
// playlist-retrieved events through the deferred handle.
package playlist

import (
	"context"
	"log/slog"
	"time"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/storage"
)

// storeTimeout bounds each store call made from a dispatch callback, so a
// stuck database cannot park the dispatcher forever.
const storeTimeout = 5 * time.Second

// Service handles playlist events against a PlaylistStore.
type Service struct {
	store    storage.PlaylistStore
	deferred *eventbus.DeferredQueue
	logger   *slog.Logger
}

// RegisterService attaches the playlist service to the bus.
func RegisterService(bus *eventbus.Bus, store storage.PlaylistStore, logger *slog.Logger) *Service {
	s := &Service{
		store:    store,
		deferred: bus.Deferred(),
		logger:   logger,
	}
	bus.Register(eventbus.KindAskOperatePlaylist, s.handleOperate)
	bus.Register(eventbus.KindAskRetrievePlaylist, s.handleRetrieve)
	return s
}

// handleOperate decodes the request as a name→value map, executes the
// operation, and reports the outcome. Unknown or incomplete requests are
// answered with a failed state rather than dropped, so the requesting layer
// always hears back.
func (s *Service) handleOperate(ev eventbus.Event) {
	args := fieldMap(ev.Payload.Describe())
	op := args["operation"]

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	state := OperateState{Operation: op, State: StateOK, PlaylistID: args["playlist_id"]}

	switch op {
	case OpCreate:
		p, err := s.store.CreatePlaylist(ctx, args["name"])
		if err != nil {
			state.State, state.Detail = StateFailed, err.Error()
			break
		}
		state.PlaylistID = p.ID
	case OpRename:
		if err := s.store.RenamePlaylist(ctx, args["playlist_id"], args["name"]); err != nil {
			state.State, state.Detail = StateFailed, err.Error()
		}
	case OpDelete:
		if err := s.store.DeletePlaylist(ctx, args["playlist_id"]); err != nil {
			state.State, state.Detail = StateFailed, err.Error()
		}
	case OpAddTrack:
		if err := s.store.AddTrack(ctx, args["playlist_id"], args["path_file"]); err != nil {
			state.State, state.Detail = StateFailed, err.Error()
		}
	case OpRemoveTrack:
		if err := s.store.RemoveTrack(ctx, args["playlist_id"], args["path_file"]); err != nil {
			state.State, state.Detail = StateFailed, err.Error()
		}
	default:
		state.State = StateFailed
		state.Detail = "unknown operation: " + op
	}

	if state.State == StateFailed {
		s.logger.Warn("playlist operation failed",
			"operation", op, "playlist_id", state.PlaylistID, "detail", state.Detail)
	}

	s.deferred.Publish(eventbus.Event{
		Kind:    eventbus.KindOperatePlaylistState,
		Payload: state,
	})
}

// handleRetrieve answers with a single playlist when playlist_id is present,
// or with the index of all playlists when the request carries no fields.
func (s *Service) handleRetrieve(ev eventbus.Event) {
	args := fieldMap(ev.Payload.Describe())

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if id, ok := args["playlist_id"]; ok {
		p, err := s.store.GetPlaylist(ctx, id)
		if err != nil {
			s.logger.Warn("failed to retrieve playlist", "playlist_id", id, "error", err)
			return
		}
		s.deferred.Publish(eventbus.Event{
			Kind:    eventbus.KindPlaylistRetrieved,
			Payload: Detail{Playlist: p},
		})
		return
	}

	playlists, err := s.store.ListPlaylists(ctx)
	if err != nil {
		s.logger.Warn("failed to list playlists", "error", err)
		return
	}
	s.deferred.Publish(eventbus.Event{
		Kind:    eventbus.KindPlaylistRetrieved,
		Payload: Index{Playlists: playlists},
	})
}

func fieldMap(fields []eventbus.Field) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}
