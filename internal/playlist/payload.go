package playlist

import (
	"strconv"

	"github.com/quadrium-music/quadrium/internal/eventbus"
	"github.com/quadrium-music/quadrium/internal/storage"
)

// Operations accepted on ask-operate-playlist events.
const (
	OpCreate      = "create"
	OpRename      = "rename"
	OpDelete      = "delete"
	OpAddTrack    = "add_track"
	OpRemoveTrack = "remove_track"
)

// Operation states reported on operate-playlist-state events.
const (
	StateOK     = "ok"
	StateFailed = "failed"
)

// OperateRequest is the payload of ask-operate-playlist events. Which fields
// are meaningful depends on the operation: create needs Name, rename needs
// PlaylistID and Name, delete needs PlaylistID, add_track/remove_track need
// PlaylistID and PathFile.
type OperateRequest struct {
	Operation  string
	PlaylistID string
	Name       string
	PathFile   string
}

// Describe returns the operation field followed by whichever parameters are
// set, so consumers can decode it as a name→value map.
func (r OperateRequest) Describe() []eventbus.Field {
	fields := []eventbus.Field{
		{Name: "operation", Type: eventbus.FieldString, Value: r.Operation},
	}
	if r.PlaylistID != "" {
		fields = append(fields, eventbus.Field{Name: "playlist_id", Type: eventbus.FieldString, Value: r.PlaylistID})
	}
	if r.Name != "" {
		fields = append(fields, eventbus.Field{Name: "name", Type: eventbus.FieldString, Value: r.Name})
	}
	if r.PathFile != "" {
		fields = append(fields, eventbus.Field{Name: "path_file", Type: eventbus.FieldString, Value: r.PathFile})
	}
	return fields
}

// OperateState is the payload of operate-playlist-state events.
type OperateState struct {
	Operation  string
	State      string
	Detail     string
	PlaylistID string
}

// Describe returns operation, state, detail, and playlist_id in that order.
func (s OperateState) Describe() []eventbus.Field {
	return []eventbus.Field{
		{Name: "operation", Type: eventbus.FieldString, Value: s.Operation},
		{Name: "state", Type: eventbus.FieldString, Value: s.State},
		{Name: "detail", Type: eventbus.FieldString, Value: s.Detail},
		{Name: "playlist_id", Type: eventbus.FieldString, Value: s.PlaylistID},
	}
}

// RetrieveRequest is the payload of ask-retrieve-playlist events. An empty
// PlaylistID requests the index of all playlists.
type RetrieveRequest struct {
	PlaylistID string
}

// Describe returns the playlist_id field, or no fields for an index request.
func (r RetrieveRequest) Describe() []eventbus.Field {
	if r.PlaylistID == "" {
		return nil
	}
	return []eventbus.Field{
		{Name: "playlist_id", Type: eventbus.FieldString, Value: r.PlaylistID},
	}
}

// Detail wraps one playlist for playlist-retrieved events.
type Detail struct {
	Playlist *storage.Playlist
}

// Describe returns playlist_id, name, track_count, then file_0..file_n-1 in
// playlist order.
func (d Detail) Describe() []eventbus.Field {
	fields := []eventbus.Field{
		{Name: "playlist_id", Type: eventbus.FieldString, Value: d.Playlist.ID},
		{Name: "name", Type: eventbus.FieldString, Value: d.Playlist.Name},
		{Name: "track_count", Type: eventbus.FieldUint32, Value: strconv.Itoa(len(d.Playlist.Tracks))},
	}
	for i, track := range d.Playlist.Tracks {
		fields = append(fields, eventbus.Field{
			Name:  "file_" + strconv.Itoa(i),
			Type:  eventbus.FieldString,
			Value: track,
		})
	}
	return fields
}

// Index wraps the full playlist catalogue for playlist-retrieved events
// answering an index request.
type Index struct {
	Playlists []*storage.Playlist
}

// Describe returns playlist_count followed by id/name/track_count triples per
// playlist.
func (x Index) Describe() []eventbus.Field {
	fields := []eventbus.Field{
		{Name: "playlist_count", Type: eventbus.FieldUint32, Value: strconv.Itoa(len(x.Playlists))},
	}
	for i, p := range x.Playlists {
		prefix := "playlist_" + strconv.Itoa(i)
		fields = append(fields,
			eventbus.Field{Name: prefix + "_id", Type: eventbus.FieldString, Value: p.ID},
			eventbus.Field{Name: prefix + "_name", Type: eventbus.FieldString, Value: p.Name},
			eventbus.Field{Name: prefix + "_track_count", Type: eventbus.FieldUint32, Value: strconv.Itoa(len(p.Tracks))},
		)
	}
	return fields
}
