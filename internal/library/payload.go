package library

import (
	"strconv"

	"github.com/quadrium-music/quadrium/internal/eventbus"
)

// PathRequest asks a collaborator to act on a single file. It is the payload
// of ask-retrieve-music-information and ask-read-music events and describes
// exactly one field; consumers no-op on any other field count.
type PathRequest struct {
	Path string
}

// Describe returns the single path_file field.
func (p PathRequest) Describe() []eventbus.Field {
	return []eventbus.Field{
		{Name: "path_file", Type: eventbus.FieldString, Value: p.Path},
	}
}

// DirectoryRequest asks the scanner to list the audio files under a
// directory. Payload of ask-retrieve-music-directory events.
type DirectoryRequest struct {
	Path string
}

// Describe returns the single path_directory field.
func (d DirectoryRequest) Describe() []eventbus.Field {
	return []eventbus.Field{
		{Name: "path_directory", Type: eventbus.FieldString, Value: d.Path},
	}
}

// DirectoryListing carries the scanner's result on music-directory-retrieved
// events: the scanned directory, the number of files found, then one field
// per file in discovery order.
type DirectoryListing struct {
	Directory string
	Files     []string
}

// Describe returns path_directory and file_count followed by file_0..file_n-1.
func (d DirectoryListing) Describe() []eventbus.Field {
	fields := make([]eventbus.Field, 0, len(d.Files)+2)
	fields = append(fields,
		eventbus.Field{Name: "path_directory", Type: eventbus.FieldString, Value: d.Directory},
		eventbus.Field{Name: "file_count", Type: eventbus.FieldUint32, Value: strconv.Itoa(len(d.Files))},
	)
	for i, f := range d.Files {
		fields = append(fields, eventbus.Field{
			Name:  "file_" + strconv.Itoa(i),
			Type:  eventbus.FieldString,
			Value: f,
		})
	}
	return fields
}

// Read states reported on read-music-state events.
const (
	ReadStateReady  = "ready"
	ReadStateFailed = "failed"
)

// ReadState carries the outcome of an ask-read-music request.
type ReadState struct {
	Path   string
	State  string
	Detail string
}

// Describe returns path_file, state, and detail in that order.
func (r ReadState) Describe() []eventbus.Field {
	return []eventbus.Field{
		{Name: "path_file", Type: eventbus.FieldString, Value: r.Path},
		{Name: "state", Type: eventbus.FieldString, Value: r.State},
		{Name: "detail", Type: eventbus.FieldString, Value: r.Detail},
	}
}
