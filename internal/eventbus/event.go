package eventbus

// Kind identifies the semantic category of an event. Kinds are compared by
// equality only; there is no ordering between them. New kinds may be added
// without changes to the bus itself.
type Kind string

// The event catalogue exchanged between the request layer, the metadata
// extraction services, and the presentation layer.
const (
	KindAskRetrieveMusicDirectory   Kind = "ask-retrieve-music-directory"
	KindAskRetrieveMusicInformation Kind = "ask-retrieve-music-information"
	KindAskReadMusic                Kind = "ask-read-music"
	KindAskOperatePlaylist          Kind = "ask-operate-playlist"
	KindAskRetrievePlaylist         Kind = "ask-retrieve-playlist"

	KindMusicDirectoryRetrieved   Kind = "music-directory-retrieved"
	KindMusicInformationRetrieved Kind = "music-information-retrieved"
	KindReadMusicState            Kind = "read-music-state"
	KindOperatePlaylistState      Kind = "operate-playlist-state"
	KindPlaylistRetrieved         Kind = "playlist-retrieved"
)

// Event is an immutable (kind, payload) pair flowing through the bus. The
// payload is shared by reference: every listener invoked for the event during
// a dispatch batch reads the same Payload value, so payloads must not be
// mutated after publishing.
type Event struct {
	Kind    Kind
	Payload Payload
}

// Listener is a callback invoked for every event whose kind matches the one
// it was registered under. Listeners run exclusively on the dispatcher
// goroutine, never concurrently with each other on the same bus.
type Listener func(Event)
